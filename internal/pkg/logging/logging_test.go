package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/logging"
)

func TestNewLevels(t *testing.T) {
	testCases := []struct {
		level string
		debug bool
	}{
		{"", false},
		{"info", false},
		{"DEBUG", true},
		{"warn", false},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger, zl, err := logging.New(&logging.Config{Level: tc.level, Format: "console", Name: "test"})
			require.NoError(t, err)
			defer func() { _ = zl.Sync() }()

			assert.Equal(t, tc.debug, zl.Core().Enabled(-1))
			assert.NotNil(t, logger)
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := logging.New(&logging.Config{Level: "chatty"})
	assert.True(t, errors.IsInvalidArgument(err))
}
