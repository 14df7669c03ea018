package play

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestTypewriterStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	var out bytes.Buffer
	tw := newTypewriter(&out, "Djerba", time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		tw.run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("typewriter did not stop")
	}

	assert.True(t, strings.HasPrefix(out.String(), "Scanning"))
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestTypewriterDisabled(t *testing.T) {
	var out bytes.Buffer
	newTypewriter(&out, "", 0).run(context.Background())
	assert.Empty(t, out.String())
}

func TestTypewriterDefaultsCity(t *testing.T) {
	tw := newTypewriter(&bytes.Buffer{}, "", time.Millisecond)
	assert.Equal(t, "Scanning the medinas of Tunisia...", tw.lines[0])
}
