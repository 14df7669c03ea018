//go:build integration

package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/alter-ego/internal/clients/remote"
	"github.com/KirkDiggler/alter-ego/internal/engine"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

func integrationClient(t *testing.T) *remote.Client {
	t.Helper()

	addr := os.Getenv("ALTER_EGO_SERVER")
	if addr == "" {
		t.Skip("ALTER_EGO_SERVER not set")
	}

	client, err := remote.New(&remote.Config{Address: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPersonaIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	client := integrationClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := client.GeneratePersona(ctx, &generation.GeneratePersonaInput{
		Name:        "Amine",
		Destination: "Sousse",
		Style:       "Fast & efficient",
	})
	require.NoError(t, err)

	p := out.Persona
	assert.NotEmpty(t, p.Name)
	require.Len(t, p.Missions, 3)
	for _, m := range p.Missions {
		assert.Positive(t, m.XP)
		assert.Positive(t, engine.MissionAward(m.XP))
	}
}

func TestPersonaValidationIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	client := integrationClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.GeneratePersona(ctx, &generation.GeneratePersonaInput{
		Name:        "",
		Destination: "Paris",
		Style:       "x",
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.NotEmpty(t, errors.FieldViolations(err))
}
