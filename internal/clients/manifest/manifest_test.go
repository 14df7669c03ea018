package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/alter-ego/internal/clients/manifest"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"id": "f_young_artist.png", "gender": "female", "age": "young", "vibe": "creative"},
  {"id": "m_old_fisherman.png", "gender": "male", "age": "old", "vibe": "weathered"}
]`), 0o600))

	m := manifest.Load(context.Background(), path)

	require.Len(t, m.Avatars(), 2)
	assert.Equal(t, "m_old_fisherman.png", m.Avatars()[1].ID)
	assert.Equal(t,
		`[{"id":"f_young_artist.png","gender":"female","age":"young","vibe":"creative"},`+
			`{"id":"m_old_fisherman.png","gender":"male","age":"old","vibe":"weathered"}]`,
		m.Context())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: a\n  gender: male\n  age: middle\n  vibe: calm\n"), 0o600))

	m := manifest.Load(context.Background(), path)
	assert.Equal(t, []manifest.Avatar{{ID: "a", Gender: "male", Age: "middle", Vibe: "calm"}}, m.Avatars())
}

func TestLoadDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{not: [valid`), 0o600))

	for _, path := range []string{"", filepath.Join(dir, "missing.json"), broken} {
		m := manifest.Load(context.Background(), path)
		assert.Empty(t, m.Avatars())
		assert.Equal(t, "[]", m.Context())
	}
}
