// Package manifest loads the avatar manifest offered to the content collaborator
package manifest

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Avatar is one candidate avatar the collaborator may pick
type Avatar struct {
	ID     string `yaml:"id" json:"id"`
	Gender string `yaml:"gender" json:"gender"`
	Age    string `yaml:"age" json:"age"`
	Vibe   string `yaml:"vibe" json:"vibe"`
}

// Manifest is a read-only list of avatars
type Manifest struct {
	avatars []Avatar
}

// Load reads a manifest file. JSON is valid YAML, so both formats are
// accepted. A missing or unreadable file degrades to an empty manifest.
func Load(ctx context.Context, path string) *Manifest {
	if path == "" {
		return &Manifest{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.WarnContext(ctx, "avatar manifest unavailable, using empty list", "path", path, "error", err)
		return &Manifest{}
	}

	m, err := Parse(data)
	if err != nil {
		slog.WarnContext(ctx, "avatar manifest invalid, using empty list", "path", path, "error", err)
		return &Manifest{}
	}

	slog.InfoContext(ctx, "loaded avatar manifest", "path", path, "avatars", len(m.avatars))
	return m
}

// Parse decodes manifest bytes
func Parse(data []byte) (*Manifest, error) {
	var avatars []Avatar
	if err := yaml.Unmarshal(data, &avatars); err != nil {
		return nil, err
	}
	return &Manifest{avatars: avatars}, nil
}

// Avatars returns the avatars in file order
func (m *Manifest) Avatars() []Avatar {
	return append([]Avatar(nil), m.avatars...)
}

// Context renders the manifest as compact JSON for a prompt
func (m *Manifest) Context() string {
	if len(m.avatars) == 0 {
		return "[]"
	}
	b, err := json.Marshal(m.avatars)
	if err != nil {
		return "[]"
	}
	return string(b)
}
