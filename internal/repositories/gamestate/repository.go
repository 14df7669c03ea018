// Package gamestate persists one device's session and stamp collection as a
// single document under a namespaced key.
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/KirkDiggler/alter-ego/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/KirkDiggler/alter-ego/internal/entities"
)

// KeyPrefix namespaces every stored document
const KeyPrefix = "alter-ego-storage"

// DocumentVersion is the schema version written by Save
const DocumentVersion = 1

// Document is everything persisted for one device
type Document struct {
	Version    int                        `json:"version"`
	Session    *entities.Session          `json:"session"`
	Collection []entities.CollectionEntry `json:"collection"`

	// Level is written for readers of the raw document. It is derived from
	// the session's experience and ignored on load.
	Level int `json:"level"`
}

// Repository loads and saves documents
type Repository interface {
	// Load returns the stored document
	// Returns errors.InvalidArgument for an empty device ID
	// Returns errors.NotFound if nothing is stored
	// Returns errors.DataLoss if the stored value cannot be decoded
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save replaces the stored document
	// Returns errors.InvalidArgument for an empty device ID or nil document
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// LoadInput defines the input for loading a document
type LoadInput struct {
	DeviceID string
}

// LoadOutput defines the output for loading a document
type LoadOutput struct {
	Document *Document
}

// SaveInput defines the input for saving a document
type SaveInput struct {
	DeviceID string
	Document *Document
}

// SaveOutput defines the output for saving a document
type SaveOutput struct{}

// Key returns the storage key for a device
func Key(deviceID string) string {
	return KeyPrefix + ":" + deviceID
}
