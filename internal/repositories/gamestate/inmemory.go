package gamestate

import (
	"context"
	"sync"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// InMemoryRepository keeps encoded documents in a map
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Load implements Repository
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if err := validateLoad(input); err != nil {
		return nil, err
	}

	r.mu.RLock()
	data, exists := r.store[Key(input.DeviceID)]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("no game state for device %s", input.DeviceID)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Document: doc}, nil
}

// Save implements Repository
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := encode(input.Document)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[Key(input.DeviceID)] = data

	return &SaveOutput{}, nil
}

// Raw returns the stored bytes for a device, for tests and debugging
func (r *InMemoryRepository) Raw(deviceID string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.store[Key(deviceID)]
	return data, ok
}

// PutRaw stores bytes for a device without encoding them
func (r *InMemoryRepository) PutRaw(deviceID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[Key(deviceID)] = data
}
