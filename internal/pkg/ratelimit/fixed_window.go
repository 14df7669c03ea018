package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
)

type window struct {
	count int
	start time.Time
}

// FixedWindow is an in-process Limiter
type FixedWindow struct {
	mu       sync.Mutex
	clock    clock.Clock
	window   time.Duration
	capacity int
	entries  map[string]*window
}

// FixedWindowConfig configures NewFixedWindow
type FixedWindowConfig struct {
	Limits Config
	Clock  clock.Clock
}

// Validate ensures the config is usable
func (c *FixedWindowConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return c.Limits.Validate()
}

// NewFixedWindow creates an in-memory fixed-window limiter
func NewFixedWindow(cfg *FixedWindowConfig) (*FixedWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rate limiter config")
	}

	return &FixedWindow{
		clock:    cfg.Clock,
		window:   cfg.Limits.Window,
		capacity: cfg.Limits.Capacity,
		entries:  make(map[string]*window),
	}, nil
}

// CheckAndConsume implements Limiter
func (l *FixedWindow) CheckAndConsume(_ context.Context, identity string) (bool, error) {
	identity = NormalizeIdentity(identity)
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries[identity]
	if !ok || now.Sub(w.start) > l.window {
		l.entries[identity] = &window{count: 1, start: now}
		return true, nil
	}

	if w.count >= l.capacity {
		return false, nil
	}

	w.count++
	return true, nil
}

// Sweep forgets identities whose window has elapsed and returns how many
// were dropped. A dropped identity behaves exactly like a reset window on its
// next request, so sweeping never changes a decision.
func (l *FixedWindow) Sweep() int {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for identity, w := range l.entries {
		if now.Sub(w.start) > l.window {
			delete(l.entries, identity)
			dropped++
		}
	}
	return dropped
}

// Tracked returns the number of identities currently held
func (l *FixedWindow) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
