// Package ratelimit gates content requests per caller identity.
//
// The algorithm is a fixed window: the first request of an identity opens a
// window of length Window, up to Capacity requests are allowed inside it, and
// the first request after the window has elapsed opens a new one. Counters are
// not durable; a process restart resets them.
package ratelimit

import (
	"context"
	"time"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

//go:generate mockgen -destination=mock/mock_limiter.go -package=ratelimitmock github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit Limiter

// Defaults for the request gate
const (
	DefaultWindow   = 60 * time.Second
	DefaultCapacity = 5

	// UnknownIdentity is used when the caller's origin cannot be determined
	UnknownIdentity = "unknown"
)

// Limiter decides whether one more request from identity is allowed right now.
// A denied request does not consume capacity.
type Limiter interface {
	CheckAndConsume(ctx context.Context, identity string) (bool, error)
}

// Config holds the window and capacity shared by every limiter implementation
type Config struct {
	Window   time.Duration
	Capacity int
}

// Validate fills defaults and rejects nonsense values
func (c *Config) Validate() error {
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}

	vb := errors.NewValidationBuilder()
	if c.Window < 0 {
		vb.Field("window", "must be greater than 0")
	}
	errors.ValidatePositive("capacity", c.Capacity, vb)
	return vb.Build()
}

// NormalizeIdentity maps an empty identity to UnknownIdentity
func NormalizeIdentity(identity string) string {
	if identity == "" {
		return UnknownIdentity
	}
	return identity
}
