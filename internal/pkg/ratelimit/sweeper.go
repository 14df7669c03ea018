package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// Sweepable is a limiter that can drop stale identities
type Sweepable interface {
	Sweep() int
}

// Sweeper periodically sweeps a limiter on a cron schedule
type Sweeper struct {
	cron   *cron.Cron
	target Sweepable
}

// SweeperConfig configures NewSweeper
type SweeperConfig struct {
	Target   Sweepable
	Interval time.Duration
}

// Validate ensures the config is usable
func (c *SweeperConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Target == nil {
		vb.RequiredField("target")
	}
	if c.Interval <= 0 {
		vb.Field("interval", "must be greater than 0")
	}
	return vb.Build()
}

// NewSweeper creates a sweeper. Call Start to begin sweeping.
func NewSweeper(cfg *SweeperConfig) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sweeper config")
	}

	s := &Sweeper{
		cron:   cron.New(),
		target: cfg.Target,
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", cfg.Interval), s.sweep)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to schedule sweep every %s", cfg.Interval)
	}

	return s, nil
}

// Start begins sweeping in the background
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to end
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Sweeper) sweep() {
	if dropped := s.target.Sweep(); dropped > 0 {
		slog.Debug("swept rate limit windows", "dropped", dropped)
	}
}
