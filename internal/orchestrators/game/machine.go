// Package game drives one play-through from the intro form to the stamp and
// guide screens.
//
// A Machine owns the session and the stamp collection. Every change goes
// through a named action; actions run one at a time and content fetches run
// outside the lock. Navigation that supersedes a fetch (reset, retry and the
// profile screen) advances an epoch, and a fetch that completes under an older
// epoch is discarded with an Aborted error.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	"github.com/KirkDiggler/alter-ego/internal/pkg/idgen"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
	"github.com/KirkDiggler/alter-ego/internal/repositories/gamestate"
)

// Config holds the dependencies for a Machine
type Config struct {
	Generator  generation.Service
	Repository gamestate.Repository
	DeviceID   string

	// Optional
	Identity string
	Clock    clock.Clock
	IDGen    idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Generator == nil {
		vb.RequiredField("Generator")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.DeviceID == "" {
		vb.RequiredField("DeviceID")
	}
	return vb.Build()
}

// Machine is the session state machine for one device
type Machine struct {
	generator generation.Service
	repo      gamestate.Repository
	deviceID  string
	identity  string
	clock     clock.Clock
	idgen     idgen.Generator

	mu         sync.Mutex
	session    *entities.Session
	collection *entities.Collection
	epoch      uint64

	fetches singleflight.Group
}

// New creates a Machine holding a fresh session. Call Load to restore saved state.
func New(cfg *Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	gen := cfg.IDGen
	if gen == nil {
		gen = idgen.NewULID(clk)
	}

	return &Machine{
		generator:  cfg.Generator,
		repo:       cfg.Repository,
		deviceID:   cfg.DeviceID,
		identity:   ratelimit.NormalizeIdentity(cfg.Identity),
		clock:      clk,
		idgen:      gen,
		session:    entities.NewSession(),
		collection: entities.NewCollection(nil),
	}, nil
}

// View returns the current snapshot
func (m *Machine) View() *View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newView(m.session, m.collection)
}

// Load restores the saved session and collection. A missing or unreadable
// document leaves the machine on a fresh session; Load never fails because
// of stored state.
func (m *Machine) Load(ctx context.Context) (*View, error) {
	out, err := m.repo.Load(ctx, gamestate.LoadInput{DeviceID: m.deviceID})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++

	switch {
	case err == nil:
		m.session = out.Document.Session
		m.collection = entities.NewCollection(out.Document.Collection)
		slog.InfoContext(ctx, "game state restored",
			"device_id", m.deviceID,
			"screen", m.session.Screen,
			"xp", m.session.Experience,
			"stamps", m.collection.Len())
	case errors.IsNotFound(err):
		m.session = entities.NewSession()
		m.collection = entities.NewCollection(nil)
	case errors.IsPersistence(err):
		slog.WarnContext(ctx, "discarding unreadable game state", "device_id", m.deviceID, "error", err)
		m.session = entities.NewSession()
		m.collection = entities.NewCollection(nil)
	default:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "load canceled")
		}
		slog.ErrorContext(ctx, "failed to load game state, starting fresh", "device_id", m.deviceID, "error", err)
		m.session = entities.NewSession()
		m.collection = entities.NewCollection(nil)
	}

	return newView(m.session, m.collection), nil
}

// mutation changes the working copies of the session and collection
type mutation func(s *entities.Session, c *entities.Collection) error

// apply runs fn under the lock
func (m *Machine) apply(ctx context.Context, action string, navigate bool, fn mutation) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyLocked(ctx, action, navigate, fn)
}

// applyLocked runs fn against copies and commits them only if fn succeeds and
// the result is consistent. Precondition failures leave the session untouched;
// any other failure sets the error flag. Navigating actions advance the epoch.
func (m *Machine) applyLocked(ctx context.Context, action string, navigate bool, fn mutation) (*View, error) {
	next := m.session.Clone()
	coll := entities.NewCollection(m.collection.All())

	if err := fn(next, coll); err != nil {
		if !errors.IsFailedPrecondition(err) {
			m.flagLocked(ctx, action, err)
		}
		return nil, err
	}

	next.Error = nil
	if err := next.CheckInvariants(); err != nil {
		slog.ErrorContext(ctx, "rejected inconsistent transition", "action", action, "error", err)
		return nil, errors.Internalf("%s produced an inconsistent session: %v", action, err)
	}

	from := m.session.Screen
	m.session = next
	m.collection = coll
	if navigate {
		m.epoch++
	}

	slog.DebugContext(ctx, "session transition",
		"action", action,
		"from", from,
		"to", next.Screen,
		"xp", next.Experience)

	if err := m.saveLocked(ctx); err != nil {
		return nil, err
	}
	return newView(m.session, m.collection), nil
}

// flagLocked records err on the current screen and persists it
func (m *Machine) flagLocked(ctx context.Context, action string, err error) {
	m.session.Error = &entities.ActionError{
		Code:    string(errors.GetCode(err)),
		Message: errors.GetMessage(err),
	}
	slog.InfoContext(ctx, "action failed", "action", action, "screen", m.session.Screen, "error", err)
	_ = m.saveLocked(ctx)
}

// saveLocked persists the document. The in-memory state stays authoritative
// when saving fails.
func (m *Machine) saveLocked(ctx context.Context) error {
	_, err := m.repo.Save(context.WithoutCancel(ctx), gamestate.SaveInput{
		DeviceID: m.deviceID,
		Document: &gamestate.Document{
			Session:    m.session.Clone(),
			Collection: m.collection.All(),
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save game state", "device_id", m.deviceID, "error", err)
		return errors.Persistence(err, "failed to save game state")
	}
	return nil
}

// fetchPlan describes one content fetch. guard runs under the lock against a
// snapshot, call runs without the lock, commit applies the result.
type fetchPlan[T any] struct {
	action string
	guard  func(s *entities.Session) error
	call   func(ctx context.Context, s *entities.Session) (T, error)
	commit func(s *entities.Session, c *entities.Collection, result T) error
}

// fetch runs plan once per action and epoch; concurrent duplicates share the
// first caller's outcome.
func fetch[T any](ctx context.Context, m *Machine, plan fetchPlan[T]) (*View, error) {
	m.mu.Lock()
	snapshot := m.session.Clone()
	if err := plan.guard(snapshot); err != nil {
		if !errors.IsFailedPrecondition(err) {
			m.flagLocked(ctx, plan.action, err)
		}
		m.mu.Unlock()
		return nil, err
	}
	epoch := m.epoch
	m.mu.Unlock()

	key := fmt.Sprintf("%s:%d", plan.action, epoch)
	v, err, _ := m.fetches.Do(key, func() (any, error) {
		// A caller that passed the guard just as an earlier flight committed
		// starts a new flight; recheck so it never reaches the generator.
		m.mu.Lock()
		if m.epoch != epoch {
			m.mu.Unlock()
			return nil, errors.Aborted(plan.action + " was superseded")
		}
		if err := plan.guard(m.session); err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.mu.Unlock()

		result, callErr := plan.call(ctx, snapshot)

		m.mu.Lock()
		defer m.mu.Unlock()

		if m.epoch != epoch {
			slog.InfoContext(ctx, "discarding superseded result", "action", plan.action)
			return nil, errors.Aborted(plan.action + " was superseded")
		}
		if callErr != nil {
			m.flagLocked(ctx, plan.action, callErr)
			return nil, callErr
		}
		return m.applyLocked(ctx, plan.action, false, func(s *entities.Session, c *entities.Collection) error {
			if err := plan.guard(s); err != nil {
				return err
			}
			return plan.commit(s, c, result)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*View), nil
}
