// Package play drives a play-through from the terminal. Each invocation
// restores the device's saved session, applies one action and prints the
// resulting screen.
package play

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/bootstrap"
	"github.com/KirkDiggler/alter-ego/internal/clients/remote"
	"github.com/KirkDiggler/alter-ego/internal/config"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/game"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
)

// options are the flags shared by every play command
type options struct {
	server     string
	store      string
	path       string
	device     string
	timeout    time.Duration
	jsonOutput bool
	typeDelay  time.Duration
}

// opener builds the machine for one invocation and the func that releases it
type opener func(ctx context.Context, opts *options) (*game.Machine, func(), error)

type app struct {
	out  io.Writer
	opts options
	open opener
}

// NewCommand returns the play command. cfg is read when a subcommand runs,
// after the root command has loaded configuration.
func NewCommand(cfg func() *config.Config) *cobra.Command {
	a := &app{out: os.Stdout}
	a.open = func(ctx context.Context, opts *options) (*game.Machine, func(), error) {
		return openMachine(ctx, cfg(), opts)
	}
	return newCommand(a)
}

func newCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the alter ego game from the terminal",
		Long: fmt.Sprintf(`Play through one alter ego: pick a city, meet your opposite, take on a
mission and earn passport stamps.

Destinations: %s
Suggested styles: %s`,
			strings.Join(destinationNames(), ", "),
			strings.Join(suggestedStyles(), ", ")),
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.opts.server, "server", "", "Content server address; empty generates in-process")
	f.StringVar(&a.opts.store, "store", "", "Game store backend: sqlite, redis or memory (overrides ALTER_EGO_STORE)")
	f.StringVar(&a.opts.path, "db", "", "SQLite file for the sqlite store (overrides ALTER_EGO_STORE_PATH)")
	f.StringVar(&a.opts.device, "device", "", "Device ID the game is saved under (overrides ALTER_EGO_DEVICE_ID)")
	f.DurationVar(&a.opts.timeout, "timeout", 90*time.Second, "Timeout for content requests")
	f.BoolVar(&a.opts.jsonOutput, "json", false, "Print the view as JSON")
	f.DurationVar(&a.opts.typeDelay, "type-delay", 40*time.Millisecond, "Delay between characters on the loading screen")

	cmd.AddCommand(
		a.statusCmd(),
		a.startCmd(),
		a.personaCmd(),
		a.retryCmd(),
		a.selectCmd(),
		a.acceptCmd(),
		a.debriefCmd(),
		a.guideCmd(),
		a.backCmd(),
		a.profileCmd(),
		a.closeCmd(),
		a.resetCmd(),
		a.muteCmd(),
	)
	return cmd
}

// action is one state machine call
type action func(ctx context.Context, m *game.Machine) (*game.View, error)

// run restores the session, applies fn and prints the screen. When fn fails
// the current screen is still printed so the error flag is visible.
func (a *app) run(cmd *cobra.Command, fn action) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.opts.timeout)
	defer cancel()

	m, release, err := a.open(ctx, &a.opts)
	if err != nil {
		return err
	}
	defer release()

	if _, err := m.Load(ctx); err != nil {
		return err
	}

	view, actErr := fn(ctx, m)
	if view == nil {
		view = m.View()
	}

	if a.opts.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to marshal view to JSON: %w", err)
		}
	} else {
		render(a.out, view)
	}

	if actErr != nil {
		return describe(actErr)
	}
	return nil
}

// describe turns a machine error into a message for the terminal
func describe(err error) error {
	switch {
	case errors.IsFailedPrecondition(err):
		return fmt.Errorf("not now: %s", errors.GetMessage(err))
	case errors.IsInvalidArgument(err):
		violations := errors.FieldViolations(err)
		if len(violations) == 0 {
			return fmt.Errorf("invalid input: %s", errors.GetMessage(err))
		}
		parts := make([]string, len(violations))
		for i, v := range violations {
			parts[i] = v.Field + " " + v.Message
		}
		return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
	case errors.IsRateLimited(err):
		return fmt.Errorf("too many requests, wait a minute and try again")
	case errors.IsPersistence(err):
		return fmt.Errorf("progress could not be saved: %w", err)
	default:
		return err
	}
}

// openMachine wires the configured store and generator into a machine
func openMachine(ctx context.Context, cfg *config.Config, opts *options) (*game.Machine, func(), error) {
	if cfg == nil {
		return nil, nil, errors.Internal("configuration not loaded")
	}

	storeCfg := cfg.Store
	if opts.store != "" {
		storeCfg.Backend = opts.store
	}
	if opts.path != "" {
		storeCfg.Path = opts.path
	}

	clk := clock.New()
	var closers []func()
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := bootstrap.NewStore(ctx, storeCfg, clk)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() { _ = store.Close() })

	generator, closeGenerator, err := openGenerator(ctx, cfg, opts)
	if err != nil {
		release()
		return nil, nil, err
	}
	closers = append(closers, closeGenerator)

	deviceID, err := resolveDevice(opts.device, storeCfg)
	if err != nil {
		release()
		return nil, nil, err
	}

	m, err := game.New(&game.Config{
		Generator:  generator,
		Repository: store,
		DeviceID:   deviceID,
		Clock:      clk,
	})
	if err != nil {
		release()
		return nil, nil, err
	}
	return m, release, nil
}

func openGenerator(ctx context.Context, cfg *config.Config, opts *options) (generation.Service, func(), error) {
	if opts.server != "" {
		client, err := remote.New(&remote.Config{Address: opts.server})
		if err != nil {
			return nil, nil, err
		}
		slog.DebugContext(ctx, "using remote content server", "server", opts.server)
		return client, func() { _ = client.Close() }, nil
	}

	limiter, err := bootstrap.NewLimiter(ctx, cfg.Limits)
	if err != nil {
		return nil, nil, err
	}
	service, err := bootstrap.NewGenerationService(ctx, &bootstrap.GenerationConfig{
		Config:  cfg,
		Limiter: limiter,
	})
	if err != nil {
		limiter.Close(context.Background())
		return nil, nil, err
	}
	return service, func() { limiter.Close(context.Background()) }, nil
}

// resolveDevice picks the device ID from the flag, the environment or a
// device file next to the sqlite store. The file is created on first use.
func resolveDevice(flag string, store config.Store) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if store.DeviceID != "" {
		return store.DeviceID, nil
	}

	path := store.Path + ".device"
	data, err := os.ReadFile(filepath.Clean(path))
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "failed to read device file %s", path)
	}

	id := uuid.NewString()
	if err := os.WriteFile(filepath.Clean(path), []byte(id+"\n"), 0o600); err != nil {
		return "", errors.Wrapf(err, "failed to write device file %s", path)
	}
	return id, nil
}
