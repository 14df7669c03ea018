package play

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/alter-ego/internal/orchestrators/game"
)

// loadingLines cycle on the loading screen; {city} is replaced with the destination
var loadingLines = []string{
	"Scanning the medinas of {city}...",
	"Finding your complete opposite...",
	"Rebuilding a life from scratch...",
	"Loading Tunisian cultural memory...",
	"Your alter ego is taking shape...",
}

// typewriter prints loading lines one character at a time until stopped
type typewriter struct {
	out       io.Writer
	lines     []string
	charDelay time.Duration
	linePause time.Duration
}

func newTypewriter(out io.Writer, city string, charDelay time.Duration) *typewriter {
	if city == "" {
		city = "Tunisia"
	}
	lines := make([]string, len(loadingLines))
	for i, l := range loadingLines {
		lines[i] = strings.ReplaceAll(l, "{city}", city)
	}
	return &typewriter{
		out:       out,
		lines:     lines,
		charDelay: charDelay,
		linePause: 20 * charDelay,
	}
}

// run types lines until ctx is done. The line being typed is finished
// with a newline so following output starts on a fresh line.
func (t *typewriter) run(ctx context.Context) {
	if t.charDelay <= 0 {
		return
	}

	ticker := time.NewTicker(t.charDelay)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(t.lines) {
		for _, r := range t.lines[i] {
			select {
			case <-ctx.Done():
				fmt.Fprintln(t.out)
				return
			case <-ticker.C:
				fmt.Fprint(t.out, string(r))
			}
		}
		fmt.Fprintln(t.out)

		select {
		case <-ctx.Done():
			return
		case <-time.After(t.linePause):
		}
	}
}

// loadPersona runs the persona fetch and the loading animation together.
// The animation stops as soon as the fetch returns, whatever its outcome.
func loadPersona(ctx context.Context, m *game.Machine, tw *typewriter) (*game.View, error) {
	animCtx, stopAnim := context.WithCancel(ctx)
	defer stopAnim()

	var (
		view     *game.View
		fetchErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stopAnim()
		view, fetchErr = m.LoadPersona(gctx)
		return nil
	})
	g.Go(func() error {
		tw.run(animCtx)
		return nil
	})
	_ = g.Wait()

	return view, fetchErr
}
