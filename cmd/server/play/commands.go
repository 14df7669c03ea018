package play

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/game"
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(_ context.Context, m *game.Machine) (*game.View, error) {
				return m.View(), nil
			})
		},
	}
}

func (a *app) startCmd() *cobra.Command {
	var name, city, style string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Submit the intro form and generate your alter ego",
		Long:  `Submit the intro form. A name saved by an earlier play-through is reused.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, m *game.Machine) (*game.View, error) {
				view, err := m.Start(ctx, &game.StartInput{
					Name:        name,
					Destination: entities.Destination(city),
					Style:       style,
				})
				if err != nil {
					return nil, err
				}
				return a.loadPersona(ctx, m, view)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&city, "city", "", "Destination: "+strings.Join(destinationNames(), ", "))
	cmd.Flags().StringVar(&style, "style", "", "Travel style, for example "+strconv.Quote(entities.SuggestedStyles[0]))
	return cmd
}

func (a *app) personaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "persona",
		Short: "Generate the alter ego again after a failed attempt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, m *game.Machine) (*game.View, error) {
				return a.loadPersona(ctx, m, m.View())
			})
		},
	}
}

// loadPersona animates the loading screen while the persona is fetched.
// JSON output skips the animation.
func (a *app) loadPersona(ctx context.Context, m *game.Machine, current *game.View) (*game.View, error) {
	delay := a.opts.typeDelay
	if a.opts.jsonOutput {
		delay = 0
	}
	tw := newTypewriter(a.out, string(current.Session.Player.Destination), delay)
	return loadPersona(ctx, m, tw)
}

func (a *app) retryCmd() *cobra.Command {
	return a.simple("retry", "Go back to the intro form from the loading screen", (*game.Machine).Retry)
}

func (a *app) selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [mission-number]",
		Short: "Select one of your alter ego's missions (1-3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidArgumentf("mission number %q is not a number", args[0])
			}
			return a.run(cmd, func(ctx context.Context, m *game.Machine) (*game.View, error) {
				return m.SelectMission(ctx, &game.SelectMissionInput{Index: n - 1})
			})
		},
	}
}

func (a *app) acceptCmd() *cobra.Command {
	return a.simple("accept", "Accept the selected mission", (*game.Machine).AcceptMission)
}

func (a *app) debriefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debrief [text]",
		Short: "Describe how the mission went and receive your stamp",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.run(cmd, func(ctx context.Context, m *game.Machine) (*game.View, error) {
				return m.SubmitDebrief(ctx, &game.SubmitDebriefInput{Text: text})
			})
		},
	}
}

func (a *app) guideCmd() *cobra.Command {
	return a.simple("guide", "Reveal your local guide", (*game.Machine).RevealGuide)
}

func (a *app) backCmd() *cobra.Command {
	return a.simple("back", "Return from the guide to your stamp", (*game.Machine).BackToStamp)
}

func (a *app) profileCmd() *cobra.Command {
	return a.simple("profile", "Open your passport", (*game.Machine).OpenProfile)
}

func (a *app) closeCmd() *cobra.Command {
	return a.simple("close", "Close your passport", (*game.Machine).CloseProfile)
}

func (a *app) resetCmd() *cobra.Command {
	return a.simple("reset", "Start a new alter ego, keeping your name, xp and stamps", (*game.Machine).Reset)
}

func (a *app) muteCmd() *cobra.Command {
	return a.simple("mute", "Toggle sound", (*game.Machine).ToggleMute)
}

// simple builds a command for an action that takes no input
func (a *app) simple(use, short string, fn func(*game.Machine, context.Context) (*game.View, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, m *game.Machine) (*game.View, error) {
				return fn(m, ctx)
			})
		},
	}
}
