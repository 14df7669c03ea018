package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

var (
	stampJSONOutput bool
	stampReq        generation.GenerateStampInput
)

var stampCmd = &cobra.Command{
	Use:   "stamp [city] [debrief]",
	Short: "Generate a passport stamp for a debriefed mission",
	Args:  cobra.ExactArgs(2),
	RunE:  runStamp,
}

func init() {
	f := stampCmd.Flags()
	f.BoolVar(&stampJSONOutput, "json", false, "Output as JSON")
	f.StringVar(&stampReq.PlayerName, "player", "", "Player name")
	f.StringVar(&stampReq.PlayerStyle, "style", "", "Player travel style")
	f.StringVar(&stampReq.PersonaName, "ego-name", "", "Alter ego name")
	f.IntVar(&stampReq.PersonaAge, "ego-age", 0, "Alter ego age")
	f.StringVar(&stampReq.PersonaOrigin, "ego-origin", "", "Alter ego origin")
	f.StringVar(&stampReq.MissionText, "mission", "", "Mission text")
	f.IntVar(&stampReq.MissionXP, "xp", 0, "Mission experience value")

	for _, name := range []string{"player", "ego-name", "mission", "xp"} {
		_ = stampCmd.MarkFlagRequired(name) // nolint:errcheck // flag names are static
	}
}

func runStamp(_ *cobra.Command, args []string) error {
	client, cleanup, err := createContentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	input := stampReq
	input.Identity = identity
	input.Destination = args[0]
	input.Debrief = args[1]

	slog.Info("requesting stamp", "server", serverAddr, "city", input.Destination)

	out, err := client.GenerateStamp(ctx, &input)
	if err != nil {
		return fmt.Errorf("failed to generate stamp: %w", err)
	}

	if stampJSONOutput {
		return printJSON(out.Stamp)
	}

	fmt.Printf("%s  %s\n", out.Stamp.SealGlyph, input.Destination)
	fmt.Printf("\n%s\n", out.Stamp.MomentText)
	fmt.Printf("\n%s\n", out.Stamp.ConfrontationText)
	return nil
}
