package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

var (
	personaJSONOutput bool
	personaStyle      string
)

var personaCmd = &cobra.Command{
	Use:   "persona [name] [city]",
	Short: "Generate an alter ego",
	Long:  `Generate a persona with three missions for a traveler heading to one of the supported cities.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPersona,
}

func init() {
	personaCmd.Flags().BoolVar(&personaJSONOutput, "json", false, "Output as JSON")
	personaCmd.Flags().StringVar(&personaStyle, "style", "Comfortable & guided", "Travel style")
}

func runPersona(_ *cobra.Command, args []string) error {
	client, cleanup, err := createContentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Info("requesting persona", "server", serverAddr, "city", args[1])

	out, err := client.GeneratePersona(ctx, &generation.GeneratePersonaInput{
		Identity:    identity,
		Name:        args[0],
		Destination: args[1],
		Style:       personaStyle,
	})
	if err != nil {
		return fmt.Errorf("failed to generate persona: %w", err)
	}

	if personaJSONOutput {
		return printJSON(out.Persona)
	}

	p := out.Persona
	fmt.Printf("🪪 %s, %d, from %s\n", p.Name, p.Age, p.Origin)
	fmt.Printf("   pace %d · culture %d · social %d\n", p.Stats.Pace, p.Stats.Culture, p.Stats.Social)
	fmt.Printf("\nMoves: %s\nNotices: %s\nNever: %s\n", p.MovementDesc, p.NoticeDesc, p.NeverDesc)
	fmt.Printf("\n\"%s\"\n", p.Quote)

	fmt.Printf("\nMissions:\n")
	for i, m := range p.Missions {
		fmt.Printf("  %d. [%s +%d xp] %s\n", i+1, m.Difficulty, m.XP, m.Text)
	}
	return nil
}
