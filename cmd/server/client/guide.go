package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

var guideJSONOutput bool

var guideCmd = &cobra.Command{
	Use:   "guide [city]",
	Short: "Generate the local guide for a city",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guideJSONOutput, "json", false, "Output as JSON")
}

func runGuide(_ *cobra.Command, args []string) error {
	client, cleanup, err := createContentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Info("requesting guide", "server", serverAddr, "city", args[0])

	out, err := client.GenerateGuide(ctx, &generation.GenerateGuideInput{
		Identity:    identity,
		Destination: args[0],
	})
	if err != nil {
		return fmt.Errorf("failed to generate guide: %w", err)
	}

	if guideJSONOutput {
		return printJSON(out.Guide)
	}

	g := out.Guide
	fmt.Printf("🧭 %s, %d, from %s\n", g.Name, g.Age, g.Origin)
	fmt.Printf("   %d languages · %d years in the city\n", g.Languages, g.YearsInCity)
	fmt.Printf("\nTerritory: %s\nOffer: %s\n", g.Territory, g.Offer)
	if len(g.Specialties) > 0 {
		fmt.Printf("Specialties: %s\n", strings.Join(g.Specialties, ", "))
	}
	if g.Quote != "" {
		fmt.Printf("\n\"%s\"\n", g.Quote)
	}
	return nil
}
