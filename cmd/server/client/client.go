// Package client provides commands that call a running alter-ego server
package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/alter-ego/internal/clients/remote"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	identity   string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call the content service of a running server",
	Long:  `Client commands make real gRPC requests against a running alter-ego server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&identity, "as", "", "Forwarded identity to rate limit under (defaults to this connection)")

	ClientCmd.AddCommand(personaCmd)
	ClientCmd.AddCommand(stampCmd)
	ClientCmd.AddCommand(guideCmd)
}

// createContentClient dials the server and returns the remote content client
func createContentClient() (*remote.Client, func(), error) {
	client, err := remote.New(&remote.Config{Address: serverAddr})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return client, cleanup, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	return nil
}
