// Package cli defines the cobra command tree for the guestbook tool.
package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"portfolio/internal/client"
)

const defaultServer = "http://localhost:8080"

var (
	flagServer string
	flagFormat string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "guestbook",
		Short:         "Read and sign the portfolio comment board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("PORTFOLIO_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&flagServer, "server", server, "portfolio API base URL (env PORTFOLIO_SERVER)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")

	root.AddCommand(
		newListCmd(),
		newPostCmd(),
		newSubscribeCmd(),
		newContributionsCmd(),
	)

	return root
}

func newAPIClient() *client.Client {
	return client.New(flagServer)
}

func isJSON() bool {
	return flagFormat == "json"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
