// Package cli implements the braid command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/config"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

// backendURL is the global --url flag value.
var backendURL string

var rootCmd = &cobra.Command{
	Use:   "braid",
	Short: "Issue tracker client",
	Long:  "braid is a client for a shared issue backend: it mirrors the issue collection locally, applies changes optimistically, and resolves dependency state.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		// Flag beats env beats file.
		if backendURL != "" {
			cfg.BackendURL = backendURL
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "url", "", "backend base URL (overrides config and BRAID_URL)")
}

func Execute() error {
	return rootCmd.Execute()
}
