package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/ident"
)

var nextIDPrefix string

var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Show the next issue id that would be allocated",
	Long:  "Compute the id the next created issue would receive, from the highest numeric suffix across the whole collection.",
	RunE:  runNextID,
}

func runNextID(cmd *cobra.Command, args []string) error {
	s, err := loadStore(context.Background(), newClient())
	if err != nil {
		return err
	}

	prefix := nextIDPrefix
	if prefix == "" {
		prefix = cfg.GetIDPrefix()
	}
	if prefix == "" {
		prefix = ident.DefaultPrefix
	}

	ids := make([]string, 0, s.Len())
	for _, iss := range s.List() {
		ids = append(ids, iss.ID)
	}
	fmt.Fprintln(stdout, ident.Next(prefix, ids))
	return nil
}

func init() {
	nextIDCmd.Flags().StringVar(&nextIDPrefix, "prefix", "", "Id prefix (default from config)")
	rootCmd.AddCommand(nextIDCmd)
}
