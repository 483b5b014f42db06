package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an issue",
	Long:  "Mark an issue as closed. The record is kept; only status and closed time change.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClose,
}

func runClose(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	m, _, err := newMutator(ctx)
	if err != nil {
		return err
	}

	iss, err := m.Close(ctx, args[0])
	if err != nil {
		return fmt.Errorf("close issue: %w", err)
	}

	fmt.Fprintf(stdout, "Closed issue: %s\n", iss.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
