package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/graph"
	"github.com/tessro/braid/internal/issue"
)

var (
	readyRemote   bool
	blockedRemote bool
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List issues ready to work on",
	Long:  "List open issues whose blocking dependencies are all closed, sorted by priority then recency. Resolved locally from the full collection; --remote asks the backend instead.",
	RunE:  runReady,
}

func runReady(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c := newClient()

	var issues []issue.Issue
	if readyRemote {
		var err error
		issues, err = c.Ready(ctx)
		if err != nil {
			return fmt.Errorf("list ready issues: %w", err)
		}
	} else {
		s, err := loadStore(ctx, c)
		if err != nil {
			return err
		}
		issues = graph.Ready(s.List())
	}

	return renderIssues(stdout, issues)
}

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List blocked issues",
	Long:  "List issues with at least one unresolved blocking dependency. Resolved locally from the full collection; --remote asks the backend instead.",
	RunE:  runBlocked,
}

func runBlocked(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c := newClient()

	var issues []issue.Issue
	if blockedRemote {
		var err error
		issues, err = c.Blocked(ctx)
		if err != nil {
			return fmt.Errorf("list blocked issues: %w", err)
		}
	} else {
		s, err := loadStore(ctx, c)
		if err != nil {
			return err
		}
		issues = graph.Blocked(s.List())
	}

	return renderIssues(stdout, issues)
}

func init() {
	readyCmd.Flags().BoolVar(&readyRemote, "remote", false, "Use the backend's resolver instead of resolving locally")
	readyCmd.Flags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format (table, json, yaml)")
	blockedCmd.Flags().BoolVar(&blockedRemote, "remote", false, "Use the backend's resolver instead of resolving locally")
	blockedCmd.Flags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format (table, json, yaml)")

	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(blockedCmd)
}
