package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/graph"
	"github.com/tessro/braid/internal/issue"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long:  "Show issue counts by status plus the ready and blocked totals.",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := loadStore(context.Background(), newClient())
	if err != nil {
		return err
	}

	issues := s.List()
	byStatus := make(map[issue.Status]int)
	for _, iss := range issues {
		byStatus[iss.Status]++
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total\t%d\n", len(issues))
	for _, status := range []issue.Status{issue.StatusOpen, issue.StatusInProgress, issue.StatusBlocked, issue.StatusClosed} {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", status, byStatus[status])
	}
	_, _ = fmt.Fprintf(w, "ready\t%d\n", len(graph.Ready(issues)))
	_, _ = fmt.Fprintf(w, "blocked (deps)\t%d\n", len(graph.Blocked(issues)))
	_ = w.Flush()
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
