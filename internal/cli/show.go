package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/graph"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show issue details",
	Long:  "Show detailed information about an issue, including its dependencies and dependents.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c := newClient()
	s, err := loadStore(ctx, c)
	if err != nil {
		return err
	}

	iss, ok := s.Get(args[0])
	if !ok {
		return fmt.Errorf("issue %s not found", args[0])
	}

	fmt.Fprintf(stdout, "ID:       %s\n", iss.ID)
	fmt.Fprintf(stdout, "Title:    %s\n", iss.Title)
	fmt.Fprintf(stdout, "Status:   %s\n", iss.Status)
	fmt.Fprintf(stdout, "Type:     %s\n", iss.IssueType)
	fmt.Fprintf(stdout, "Priority: %d\n", iss.Priority)
	if iss.Assignee != "" {
		fmt.Fprintf(stdout, "Assignee: %s\n", iss.Assignee)
	}
	fmt.Fprintf(stdout, "Created:  %s\n", iss.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(stdout, "Updated:  %s\n", iss.UpdatedAt.Format("2006-01-02 15:04"))
	if iss.ClosedAt != nil {
		fmt.Fprintf(stdout, "Closed:   %s\n", iss.ClosedAt.Format("2006-01-02 15:04"))
	}
	if len(iss.Labels) > 0 {
		fmt.Fprintf(stdout, "Labels:   %s\n", strings.Join(iss.Labels, ", "))
	}

	if len(iss.Dependencies) > 0 {
		fmt.Fprintln(stdout, "\nDepends on:")
		for _, dep := range iss.Dependencies {
			fmt.Fprintf(stdout, "  %s (%s)\n", dep.DependsOnID, dep.Type)
		}
	}

	// Reverse edges are derived, not stored.
	dependents := graph.Dependents(s.List(), iss.ID)
	if len(dependents) > 0 {
		fmt.Fprintln(stdout, "\nDepended on by:")
		for _, edge := range dependents {
			line := fmt.Sprintf("  %s (%s)", edge.IssueID, edge.Type)
			if src, ok := s.Get(edge.IssueID); ok {
				line += " " + truncate(src.Title, 50)
			}
			fmt.Fprintln(stdout, line)
		}
	}

	if iss.Description != "" {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, iss.Description)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
