package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/graph"
	"github.com/tessro/braid/internal/issue"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage issue dependencies",
	Long:  "Commands for adding and inspecting dependency edges between issues.",
}

// dep add

var (
	depAddType string
	depAddBy   string
)

var depAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on-id>",
	Short: "Add a dependency edge",
	Long:  "Record that the first issue depends on the second. Edges that would form a blocking cycle, duplicate an existing edge, or point at an unknown issue are rejected before anything is sent.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepAdd,
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	depType := issue.DependencyType(depAddType)
	if !depType.Valid() {
		return fmt.Errorf("invalid dependency type %q (blocks, related, parent-child, discovered-from)", depAddType)
	}

	ctx := context.Background()
	m, _, err := newMutator(ctx)
	if err != nil {
		return err
	}

	if _, err := m.AddDependency(ctx, args[0], args[1], depType, depAddBy); err != nil {
		return fmt.Errorf("add dependency: %w", err)
	}

	fmt.Fprintf(stdout, "Added dependency: %s %s %s\n", args[0], depType, args[1])
	return nil
}

// dep list

var depListCmd = &cobra.Command{
	Use:   "list <id>",
	Short: "List an issue's dependencies and dependents",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepList,
}

func runDepList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := loadStore(ctx, newClient())
	if err != nil {
		return err
	}

	iss, ok := s.Get(args[0])
	if !ok {
		return fmt.Errorf("issue %s not found", args[0])
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DIRECTION\tID\tTYPE\tSTATUS")
	for _, dep := range iss.Dependencies {
		status := "?"
		if target, ok := s.Get(dep.DependsOnID); ok {
			status = string(target.Status)
		}
		_, _ = fmt.Fprintf(w, "depends on\t%s\t%s\t%s\n", dep.DependsOnID, dep.Type, status)
	}
	for _, edge := range graph.Dependents(s.List(), iss.ID) {
		status := "?"
		if src, ok := s.Get(edge.IssueID); ok {
			status = string(src.Status)
		}
		_, _ = fmt.Fprintf(w, "depended on by\t%s\t%s\t%s\n", edge.IssueID, edge.Type, status)
	}
	_ = w.Flush()
	return nil
}

func init() {
	depAddCmd.Flags().StringVarP(&depAddType, "type", "t", string(issue.DepBlocks), "Dependency type (blocks, related, parent-child, discovered-from)")
	depAddCmd.Flags().StringVar(&depAddBy, "by", "", "Who recorded the edge")

	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depListCmd)
	rootCmd.AddCommand(depCmd)
}
