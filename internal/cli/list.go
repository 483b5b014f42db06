package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/store"
)

var (
	listStatus   string
	listType     string
	listAssignee string
	listLabel    string
	listPriority int
	listQuery    string
	listSnapshot bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Long:  "List issues with optional filters. Filters combine with AND semantics.",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	var s *store.Store
	var err error
	if listSnapshot {
		s, err = loadSnapshotStore()
	} else {
		s, err = loadStore(context.Background(), newClient())
	}
	if err != nil {
		return err
	}

	var patch store.FilterPatch
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(listStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if cmd.Flags().Changed("type") {
		typ, err := parseType(listType)
		if err != nil {
			return err
		}
		patch.Type = &typ
	}
	if cmd.Flags().Changed("priority") {
		p := &listPriority
		patch.Priority = &p
	}
	if listAssignee != "" {
		patch.Assignee = &listAssignee
	}
	if listLabel != "" {
		patch.Label = &listLabel
	}
	if listQuery != "" {
		patch.Query = &listQuery
	}
	s.SetFilters(patch)

	return renderIssues(stdout, s.Filtered())
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (open, in_progress, blocked, closed)")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Filter by type (bug, feature, task, epic, chore)")
	listCmd.Flags().StringVarP(&listAssignee, "assignee", "a", "", "Filter by assignee")
	listCmd.Flags().StringVarP(&listLabel, "label", "l", "", "Filter by label")
	listCmd.Flags().IntVarP(&listPriority, "priority", "p", 0, "Filter by exact priority (0-4)")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by title/description substring")
	listCmd.Flags().BoolVar(&listSnapshot, "snapshot", false, "Read the local snapshot instead of the backend")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format (table, json, yaml)")

	rootCmd.AddCommand(listCmd)
}
