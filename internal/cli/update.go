package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/issue"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updateType        string
	updatePriority    int
	updateAssignee    string
	updateLabels      []string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an issue",
	Long:  "Update an issue's fields. Only flags that are set are sent; everything else is left untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	m, _, err := newMutator(ctx)
	if err != nil {
		return err
	}

	var patch issue.Patch
	if cmd.Flags().Changed("title") {
		patch.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &updateDescription
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(updateStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if cmd.Flags().Changed("type") {
		typ, err := parseType(updateType)
		if err != nil {
			return err
		}
		patch.IssueType = &typ
	}
	if cmd.Flags().Changed("priority") {
		patch.Priority = &updatePriority
	}
	if cmd.Flags().Changed("assignee") {
		patch.Assignee = &updateAssignee
	}
	if cmd.Flags().Changed("label") {
		patch.Labels = updateLabels
	}

	if patch.IsZero() {
		return fmt.Errorf("nothing to update: set at least one flag")
	}

	iss, err := m.Update(ctx, args[0], patch)
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}

	fmt.Fprintf(stdout, "Updated issue: %s\n", iss.ID)
	return nil
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status (open, in_progress, blocked, closed)")
	updateCmd.Flags().StringVar(&updateType, "type", "", "New type (bug, feature, task, epic, chore)")
	updateCmd.Flags().IntVarP(&updatePriority, "priority", "p", 0, "New priority (0-4)")
	updateCmd.Flags().StringVarP(&updateAssignee, "assignee", "a", "", "New assignee")
	updateCmd.Flags().StringSliceVarP(&updateLabels, "label", "l", nil, "Replacement label set (repeatable)")

	rootCmd.AddCommand(updateCmd)
}
