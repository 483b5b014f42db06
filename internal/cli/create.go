package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/issue"
)

var (
	createTitle       string
	createDescription string
	createType        string
	createPriority    int
	createAssignee    string
	createLabels      []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new issue",
	Long:  "Create a new issue on the backend.",
	RunE:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	m, _, err := newMutator(ctx)
	if err != nil {
		return err
	}

	params := issue.CreateParams{
		Title:       createTitle,
		Description: createDescription,
		Priority:    createPriority,
		Assignee:    createAssignee,
		Labels:      createLabels,
	}
	if cmd.Flags().Changed("type") {
		typ, err := parseType(createType)
		if err != nil {
			return err
		}
		params.IssueType = typ
	}

	iss, err := m.Create(ctx, params)
	if err != nil {
		return fmt.Errorf("create issue: %w", err)
	}

	fmt.Fprintf(stdout, "Created issue: %s\n", iss.ID)
	fmt.Fprintf(stdout, "  Title: %s\n", iss.Title)
	return nil
}

func init() {
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Issue title (required)")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Issue description")
	createCmd.Flags().StringVar(&createType, "type", "task", "Issue type (bug, feature, task, epic, chore)")
	createCmd.Flags().IntVarP(&createPriority, "priority", "p", 2, "Issue priority (0=highest, 4=lowest)")
	createCmd.Flags().StringVarP(&createAssignee, "assignee", "a", "", "Assignee")
	createCmd.Flags().StringSliceVarP(&createLabels, "label", "l", nil, "Label (repeatable)")
	_ = createCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(createCmd)
}
