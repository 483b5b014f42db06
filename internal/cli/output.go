package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/tessro/braid/internal/issue"
)

// outputFormat is the shared -o flag value.
var outputFormat string

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// renderIssues writes a list of issues in the selected format.
func renderIssues(w io.Writer, issues []issue.Issue) error {
	switch outputFormat {
	case "", formatTable:
		renderTable(w, issues)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(issues)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(issues)
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", outputFormat)
	}
}

func renderTable(w io.Writer, issues []issue.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRI\tTYPE\tTITLE")
	for _, iss := range issues {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			iss.ID, iss.Status, iss.Priority, iss.IssueType, truncate(iss.Title, 50))
	}
	_ = tw.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// stdout exists so tests can capture command output.
var stdout io.Writer = os.Stdout
