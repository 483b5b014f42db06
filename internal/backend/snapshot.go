package backend

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tessro/braid/internal/issue"
)

// maxSnapshotLine bounds a single record line in the fallback file.
const maxSnapshotLine = 1 << 20

// ReadSnapshot loads issues from a newline-delimited JSON file, one
// record per line. This is the fallback path when the HTTP and push
// surfaces are unavailable: a one-shot load, no incremental sync.
// Malformed lines fail the whole load rather than leaking
// partially-typed data.
func ReadSnapshot(path string) ([]issue.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var issues []issue.Issue
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxSnapshotLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var iss issue.Issue
		if err := json.Unmarshal(raw, &iss); err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
		if iss.ID == "" {
			return nil, fmt.Errorf("snapshot line %d: missing id", line)
		}
		issues = append(issues, iss)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return issues, nil
}

// WriteSnapshot writes issues to path in newline-delimited JSON,
// replacing any existing file.
func WriteSnapshot(path string, issues []issue.Issue) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	w := bufio.NewWriter(f)
	encoder := json.NewEncoder(w)
	for _, iss := range issues {
		if err := encoder.Encode(iss); err != nil {
			f.Close()
			return fmt.Errorf("encode issue %s: %w", iss.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return f.Close()
}
