package backend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tessro/braid/internal/issue"
)

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	issues := []issue.Issue{
		issue.New("BD-1", issue.CreateParams{Title: "first", Priority: 1}, now),
		issue.New("BD-2", issue.CreateParams{Title: "second", Labels: []string{"ui"}}, now),
	}
	issues[1].Dependencies = []issue.Dependency{
		{IssueID: "BD-2", DependsOnID: "BD-1", Type: issue.DepBlocks, CreatedAt: now},
	}

	path := filepath.Join(t.TempDir(), "issues.ndjson")
	if err := WriteSnapshot(path, issues); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}

	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d issues, want 2", len(loaded))
	}
	if loaded[0].ID != "BD-1" || loaded[1].ID != "BD-2" {
		t.Errorf("ids = %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if len(loaded[1].Dependencies) != 1 || loaded[1].Dependencies[0].Type != issue.DepBlocks {
		t.Errorf("dependencies lost: %+v", loaded[1].Dependencies)
	}
}

func TestSnapshotOneRecordPerLine(t *testing.T) {
	now := time.Now().UTC()
	path := filepath.Join(t.TempDir(), "issues.ndjson")
	issues := []issue.Issue{
		issue.New("BD-1", issue.CreateParams{Title: "a"}, now),
		issue.New("BD-2", issue.CreateParams{Title: "b"}, now),
	}
	if err := WriteSnapshot(path, issues); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("snapshot has %d lines, want 2", len(lines))
	}
}

func TestReadSnapshotMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ndjson")
	content := `{"id":"BD-1","title":"ok","status":"open","priority":0,"issue_type":"task","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}
not json at all
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadSnapshot(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("ReadSnapshot() error = %v, want line 2 failure", err)
	}
}

func TestReadSnapshotMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noid.ndjson")
	if err := os.WriteFile(path, []byte(`{"title":"orphan"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Error("ReadSnapshot() accepted a record with no id")
	}
}

func TestReadSnapshotSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.ndjson")
	content := "\n" + `{"id":"BD-1","title":"ok","status":"open","priority":0,"issue_type":"task","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}` + "\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	issues, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("loaded %d issues, want 1", len(issues))
	}
}
