package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/backend"
)

var snapshotPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the collection to a local snapshot",
	Long:  "Fetch the full collection and write it to the NDJSON snapshot file, one record per line. The snapshot is what offline commands read.",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadStore(context.Background(), newClient())
	if err != nil {
		return err
	}

	path, err := resolveSnapshotPath()
	if err != nil {
		return err
	}
	if err := backend.WriteSnapshot(path, s.List()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Fprintf(stdout, "Exported %d issues to %s\n", s.Len(), path)
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Push a local snapshot to the backend",
	Long:  "Read the NDJSON snapshot and create every issue the backend does not already have. Existing ids are skipped, never overwritten.",
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path, err := resolveSnapshotPath()
	if err != nil {
		return err
	}
	local, err := backend.ReadSnapshot(path)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", path, err)
	}

	ctx := context.Background()
	c := newClient()
	s, err := loadStore(ctx, c)
	if err != nil {
		return err
	}

	created := 0
	for _, iss := range local {
		if _, ok := s.Get(iss.ID); ok {
			continue
		}
		if _, err := c.Create(ctx, iss.AsCreateParams()); err != nil {
			return fmt.Errorf("import %s: %w", iss.ID, err)
		}
		created++
	}

	fmt.Fprintf(stdout, "Imported %d issues (%d already present)\n", created, len(local)-created)
	return nil
}

func resolveSnapshotPath() (string, error) {
	if snapshotPath != "" {
		return snapshotPath, nil
	}
	return cfg.GetSnapshotPath()
}

func init() {
	exportCmd.Flags().StringVarP(&snapshotPath, "file", "f", "", "Snapshot path (default from config)")
	importCmd.Flags().StringVarP(&snapshotPath, "file", "f", "", "Snapshot path (default from config)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
