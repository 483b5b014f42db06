package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tessro/braid/internal/store"
	"github.com/tessro/braid/internal/syncer"
	"github.com/tessro/braid/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the issue collection",
	Long:  "Open a terminal view that mirrors the collection and applies pushed changes as they arrive. Reconnects automatically if the push channel drops.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newClient()
	s, err := loadStore(ctx, c)
	if err != nil {
		return err
	}

	p := tui.NewProgram(s)

	// Repaint on every store change, whether from a push event or a
	// refresh reload.
	unsubscribe := s.OnChange(func(store.Change) {
		p.Send(tui.StoreChangedMsg{})
	})
	defer unsubscribe()

	go syncer.NewReconciler(s, c).Run(ctx)

	_, err = p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
