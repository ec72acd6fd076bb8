package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/store"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync --from PATH",
		Short: "Merge items from another SQLite database (newest edit wins)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			if from == "" {
				return fmt.Errorf("--from is required")
			}

			// Opening a missing SQLite file would create it.
			if _, err := os.Stat(from); err != nil {
				return fmt.Errorf("open source: %w", err)
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			src, err := store.Open(from, store.WithLogger(e.log))
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer src.Close()

			ctx := cmd.Context()
			incoming, err := src.ItemRepo().AllItems(ctx, e.cfg.Owner)
			if err != nil {
				return fmt.Errorf("read source items: %w", err)
			}
			res, err := e.store.ItemRepo().Merge(ctx, incoming)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d items: %d added, %d updated, %d unchanged, %d conflicts\n",
				len(incoming), res.Inserted, res.Updated, res.Skipped, res.Conflicts)
			return nil
		},
	}

	cmd.Flags().String("from", "", "Path to the SQLite database to merge from")
	return cmd
}
