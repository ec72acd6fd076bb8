package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/session"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			now := time.Now().UTC()
			items, err := e.store.ItemRepo().AllItems(ctx, e.cfg.Owner)
			if err != nil {
				return fmt.Errorf("load items: %w", err)
			}
			events, err := e.store.ReviewRepo().ReviewsSince(ctx, e.cfg.Owner, now.Add(-24*time.Hour))
			if err != nil {
				return fmt.Errorf("load reviews: %w", err)
			}

			summary := session.BuildSummary(items, events, now, e.cfg.Reminder.LeechThreshold)
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(e.cfg.Owner, summary))
			return nil
		},
	}
}
