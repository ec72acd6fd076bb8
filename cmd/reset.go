package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/session"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset ITEM_ID",
		Short: "Reset an item's learning progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			r := session.NewReviewer(e.store.ItemRepo(), nil, e.log)
			item, err := r.Reset(cmd.Context(), e.cfg.Owner, args[0], time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s; it is due now.\n", item.Content.Word)
			return nil
		},
	}
}
