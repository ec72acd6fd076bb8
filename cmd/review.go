package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/session"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review ITEM_ID GRADE",
		Short: "Grade an item: forgot, hard or easy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := srs.ParseGrade(args[1])
			if err != nil {
				return err
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			now := time.Now().UTC()
			r := session.NewReviewer(e.store.ItemRepo(), e.store.ReviewRepo(), e.log)
			item, err := r.Grade(cmd.Context(), e.cfg.Owner, args[0], grade, now)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderGraded(item, grade, now))
			return nil
		},
	}
}
