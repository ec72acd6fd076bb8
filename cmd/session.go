package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/session"
	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Assemble a study session from due and new items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			newLimit, _ := cmd.Flags().GetInt("new-limit")
			keywords, _ := cmd.Flags().GetStringSlice("keyword")
			itemIDs, _ := cmd.Flags().GetStringSlice("id")
			smart, _ := cmd.Flags().GetBool("smart")
			seed, _ := cmd.Flags().GetInt64("seed")

			opts := session.Options{
				Limit:    limit,
				NewLimit: newLimit,
				Filter:   session.Filter{Keywords: keywords, ItemIDs: itemIDs},
			}
			if smart {
				opts.Mode = session.ModeSmart
			}
			if raw, _ := cmd.Flags().GetString("flag"); raw != "" {
				f, err := srs.ParseFlag(raw)
				if err != nil {
					return err
				}
				opts.Filter.Flag = f
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if opts.Limit <= 0 {
				opts.Limit = e.cfg.Session.Limit
			}
			if opts.NewLimit <= 0 {
				opts.NewLimit = e.cfg.Session.NewLimit
			}

			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewSource(seed))
			}

			now := time.Now().UTC()
			asm := session.NewAssembler(e.store.ItemRepo(), rng, e.log)
			plan, err := asm.Assemble(cmd.Context(), e.cfg.Owner, opts, now)
			if err != nil {
				return fmt.Errorf("assemble session: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), renderPlan(plan, now))
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum items in the session (default from config)")
	cmd.Flags().Int("new-limit", 0, "Maximum new items when nothing is due (default from config)")
	cmd.Flags().String("flag", "", "Only items with this category flag")
	cmd.Flags().StringSlice("keyword", nil, "Only items matching a topic keyword (repeatable)")
	cmd.Flags().StringSlice("id", nil, "Only these item IDs (repeatable)")
	cmd.Flags().Bool("smart", false, "Fill the session with due, then new, then scheduled items")
	cmd.Flags().Int64("seed", 0, "Shuffle seed for a reproducible order (0 = random)")
	return cmd
}
