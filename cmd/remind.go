package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/reminder"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Periodically report due items until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			once, _ := cmd.Flags().GetBool("once")

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			owners := e.cfg.Reminder.Owners
			if len(owners) == 0 {
				owners = []string{e.cfg.Owner}
			}
			runner := reminder.New(e.store.ItemRepo(), nil, reminder.Options{
				Owners:         owners,
				Interval:       e.cfg.Reminder.Interval,
				LeechThreshold: e.cfg.Reminder.LeechThreshold,
			}, e.log)

			if once {
				sent, err := runner.RunOnce(cmd.Context(), time.Now().UTC())
				for _, r := range sent {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d due (%d leeches)\n", r.OwnerID, r.Due, r.Leeches)
				}
				if len(sent) == 0 && err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review")
				}
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := runner.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			runner.Stop()
			return nil
		},
	}

	cmd.Flags().Bool("once", false, "Check once and exit")
	return cmd
}
