package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add WORD MEANING",
		Short: "Add a vocabulary item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := srs.Content{
				Word:    strings.TrimSpace(args[0]),
				Meaning: strings.TrimSpace(args[1]),
			}
			if content.Word == "" {
				return fmt.Errorf("word must not be empty")
			}
			content.Example, _ = cmd.Flags().GetString("example")
			content.IPA, _ = cmd.Flags().GetString("ipa")
			content.Notes, _ = cmd.Flags().GetString("notes")
			content.Tags, _ = cmd.Flags().GetStringSlice("tag")

			rawFlags, _ := cmd.Flags().GetStringSlice("flag")
			for _, raw := range rawFlags {
				f, err := srs.ParseFlag(raw)
				if err != nil {
					return err
				}
				if !content.HasFlag(f) {
					content.Flags = append(content.Flags, f)
				}
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			item := srs.NewItem(e.cfg.Owner, content, time.Now().UTC())
			if err := e.store.ItemRepo().Upsert(cmd.Context(), item); err != nil {
				return fmt.Errorf("save item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Content.Word, item.ID)
			return nil
		},
	}

	cmd.Flags().String("example", "", "Example sentence")
	cmd.Flags().String("ipa", "", "IPA pronunciation")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().StringSlice("tag", nil, "Topic tag (repeatable)")
	cmd.Flags().StringSlice("flag", nil, "Category flag: idiom, phrasal_verb, collocation, pronunciation, focus (repeatable)")
	return cmd
}
