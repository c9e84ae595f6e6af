package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
)

func (c *cli) newStartDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-date <date>",
		Short: "Move the start of week 1 and renumber every entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			if date.IsZero() {
				return errors.New("the start date is required")
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.ChangeStartDate(ctx, date); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
}

func (c *cli) newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "challenge on|off",
		Short:     "Toggle challenge mode for future entries",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.SetChallengeMode(ctx, enabled); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.t("label.challenge"), c.t("label."+args[0]))
				return nil
			})
		},
	}
}
