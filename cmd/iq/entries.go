package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
	"strconv"
	"text/tabwriter"
	"time"
)

func (c *cli) newEntriesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				entries, err := svc.Entries(ctx)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.t("cli.no_entry"))
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // padding.
				_, _ = fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\t%s\n", c.t("label.date"), c.t("label.week"),
					c.t("label.exercise"), c.t("label.type"), c.t("label.xp"))
				shown := 0
				for i := len(entries) - 1; i >= 0 && (limit <= 0 || shown < limit); i-- {
					e := entries[i]
					_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%d\n", e.ID, e.Date.Format(time.DateOnly), e.Week,
						e.Exercise, c.label("type", string(e.Type)), e.XP)
					shown++
				}
				return tw.Flush() //nolint:wrapcheck // stdout.
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, 0 for all") //nolint:mnd // default.

	cmd.AddCommand(c.newEntryEditCmd(), c.newEntryDeleteCmd(), c.newEntriesClearCmd())
	return cmd
}

func (c *cli) newEntryEditCmd() *cobra.Command {
	var exercise, detail string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the exercise name and detail of an entry, XP stays as it is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			if exercise == "" {
				return errors.New("the exercise is required")
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.UpdateEntry(ctx, id, exercise, detail); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&exercise, "exercise", "", "new exercise name")
	cmd.Flags().StringVar(&detail, "detail", "", "new detail")
	return cmd
}

func (c *cli) newEntryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.DeleteEntry(ctx, id); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
}

func (c *cli) newEntriesClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole log and the progress derived from it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("clearing the log cannot be undone, confirm with --yes")
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.ClearEntries(ctx); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing the log")
	return cmd
}

func parseEntryID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("entry id must be a positive number, got %q", value)
	}
	return id, nil
}
