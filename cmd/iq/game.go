package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
	"strconv"
	"strings"
)

func (c *cli) newQuestCmd() *cobra.Command {
	var date string
	ids := make([]string, 0, len(game.Quests()))
	for _, q := range game.Quests() {
		ids = append(ids, q.ID)
	}

	cmd := &cobra.Command{
		Use:   "quest <id>",
		Short: "Complete a daily quest (" + strings.Join(ids, "|") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				e, err := svc.CompleteQuest(ctx, d, args[0])
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), c.t("cli.granted")+"\n", e.XP)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in YYYY-MM-DD, defaults to today")
	return cmd
}

func (c *cli) newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss",
		Short: "Work through the boss fight of the current week",
	}

	var undo bool
	stepCmd := &cobra.Command{
		Use:   "step <week> <step>",
		Short: "Tick a checklist step of today's boss fight",
		Args:  cobra.ExactArgs(2), //nolint:mnd // week and step.
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parsePositional("week", args[0])
			if err != nil {
				return err
			}
			idx, err := parsePositional("step", args[1])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.SetBossStep(ctx, week, idx, !undo); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
	stepCmd.Flags().BoolVar(&undo, "undo", false, "untick the step")

	clearCmd := &cobra.Command{
		Use:   "clear <week>",
		Short: "Clear the boss once every checklist step is done today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parsePositional("week", args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				grants, err := svc.ClearBoss(ctx, week)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				total := 0
				for _, g := range grants {
					total += g.XP
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), c.t("cli.granted")+"\n", total)
				return nil
			})
		},
	}

	cmd.AddCommand(stepCmd, clearCmd)
	return cmd
}

func (c *cli) newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Spend skill points",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "unlock <tree> <node>",
		Short: "Unlock the next node of a skill tree",
		Args:  cobra.ExactArgs(2), //nolint:mnd // tree and node.
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.UnlockSkillNode(ctx, game.ExerciseType(args[0]), args[1]); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	})
	return cmd
}

func (c *cli) newMutationCmd() *cobra.Command {
	ids := make([]string, 0, len(game.Mutations()))
	for _, m := range game.Mutations() {
		ids = append(ids, m.ID)
	}
	return &cobra.Command{
		Use:   "mutation <week> <id>",
		Short: "Pick the mutation of a week that has none yet (" + strings.Join(ids, "|") + ")",
		Args:  cobra.ExactArgs(2), //nolint:mnd // week and mutation.
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parsePositional("week", args[0])
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				if err := svc.AssignMutation(ctx, week, args[1]); err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printDone(cmd)
				return nil
			})
		},
	}
}

func (c *cli) printDone(cmd *cobra.Command) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.t("cli.done"))
}

func parsePositional(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return n, nil
}
