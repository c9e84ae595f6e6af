package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
	"strings"
)

func (c *cli) newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a workout, everyday activity or rest day",
	}
	cmd.AddCommand(c.newLogWorkoutCmd(), c.newLogActivityCmd(), c.newLogRestCmd())
	return cmd
}

func (c *cli) newLogWorkoutCmd() *cobra.Command {
	var (
		in   tracker.WorkoutInput
		date string
	)
	types := make([]string, 0, len(game.TrainingTypes()))
	for _, t := range game.TrainingTypes() {
		types = append(types, string(t))
	}

	cmd := &cobra.Command{
		Use:   "workout <exercise>",
		Short: "Log a set-based workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Date, err = parseDate(date); err != nil {
				return err
			}
			if in.Sets < 1 {
				return errors.New("sets must be a positive number")
			}
			in.Exercise = args[0]
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				e, err := svc.LogWorkout(ctx, in)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printLogged(cmd, e)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Type, "type", "t", string(game.TypeMultiJoint),
		"exercise type ("+strings.Join(types, "|")+")")
	cmd.Flags().IntVarP(&in.Sets, "sets", "s", 3, "number of sets")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in YYYY-MM-DD, defaults to today")
	cmd.Flags().BoolVar(&in.NearFailure, "near-failure", false, "sets were taken close to failure")
	cmd.Flags().BoolVar(&in.StrictTechnique, "strict", false, "strict technique")
	cmd.Flags().BoolVar(&in.Paused, "paused", false, "paused reps")
	return cmd
}

func (c *cli) newLogActivityCmd() *cobra.Command {
	var (
		in   tracker.ActivityInput
		date string
	)
	cmd := &cobra.Command{
		Use:   "activity <exercise>",
		Short: "Log everyday movement such as walking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Date, err = parseDate(date); err != nil {
				return err
			}
			if in.Minutes < 1 {
				return errors.New("minutes must be a positive number")
			}
			in.Exercise = args[0]
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				e, err := svc.LogActivity(ctx, in)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printLogged(cmd, e)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&in.Minutes, "minutes", "m", 30, "duration in minutes")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in YYYY-MM-DD, defaults to today")
	return cmd
}

func (c *cli) newLogRestCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Log a rest day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				e, err := svc.LogRest(ctx, d)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printLogged(cmd, e)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in YYYY-MM-DD, defaults to today")
	return cmd
}

func (c *cli) printLogged(cmd *cobra.Command, e game.Entry) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), c.t("cli.logged")+"\n", e.Exercise, e.XP, e.Detail)
}
