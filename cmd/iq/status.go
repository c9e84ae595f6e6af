package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
	"io"
	"strings"
	"time"
)

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show character, week and unlock status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withService(cmd, func(ctx context.Context, svc *tracker.Service) error {
				snap, err := svc.Snapshot(ctx)
				if err != nil {
					return err //nolint:wrapcheck // shown to the user as is.
				}
				c.printStatus(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}
}

func (c *cli) printStatus(w io.Writer, s game.Snapshot) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format+"\n", args...) }

	p("== %s ==", c.t("section.character"))
	p("%s, %s %d", c.t(s.Character.TitleKey), c.t("label.level"), s.Character.Level)
	if s.Character.MaxLevel() {
		p("%s: %d", c.t("label.xp"), s.Totals.All)
	} else {
		p("%s: %d / %d", c.t("label.xp"), s.Totals.All, s.Character.NextXP)
	}
	p("%s: %d / %d  %s: %d  %s: %s", c.t("label.week"), s.DisplayWeek, s.MaxWeek, c.t("label.block"), s.Block,
		c.t("label.start_date"), s.StartDate.Format(time.DateOnly))
	p("%s: %d %s %s", c.t("label.today"), s.Totals.Today, c.t("label.xp"), stars(s.TodayStars))
	p("%s: %d  %s: %d", c.t("label.streak"), s.Streak, c.t("label.best_streak"), s.BestStreak)
	if s.Challenge {
		p("%s: %s", c.t("label.challenge"), c.t("label.on"))
	}

	p("\n== %s ==", c.t("section.attributes"))
	for _, a := range s.Attributes {
		p("%-20s %s %2d  %d/%d", c.label("stat", string(a.Stat)), c.t("label.level"), a.Level.Level,
			a.Level.Progress, a.Level.Required)
	}

	p("\n== %s ==", c.t("section.mutation"))
	if s.Mutation.None() {
		p("%s", c.t("mutation.none"))
	} else {
		p("%s", c.label("mutation", s.Mutation.ID))
	}

	p("\n== %s ==", c.t("section.adaptive"))
	p("%s", c.label("verdict", string(s.Adaptation.Verdict)))
	for _, r := range s.Recommendations {
		p("- %s", r.Text)
	}

	p("\n== %s ==", c.t("section.quests"))
	for _, q := range s.Quests {
		p("[%s] %-12s %s (+%d)", check(q.Done), q.ID, c.label("quest", q.ID), q.RewardXP)
	}

	p("\n== %s ==", c.t("section.bosses"))
	for _, b := range s.Bosses {
		p("%s %2d  %-18s %s", c.t("label.week"), b.Week, c.label("boss", b.ID), c.label("boss.status", string(b.Status)))
		if b.Status != game.BossOpen {
			continue
		}
		for i, step := range b.Steps {
			p("    %d [%s] %s", i, check(b.Done[i]), c.t(step))
		}
	}

	p("\n== %s ==", c.t("section.achievements"))
	for _, a := range s.Achievements {
		p("[%s] %-20s %d / %d", check(a.Earned), c.label("achievement", a.ID), a.Progress, a.Threshold)
	}

	p("\n== %s ==", c.t("section.skills"))
	p("%s: %d", c.t("label.points"), s.Skills.Available)
	for _, tree := range s.Skills.Trees {
		nodes := make([]string, 0, len(tree.Nodes))
		for _, n := range tree.Nodes {
			nodes = append(nodes, fmt.Sprintf("[%s] %s", check(n.Unlocked), n.ID))
		}
		p("%-14s x%.2f  %s", tree.Type, tree.Multiplier, strings.Join(nodes, " "))
	}
}

func check(done bool) string {
	if done {
		return "x"
	}
	return " "
}

func stars(n int) string {
	return strings.Repeat("*", n)
}
