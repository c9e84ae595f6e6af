package game_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestEntryAttributeXP(t *testing.T) {
	ironLungs, _ := game.MutationByID("iron_lungs")
	wanderer, _ := game.MutationByID("wanderer")

	tests := []struct {
		name     string
		typ      game.ExerciseType
		exercise string
		xp       int
		mutation game.Mutation
		want     game.AttributeXP
	}{
		{
			name: "single attribute", typ: game.TypeMultiJoint, exercise: "Squat", xp: 100,
			want: game.AttributeXP{STR: 100, STA: 0, END: 0, MOB: 0},
		},
		{
			name: "complex split", typ: game.TypeComplex, exercise: "Bear complex", xp: 100,
			want: game.AttributeXP{STR: 40, STA: 20, END: 20, MOB: 20},
		},
		{
			name: "neat split", typ: game.TypeNEAT, exercise: "Walk", xp: 100,
			want: game.AttributeXP{STR: 0, STA: 0, END: 70, MOB: 30},
		},
		{
			name: "unknown type splits evenly", typ: "yoga", exercise: "Sun salutation", xp: 100,
			want: game.AttributeXP{STR: 25, STA: 25, END: 25, MOB: 25},
		},
		{
			name: "quest splits evenly", typ: game.TypeQuest, exercise: "protein", xp: 40,
			want: game.AttributeXP{STR: 10, STA: 10, END: 10, MOB: 10},
		},
		{
			name: "weak point override replaces the type split", typ: game.TypeMultiJoint,
			exercise: "Cable Lateral Raise", xp: 100,
			want: game.AttributeXP{STR: 60, STA: 0, END: 0, MOB: 40},
		},
		{
			name: "german weak point name", typ: game.TypeUnilateral, exercise: "Wadenheben", xp: 100,
			want: game.AttributeXP{STR: 0, STA: 0, END: 40, MOB: 60},
		},
		{
			name: "mutation scales each attribute", typ: game.TypeComplex, exercise: "Complex", xp: 100,
			mutation: ironLungs,
			want:     game.AttributeXP{STR: 40, STA: 22, END: 21, MOB: 20},
		},
		{
			name: "neat mutation does not scale attributes", typ: game.TypeNEAT, exercise: "Walk", xp: 100,
			mutation: wanderer,
			want:     game.AttributeXP{STR: 0, STA: 0, END: 70, MOB: 30},
		},
		{
			name: "boss clear marker", typ: game.TypeBossClear, exercise: "gatekeeper", xp: 0,
			want: game.AttributeXP{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := userDay("2024-01-02", tt.xp)
			e.Type = tt.typ
			e.Exercise = tt.exercise
			got := game.EntryAttributeXP(e, tt.mutation)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("EntryAttributeXP() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregateAttributes(t *testing.T) {
	berserker, _ := game.MutationByID("berserker")
	entries := []game.Entry{
		userDay("2024-01-02", 100), // week 1
		userDay("2024-01-09", 100), // week 2, berserker
		withSource(userDay("2024-01-09", 200), game.SourceBoss, game.TypeBossWorkout),
	}
	mutationFor := func(week int) game.Mutation {
		if week == 2 {
			return berserker
		}
		return game.Mutation{}
	}

	got := game.AttributeTotals(game.AggregateAttributes(entries, mutationFor))
	want := map[game.Stat]int{game.StatSTR: 265, game.StatSTA: 50, game.StatEND: 50, game.StatMOB: 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AttributeTotals() mismatch (-want +got):\n%s", diff)
	}
}
