// Package game turns a log of workout entries into derived game state: experience points, levels, weekly
// mutations, adaptive training hints, boss fights, achievements and skill trees.
//
// Everything in this package is a pure function of its inputs. The only source of randomness, the weekly mutation
// pick, goes through a [Chooser] supplied by the caller. Persistence is the caller's business: actions mutate a
// [State] value and return the entries to append.
package game

import (
	"strings"
	"time"
)

// ExerciseType classifies an entry. It drives the per-set XP rate, the attribute split and the skill tree.
type ExerciseType string

const (
	TypeMultiJoint   ExerciseType = "multi_joint"
	TypeUnilateral   ExerciseType = "unilateral"
	TypeCore         ExerciseType = "core"
	TypeConditioning ExerciseType = "conditioning"
	TypeComplex      ExerciseType = "complex"
	TypeNEAT         ExerciseType = "neat"
	TypeRest         ExerciseType = "rest"
	TypeQuest        ExerciseType = "quest"
	TypeBossWorkout  ExerciseType = "boss_workout"
	TypeBossClear    ExerciseType = "boss_clear"
	TypeAchievement  ExerciseType = "achievement"
)

// TrainingTypes lists the types a user logs sets for.
func TrainingTypes() []ExerciseType {
	return []ExerciseType{TypeMultiJoint, TypeUnilateral, TypeCore, TypeConditioning, TypeComplex}
}

// IsSystem reports whether entries of this type are only ever created by the engine.
func (t ExerciseType) IsSystem() bool {
	switch t {
	case TypeQuest, TypeBossWorkout, TypeBossClear, TypeAchievement:
		return true
	default:
		return false
	}
}

var typeAliases = map[string]ExerciseType{
	"multi-joint":  TypeMultiJoint,
	"mehrgelenkig": TypeMultiJoint,
	"unilateral":   TypeUnilateral,
	"core":         TypeCore,
	"conditioning": TypeConditioning,
	"complex":      TypeComplex,
	"komplex":      TypeComplex,
	"neat":         TypeNEAT,
	"alltag":       TypeNEAT,
	"rest":         TypeRest,
	"ruhetag":      TypeRest,
}

// ParseExerciseType resolves canonical ids and the English and German display labels. Unknown input is returned
// verbatim with ok=false so that callers can decide between the lenient fallback and rejecting it.
func ParseExerciseType(s string) (ExerciseType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	candidate := ExerciseType(key)
	if candidate.IsSystem() {
		return candidate, true
	}
	if _, ok := perSetBaseXP[candidate]; ok || candidate == TypeNEAT {
		return candidate, true
	}
	if t, ok := typeAliases[key]; ok {
		return t, true
	}
	return ExerciseType(strings.TrimSpace(s)), false
}

// Source tags who created an entry.
type Source string

const (
	// SourceUser marks entries logged by the user: workouts, activities and rest days.
	SourceUser Source = "user"
	// SourceQuest marks daily quest completions.
	SourceQuest Source = "quest"
	// SourceBoss marks boss reward parts and the clear marker.
	SourceBoss Source = "boss"
	// SourceAchievement marks achievement grants.
	SourceAchievement Source = "achievement"
)

// Entry is one persisted record of the log.
//
// XP is computed once when the entry is created and never recomputed. Week is a cache of [WeekNumber] for Date and is
// rewritten whenever the start date changes.
type Entry struct {
	ID       int64
	Date     time.Time
	Week     int
	Exercise string
	Type     ExerciseType
	Source   Source
	// Detail is a free-text audit trail of how XP was computed.
	Detail string
	XP     int
	// Ref identifies the catalog item behind a system entry, e.g. the quest or achievement id.
	Ref string
	// GrantID ties together the entries created by a single grant.
	GrantID string
}

// CountsTowardsDay reports whether the entry is part of the daily XP used for stars, adaptive hints,
// achievements, skill points and streaks. Boss and achievement grants are excluded so that rewards never feed back
// into the rules that grant them.
func (e Entry) CountsTowardsDay() bool {
	return e.Source == SourceUser || e.Source == SourceQuest
}
