package game

import (
	"fmt"
	"math"
	"strings"
)

// Qualifiers are the optional effort flags of a logged workout. Each adds a flat bonus to the raw XP.
type Qualifiers struct {
	NearFailure     bool
	StrictTechnique bool
	Paused          bool
}

const (
	NearFailureBonus     = 20
	StrictTechniqueBonus = 25
	PausedBonus          = 15

	// DefaultSetXP is the per-set rate for types missing from the rate table.
	DefaultSetXP = 50
	// NEATXPPerMinute is the rate for everyday activity such as walking.
	NEATXPPerMinute = 2.5
)

var perSetBaseXP = map[ExerciseType]int{
	TypeMultiJoint:   100,
	TypeUnilateral:   80,
	TypeCore:         60,
	TypeConditioning: 70,
	TypeComplex:      120,
	TypeRest:         0,
}

// PerSetXP returns the per-set rate of t. Unknown types get [DefaultSetXP] and ok=false.
func PerSetXP(t ExerciseType) (int, bool) {
	base, ok := perSetBaseXP[t]
	if !ok {
		return DefaultSetXP, false
	}
	return base, true
}

func (q Qualifiers) bonus() int {
	b := 0
	if q.NearFailure {
		b += NearFailureBonus
	}
	if q.StrictTechnique {
		b += StrictTechniqueBonus
	}
	if q.Paused {
		b += PausedBonus
	}
	return b
}

func (q Qualifiers) String() string {
	var parts []string
	if q.NearFailure {
		parts = append(parts, "near failure")
	}
	if q.StrictTechnique {
		parts = append(parts, "strict technique")
	}
	if q.Paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, ", ")
}

// RawWorkoutXP is perSet(t) * sets plus the qualifier bonuses. Sets below 1 count as 1.
func RawWorkoutXP(t ExerciseType, sets int, q Qualifiers) int {
	base, _ := PerSetXP(t)
	return base*max(sets, 1) + q.bonus()
}

// RawActivityXP converts NEAT minutes to XP, rounding half away from zero. Minutes below 1 count as 1.
func RawActivityXP(minutes int) int {
	return int(math.Round(float64(max(minutes, 1)) * NEATXPPerMinute))
}

// WorkoutDetail documents how the XP of a workout entry was computed.
func WorkoutDetail(t ExerciseType, sets int, q Qualifiers, raw int, m Multiplier, final int) string {
	base, _ := PerSetXP(t)
	d := fmt.Sprintf("%d sets x %d XP", max(sets, 1), base)
	if s := q.String(); s != "" {
		d += " + " + s
	}
	return fmt.Sprintf("%s = %d raw, %s = %d XP", d, raw, m, final)
}

// ActivityDetail documents how the XP of an activity entry was computed.
func ActivityDetail(minutes, raw int, m Multiplier, final int) string {
	return fmt.Sprintf("%d min x %.1f XP = %d raw, %s = %d XP", max(minutes, 1), NEATXPPerMinute, raw, m, final)
}
