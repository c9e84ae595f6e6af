package game

import (
	"fmt"
	"math"
)

// ChallengeMultiplier applies to every user workout and activity while challenge mode is on.
const ChallengeMultiplier = 1.10

// productPrecision is the number of decimal steps per unit a multiplied XP value is snapped to before rounding.
const productPrecision = 1e9

// StreakTier is the multiplier earned by a streak of at least Days consecutive days.
type StreakTier struct {
	Days       int
	Multiplier float64
}

var streakTiers = []StreakTier{
	{Days: 14, Multiplier: 1.15},
	{Days: 7, Multiplier: 1.10},
	{Days: 3, Multiplier: 1.05},
}

// StreakMultiplier returns the multiplier of the highest tier reached by days.
func StreakMultiplier(days int) float64 {
	for _, tier := range streakTiers {
		if days >= tier.Days {
			return tier.Multiplier
		}
	}
	return 1
}

// Multiplier holds the factors applied to a raw XP value. Factors are multiplied and the product is rounded once.
type Multiplier struct {
	Mutation  float64
	Skill     float64
	Challenge float64
	Streak    float64
}

// NoMultiplier leaves XP unchanged.
func NoMultiplier() Multiplier {
	return Multiplier{Mutation: 1, Skill: 1, Challenge: 1, Streak: 1}
}

// Total is the product of all factors.
func (m Multiplier) Total() float64 {
	return m.Mutation * m.Skill * m.Challenge * m.Streak
}

// Apply multiplies raw and rounds half away from zero. The product is first snapped to nine decimals so that
// binary noise such as 90 * 1.15 = 103.49999999999999 still rounds up to 104.
func (m Multiplier) Apply(raw int) int {
	product := math.Round(float64(raw)*m.Total()*productPrecision) / productPrecision
	return int(math.Round(product))
}

func (m Multiplier) String() string {
	return fmt.Sprintf("x%.2f (mutation %.2f, skill %.2f, challenge %.2f, streak %.2f)",
		m.Total(), m.Mutation, m.Skill, m.Challenge, m.Streak)
}

// MultiplierInput is everything the composed multiplier of a new entry depends on.
type MultiplierInput struct {
	Type       ExerciseType
	Mutation   Mutation
	Skills     SkillState
	Challenge  bool
	StreakDays int
}

// ComposeMultiplier builds the multiplier for a new user entry.
func ComposeMultiplier(in MultiplierInput) Multiplier {
	m := NoMultiplier()
	m.Mutation = in.Mutation.MultiplierFor(in.Type)
	m.Skill = in.Skills.Multiplier(in.Type)
	if in.Challenge {
		m.Challenge = ChallengeMultiplier
	}
	m.Streak = StreakMultiplier(in.StreakDays)
	return m
}
