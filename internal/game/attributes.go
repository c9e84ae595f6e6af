package game

import (
	"math"
	"strings"
)

// Stat is a key of the mutation multiplier table: one of the four attributes or NEAT.
type Stat string

const (
	StatSTR  Stat = "STR"
	StatSTA  Stat = "STA"
	StatEND  Stat = "END"
	StatMOB  Stat = "MOB"
	StatNEAT Stat = "NEAT"
)

// Attributes lists the four character attributes in display order.
func Attributes() []Stat {
	return []Stat{StatSTR, StatSTA, StatEND, StatMOB}
}

// AttributeXP is an XP amount distributed across the four attributes.
type AttributeXP struct {
	STR float64
	STA float64
	END float64
	MOB float64
}

// Get returns the value for an attribute. NEAT is not an attribute and yields 0.
func (a AttributeXP) Get(s Stat) float64 {
	switch s {
	case StatSTR:
		return a.STR
	case StatSTA:
		return a.STA
	case StatEND:
		return a.END
	case StatMOB:
		return a.MOB
	case StatNEAT:
	}
	return 0
}

func (a AttributeXP) Add(b AttributeXP) AttributeXP {
	return AttributeXP{STR: a.STR + b.STR, STA: a.STA + b.STA, END: a.END + b.END, MOB: a.MOB + b.MOB}
}

func (a AttributeXP) scale(s AttributeXP) AttributeXP {
	return AttributeXP{STR: a.STR * s.STR, STA: a.STA * s.STA, END: a.END * s.END, MOB: a.MOB * s.MOB}
}

func (a AttributeXP) times(f float64) AttributeXP {
	return AttributeXP{STR: a.STR * f, STA: a.STA * f, END: a.END * f, MOB: a.MOB * f}
}

// Split fractions sum to 1.
var evenSplit = AttributeXP{STR: 0.25, STA: 0.25, END: 0.25, MOB: 0.25}

var (
	typeSplits = map[ExerciseType]AttributeXP{
		TypeMultiJoint:   {STR: 1},
		TypeUnilateral:   {STA: 1},
		TypeCore:         {MOB: 1},
		TypeConditioning: {END: 1},
		TypeComplex:      {STR: 0.4, STA: 0.2, END: 0.2, MOB: 0.2},
		TypeNEAT:         {END: 0.7, MOB: 0.3},
	}
	primaryStat = map[ExerciseType]Stat{
		TypeMultiJoint:   StatSTR,
		TypeUnilateral:   StatSTA,
		TypeCore:         StatMOB,
		TypeConditioning: StatEND,
		TypeComplex:      StatSTR,
		TypeNEAT:         StatNEAT,
	}
)

// weakPointOverride replaces the type split for exercises that train a small muscle group.
type weakPointOverride struct {
	keywords []string
	split    AttributeXP
}

var weakPointOverrides = []weakPointOverride{
	{keywords: []string{"lateral raise", "seitheben"}, split: AttributeXP{STR: 0.6, MOB: 0.4}},
	{keywords: []string{"face pull"}, split: AttributeXP{STR: 0.5, MOB: 0.5}},
	{keywords: []string{"calf", "wade", "tibialis"}, split: AttributeXP{MOB: 0.6, END: 0.4}},
}

// PrimaryStat is the mutation key of a type. Types without one report ok=false.
func PrimaryStat(t ExerciseType) (Stat, bool) {
	s, ok := primaryStat[t]
	return s, ok
}

// SplitFor returns the attribute fractions for an exercise. A weak-point override matching the exercise name wins
// over the type split.
func SplitFor(t ExerciseType, exercise string) AttributeXP {
	name := strings.ToLower(exercise)
	for _, o := range weakPointOverrides {
		for _, kw := range o.keywords {
			if strings.Contains(name, kw) {
				return o.split
			}
		}
	}
	if s, ok := typeSplits[t]; ok {
		return s
	}
	return evenSplit
}

// EntryAttributeXP distributes the XP of an entry across the attributes and applies the per-attribute mutation
// multipliers of the entry's week.
func EntryAttributeXP(e Entry, m Mutation) AttributeXP {
	if e.XP == 0 {
		return AttributeXP{}
	}
	return SplitFor(e.Type, e.Exercise).times(float64(e.XP)).scale(m.attributeScale())
}

// AggregateAttributes sums the attribute XP of all entries. mutationFor looks up the mutation of a week.
func AggregateAttributes(entries []Entry, mutationFor func(week int) Mutation) AttributeXP {
	var sum AttributeXP
	for _, e := range entries {
		sum = sum.Add(EntryAttributeXP(e, mutationFor(e.Week)))
	}
	return sum
}

// AttributeTotals rounds the aggregate per attribute.
func AttributeTotals(a AttributeXP) map[Stat]int {
	totals := make(map[Stat]int, len(Attributes()))
	for _, s := range Attributes() {
		totals[s] = int(math.Round(a.Get(s)))
	}
	return totals
}
