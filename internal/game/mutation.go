package game

import (
	"math/rand/v2"
	"slices"
)

// Mutation is a weekly modifier. Multipliers map attribute keys to a factor, missing keys mean 1.
type Mutation struct {
	ID          string
	Multipliers map[Stat]float64
}

// None reports whether m is the zero mutation used for weeks without an assignment.
func (m Mutation) None() bool {
	return m.ID == ""
}

func (m Mutation) factor(s Stat) float64 {
	if f, ok := m.Multipliers[s]; ok {
		return f
	}
	return 1
}

// MultiplierFor returns the XP factor for a new entry of type t, keyed by the type's primary stat.
func (m Mutation) MultiplierFor(t ExerciseType) float64 {
	s, ok := PrimaryStat(t)
	if !ok {
		return 1
	}
	return m.factor(s)
}

func (m Mutation) attributeScale() AttributeXP {
	return AttributeXP{STR: m.factor(StatSTR), STA: m.factor(StatSTA), END: m.factor(StatEND), MOB: m.factor(StatMOB)}
}

var mutationCatalog = []Mutation{
	{ID: "berserker", Multipliers: map[Stat]float64{StatSTR: 1.10}},
	{ID: "marathon", Multipliers: map[Stat]float64{StatEND: 1.15}},
	{ID: "iron_lungs", Multipliers: map[Stat]float64{StatSTA: 1.10, StatEND: 1.05}},
	{ID: "flow_state", Multipliers: map[Stat]float64{StatMOB: 1.15}},
	{ID: "wanderer", Multipliers: map[Stat]float64{StatNEAT: 1.25}},
}

// Mutations returns the catalog.
func Mutations() []Mutation {
	return slices.Clone(mutationCatalog)
}

// MutationByID looks up a catalog entry.
func MutationByID(id string) (Mutation, bool) {
	for _, m := range mutationCatalog {
		if m.ID == id {
			return m, true
		}
	}
	return Mutation{}, false
}

// Chooser picks a uniformly random index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	IntN(n int) int
}

type globalChooser struct{}

func (globalChooser) IntN(n int) int {
	return rand.IntN(n) //nolint:gosec // game randomness, not security relevant.
}

// DefaultChooser uses the automatically seeded global generator.
func DefaultChooser() Chooser {
	return globalChooser{}
}

// NewSeededChooser returns a deterministic chooser for tests and replays.
func NewSeededChooser(seed uint64) Chooser {
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // game randomness, not security relevant.
}

// MutationFor returns the mutation of week, or the zero mutation when none is assigned or the assignment no longer
// exists in the catalog.
func (s *State) MutationFor(week int) Mutation {
	m, _ := MutationByID(s.Mutations[week])
	return m
}

// EnsureMutation returns the mutation of week, assigning one with c when missing. Repeated calls return the same
// mutation. Week 0 never gets one. A nil chooser uses [DefaultChooser]. The second result reports whether a new
// assignment was made.
func (s *State) EnsureMutation(week int, c Chooser) (Mutation, bool) {
	if week < 1 {
		return Mutation{}, false
	}
	if m, ok := MutationByID(s.Mutations[week]); ok {
		return m, false
	}
	if c == nil {
		c = DefaultChooser()
	}
	m := mutationCatalog[c.IntN(len(mutationCatalog))]
	s.Mutations[week] = m.ID
	return m, true
}

// AssignMutation sets the mutation of week explicitly. A week keeps its first assignment.
func (s *State) AssignMutation(week int, id string) (Mutation, error) {
	const action = "assign mutation"
	if week < 1 {
		return Mutation{}, reject(action, ErrNoMutationWeek)
	}
	m, ok := MutationByID(id)
	if !ok {
		return Mutation{}, reject(action, ErrUnknownMutation)
	}
	if _, assigned := MutationByID(s.Mutations[week]); assigned {
		return Mutation{}, reject(action, ErrMutationAssigned)
	}
	s.Mutations[week] = m.ID
	return m, nil
}
