package game

import (
	"slices"
)

// SkillNode is one unlockable node of a tree.
type SkillNode struct {
	ID       string
	Cost     int
	Capstone bool
}

// SkillTree is an ordered list of nodes for one exercise type family. A node requires its predecessor.
type SkillTree struct {
	Type  ExerciseType
	Nodes []SkillNode
}

const (
	skillBonusPerNode = 0.02
	capstoneBonus     = 0.05
)

func newSkillTree(t ExerciseType, ids ...string) SkillTree {
	nodes := make([]SkillNode, len(ids))
	for i, id := range ids {
		nodes[i] = SkillNode{ID: id, Cost: i + 1, Capstone: i == len(ids)-1}
	}
	return SkillTree{Type: t, Nodes: nodes}
}

var skillTrees = []SkillTree{
	newSkillTree(TypeMultiJoint, "grip", "bracing", "leg_drive", "lockout", "titan"),
	newSkillTree(TypeUnilateral, "balance", "control", "symmetry", "stability", "pillar"),
	newSkillTree(TypeCore, "breathing", "anti_rotation", "hollow", "dragon_flag", "iron_core"),
	newSkillTree(TypeConditioning, "pacing", "threshold", "recovery", "vo2", "engine"),
	newSkillTree(TypeComplex, "flow", "transitions", "density", "endurance", "juggernaut"),
}

// SkillTrees returns the catalog.
func SkillTrees() []SkillTree {
	return slices.Clone(skillTrees)
}

// SkillTreeFor looks up the tree of an exercise type family.
func SkillTreeFor(t ExerciseType) (SkillTree, bool) {
	for _, tree := range skillTrees {
		if tree.Type == t {
			return tree, true
		}
	}
	return SkillTree{}, false
}

// SkillState is the persisted unlock state. Spent never exceeds the earned points.
type SkillState struct {
	Unlocked map[ExerciseType][]string `json:"unlocked"`
	Spent    int                       `json:"spent"`
}

func NewSkillState() SkillState {
	return SkillState{Unlocked: make(map[ExerciseType][]string), Spent: 0}
}

func (s SkillState) clone() SkillState {
	c := SkillState{Unlocked: make(map[ExerciseType][]string, len(s.Unlocked)), Spent: s.Spent}
	for t, ids := range s.Unlocked {
		c.Unlocked[t] = slices.Clone(ids)
	}
	return c
}

// IsUnlocked reports whether the node of tree t is unlocked.
func (s SkillState) IsUnlocked(t ExerciseType, nodeID string) bool {
	return slices.Contains(s.Unlocked[t], nodeID)
}

// Multiplier is 1 + 0.02 per unlocked node of the type's tree, plus 0.05 with the capstone. Types without a tree
// get 1.
func (s SkillState) Multiplier(t ExerciseType) float64 {
	tree, ok := SkillTreeFor(t)
	if !ok {
		return 1
	}
	unlocked, capstone := 0, false
	for _, n := range tree.Nodes {
		if s.IsUnlocked(t, n.ID) {
			unlocked++
			capstone = capstone || n.Capstone
		}
	}
	m := 1 + skillBonusPerNode*float64(unlocked)
	if capstone {
		m += capstoneBonus
	}
	return m
}

// EarnedSkillPoints awards each day of history its star rating in points.
func EarnedSkillPoints(entries []Entry) int {
	points := 0
	for _, xp := range DailyXP(entries) {
		points += Stars(xp)
	}
	return points
}

// Unlock spends points on the next node of a tree. Unlocks are permanent.
func (s *SkillState) Unlock(t ExerciseType, nodeID string, earned int) error {
	const action = "unlock skill node"
	tree, ok := SkillTreeFor(t)
	if !ok {
		return reject(action, ErrUnknownTree)
	}
	idx := slices.IndexFunc(tree.Nodes, func(n SkillNode) bool { return n.ID == nodeID })
	if idx < 0 {
		return reject(action, ErrUnknownNode)
	}
	node := tree.Nodes[idx]
	if s.IsUnlocked(t, node.ID) {
		return reject(action, ErrNodeUnlocked)
	}
	if idx > 0 && !s.IsUnlocked(t, tree.Nodes[idx-1].ID) {
		return reject(action, ErrNodeOrder)
	}
	if earned-s.Spent < node.Cost {
		return reject(action, ErrNotEnoughPoints)
	}
	if s.Unlocked == nil {
		s.Unlocked = make(map[ExerciseType][]string)
	}
	s.Unlocked[t] = append(s.Unlocked[t], node.ID)
	s.Spent += node.Cost
	return nil
}

// SkillNodeView is a node with its derived state.
type SkillNodeView struct {
	SkillNode
	Unlocked   bool
	Unlockable bool
}

// SkillTreeView is a tree with its derived state.
type SkillTreeView struct {
	Type       ExerciseType
	Nodes      []SkillNodeView
	Multiplier float64
}

// SkillsView is the skill state exposed to the presentation layer.
type SkillsView struct {
	Earned    int
	Spent     int
	Available int
	Trees     []SkillTreeView
}

// View derives the skill state for earned points.
func (s SkillState) View(earned int) SkillsView {
	v := SkillsView{Earned: earned, Spent: s.Spent, Available: earned - s.Spent, Trees: nil}
	for _, tree := range skillTrees {
		tv := SkillTreeView{
			Type:       tree.Type,
			Nodes:      make([]SkillNodeView, 0, len(tree.Nodes)),
			Multiplier: s.Multiplier(tree.Type),
		}
		prevUnlocked := true
		for _, n := range tree.Nodes {
			unlocked := s.IsUnlocked(tree.Type, n.ID)
			tv.Nodes = append(tv.Nodes, SkillNodeView{
				SkillNode:  n,
				Unlocked:   unlocked,
				Unlockable: !unlocked && prevUnlocked && v.Available >= n.Cost,
			})
			prevUnlocked = unlocked
		}
		v.Trees = append(v.Trees, tv)
	}
	return v
}
