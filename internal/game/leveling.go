package game

// Breakpoint is the minimum total XP for a character level.
type Breakpoint struct {
	XP    int
	Level int
}

var characterBreakpoints = []Breakpoint{
	{XP: 0, Level: 1},
	{XP: 500, Level: 2},
	{XP: 1200, Level: 3},
	{XP: 2000, Level: 4},
	{XP: 3000, Level: 5},
	{XP: 4500, Level: 6},
	{XP: 6500, Level: 7},
	{XP: 9000, Level: 8},
	{XP: 12000, Level: 9},
	{XP: 16000, Level: 10},
	{XP: 21000, Level: 11},
	{XP: 27000, Level: 12},
	{XP: 34000, Level: 13},
	{XP: 42000, Level: 14},
	{XP: 51000, Level: 15},
}

// Title keys are translated by the presentation layer.
var titles = []struct {
	minLevel int
	key      string
}{
	{minLevel: 14, key: "title.legend"},
	{minLevel: 11, key: "title.champion"},
	{minLevel: 8, key: "title.veteran"},
	{minLevel: 5, key: "title.warrior"},
	{minLevel: 3, key: "title.squire"},
	{minLevel: 1, key: "title.recruit"},
}

// CharacterProgress is the character level derived from total XP.
type CharacterProgress struct {
	Level    int
	TitleKey string
	// LevelXP is the breakpoint of the current level.
	LevelXP int
	// NextXP is the breakpoint of the next level, 0 at the maximum level.
	NextXP int
}

// MaxLevel reports whether there is no higher level.
func (c CharacterProgress) MaxLevel() bool {
	return c.NextXP == 0
}

// CharacterLevel returns the highest breakpoint level not above totalXP.
func CharacterLevel(totalXP int) CharacterProgress {
	p := CharacterProgress{Level: 1, TitleKey: "", LevelXP: 0, NextXP: 0}
	for _, bp := range characterBreakpoints {
		if totalXP < bp.XP {
			p.NextXP = bp.XP
			break
		}
		p.Level = bp.Level
		p.LevelXP = bp.XP
	}
	p.TitleKey = TitleKey(p.Level)
	return p
}

// TitleKey returns the title of the highest title level not above level.
func TitleKey(level int) string {
	for _, t := range titles {
		if level >= t.minLevel {
			return t.key
		}
	}
	return titles[len(titles)-1].key
}

const (
	attributeBaseRequirement = 200
	attributeStepRequirement = 100
)

// AttributeRequirement is the XP needed to advance from level to level+1.
func AttributeRequirement(level int) int {
	return attributeBaseRequirement + (level-1)*attributeStepRequirement
}

// AttributeLevel is the level of one attribute.
type AttributeLevel struct {
	Level int
	// Progress is the XP collected inside the current level.
	Progress int
	// Required is the XP the current level needs in total.
	Required int
}

// Remaining is the XP missing to reach the next level.
func (a AttributeLevel) Remaining() int {
	return a.Required - a.Progress
}

// AttributeLevelFor walks the requirement curve starting at level 1.
func AttributeLevelFor(xp int) AttributeLevel {
	level := 1
	remaining := max(xp, 0)
	for remaining >= AttributeRequirement(level) {
		remaining -= AttributeRequirement(level)
		level++
	}
	return AttributeLevel{Level: level, Progress: remaining, Required: AttributeRequirement(level)}
}
