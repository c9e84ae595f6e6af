package game

import (
	"regexp"
	"strconv"
	"strings"
)

// Verdict names the branch of the adaptive policy that fired.
type Verdict string

const (
	VerdictNoHistory Verdict = "no_history"
	VerdictElite     Verdict = "elite"
	VerdictStrong    Verdict = "strong"
	VerdictDeload    Verdict = "deload"
	VerdictStable    Verdict = "stable"
)

// Adaptation adjusts next week's templates based on the week before the current one.
type Adaptation struct {
	Verdict  Verdict
	SetDelta int
	RepDelta int
	Prior    WeekStats
}

// Adapt applies the policy to the week before currentWeek. The rules are checked in order and the first match wins:
// an elite week adds a set and two reps, a strong week adds a set and a rep, 2 or fewer trained days deload and
// anything else is stable. Week 1 has no prior week and stays neutral.
func Adapt(entries []Entry, currentWeek int) Adaptation {
	if currentWeek <= 1 {
		return Adaptation{Verdict: VerdictNoHistory, SetDelta: 0, RepDelta: 0, Prior: WeekStats{}}
	}
	prior := ComputeWeekStats(entries, currentWeek-1)
	a := Adaptation{Verdict: VerdictStable, SetDelta: 0, RepDelta: 0, Prior: prior}
	switch {
	case prior.TrainDays >= 5 && prior.ThreeStarDays >= 2:
		a.Verdict, a.SetDelta, a.RepDelta = VerdictElite, 1, 2
	case prior.TrainDays >= 4 && (prior.TwoPlusDays >= 2 || prior.ThreeStarDays >= 1):
		a.Verdict, a.SetDelta, a.RepDelta = VerdictStrong, 1, 1
	case prior.TrainDays <= 2:
		a.Verdict, a.SetDelta, a.RepDelta = VerdictDeload, -1, -1
	}
	return a
}

var numberToken = regexp.MustCompile(`\d+`)

// ApplyDelta rewrites the numbers of a template line such as "Squat: 3 sets x 8-10 reps". After the colon the first
// number is the set count and gets setDelta, every later number is a rep count and gets repDelta. Results are at
// least 1.
func ApplyDelta(template string, setDelta, repDelta int) string {
	prefix, body := "", template
	if i := strings.Index(template, ":"); i >= 0 {
		prefix, body = template[:i+1], template[i+1:]
	}
	first := true
	body = numberToken.ReplaceAllStringFunc(body, func(tok string) string {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return tok
		}
		delta := repDelta
		if first {
			delta = setDelta
			first = false
		}
		return strconv.Itoa(max(n+delta, 1))
	})
	return prefix + body
}

// blockTemplates hold the plan lines of each block. Block 0 prepares for the first week.
var blockTemplates = map[int][]string{
	0: {
		"Goblet squat: 2 sets x 10 reps",
		"Push-up: 2 sets x 8 reps",
		"Brisk walk: 1 round x 20 min",
	},
	1: {
		"Squat: 3 sets x 8-10 reps",
		"Bench press: 3 sets x 8-10 reps",
		"Row: 3 sets x 10 reps",
		"Plank: 3 sets x 30 s",
	},
	2: {
		"Squat: 4 sets x 6-8 reps",
		"Overhead press: 3 sets x 6-8 reps",
		"Split squat: 3 sets x 10 reps",
		"Intervals: 6 sets x 30 s",
	},
	3: {
		"Deadlift: 4 sets x 5 reps",
		"Bench press: 4 sets x 5 reps",
		"Complex: 5 sets x 6 reps",
		"Side plank: 3 sets x 45 s",
	},
}

// Recommendation is a plan line for the current block after applying the adaptation.
type Recommendation struct {
	Template string
	Text     string
}

// Recommendations returns the plan of week's block with the adaptation applied. Weeks past the last block reuse it.
func Recommendations(week int, a Adaptation) []Recommendation {
	block := min(Block(week), len(blockTemplates)-1)
	lines := blockTemplates[block]
	recs := make([]Recommendation, 0, len(lines))
	for _, l := range lines {
		recs = append(recs, Recommendation{Template: l, Text: ApplyDelta(l, a.SetDelta, a.RepDelta)})
	}
	return recs
}
