package game

import (
	"github.com/musoad/iron-quest-sub000/internal/errors"
)

// ErrRejected is matched by every rejected action.
var ErrRejected = errors.NewSentinel("action rejected")

// Rejection reasons. The messages are shown to the user as is.
var (
	ErrUnknownType      = errors.NewSentinel("unknown exercise type")
	ErrNotLoggable      = errors.NewSentinel("this entry type is created by the game and cannot be logged")
	ErrUnknownBoss      = errors.NewSentinel("there is no boss fight in that week")
	ErrBossLocked       = errors.NewSentinel("the boss fight is locked: it is not the boss week")
	ErrBossIncomplete   = errors.NewSentinel("complete every checklist step today before clearing the boss")
	ErrBossCleared      = errors.NewSentinel("the boss has already been cleared")
	ErrUnknownStep      = errors.NewSentinel("the boss has no such checklist step")
	ErrUnknownTree      = errors.NewSentinel("there is no such skill tree")
	ErrUnknownNode      = errors.NewSentinel("the skill tree has no such node")
	ErrNodeUnlocked     = errors.NewSentinel("the skill node is already unlocked")
	ErrNodeOrder        = errors.NewSentinel("unlock the previous node of the tree first")
	ErrNotEnoughPoints  = errors.NewSentinel("not enough skill points")
	ErrUnknownMutation  = errors.NewSentinel("there is no such mutation")
	ErrMutationAssigned = errors.NewSentinel("the week already has a mutation")
	ErrNoMutationWeek   = errors.NewSentinel("weeks before the start date have no mutation")
	ErrUnknownQuest     = errors.NewSentinel("there is no such quest")
	ErrQuestDone        = errors.NewSentinel("the quest is already completed for that day")
	ErrSystemEntry      = errors.NewSentinel("entries created by the game cannot be changed")
	ErrPointsSpent      = errors.NewSentinel("removing the entry would take back skill points that are already spent")
)

// RejectionError is returned when an action's precondition does not hold. No state was changed.
type RejectionError struct {
	Action string
	Reason error
}

func (e *RejectionError) Error() string {
	return e.Action + ": " + e.Reason.Error()
}

// Unwrap makes both [ErrRejected] and the specific reason match with errors.Is.
func (e *RejectionError) Unwrap() []error {
	return []error{ErrRejected, e.Reason}
}

func reject(action string, reason error) error {
	return &RejectionError{Action: action, Reason: reason}
}
