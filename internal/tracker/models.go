package tracker

import (
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"time"
)

var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrRejected matches every action refused by the game rules. errors.As with *game.RejectionError gives the
	// reason.
	ErrRejected = game.ErrRejected
)

// WorkoutInput is a set-based training to log.
type WorkoutInput struct {
	Date            time.Time
	Exercise        string
	Type            string
	Sets            int
	NearFailure     bool
	StrictTechnique bool
	Paused          bool
}

// ActivityInput is everyday movement to log.
type ActivityInput struct {
	Date     time.Time
	Exercise string
	Minutes  int
}
