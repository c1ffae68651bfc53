package conversation

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by SessionStore implementations when no
// state exists under the given id.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the engine-side contract for keyed, time-expiring
// storage of conversation state. Implementations hold states as opaque
// serialized blobs; they have no understanding of the internal shape.
type SessionStore interface {
	// Get returns the state stored under sessionID, or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*State, error)

	// Put stores state under sessionID with the given TTL (0 = no expiry).
	Put(ctx context.Context, sessionID string, state *State, ttl time.Duration) error
}

// IntentExtractor classifies the intent of a user utterance given the
// current conversation state.
type IntentExtractor interface {
	ExtractIntent(message string, state *State) (string, error)
}

// EntityExtractor pulls named entities out of a user utterance.
type EntityExtractor interface {
	ExtractEntities(message string) (map[string]any, error)
}

// GoalExtractor recognizes a learning goal in a user utterance. An empty
// goal with a nil error means no goal was found.
type GoalExtractor interface {
	ExtractLearningGoal(message string) (string, error)
}

// LevelAssessor maps a user's self-description to a skill level.
type LevelAssessor interface {
	AssessUserLevel(message string) (UserLevel, error)
}

// PathModule is one unit of a generated learning path.
type PathModule struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// LearningPath is the output of the external path generator.
type LearningPath struct {
	ID                     string       `json:"id"`
	Modules                []PathModule `json:"modules"`
	EstimatedDurationWeeks int          `json:"estimated_duration_weeks"`
}

// PathGenerator produces a learning path for a goal, level, and
// accumulated cross-phase context. May fail.
type PathGenerator interface {
	GeneratePath(ctx context.Context, goal string, level UserLevel, context map[string]any) (*LearningPath, error)
}
