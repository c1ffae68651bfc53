package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is the fixed pattern used for timestamps in the persisted
// wire shape.
const timeLayout = "2006-01-02 15:04:05"

// DefaultIdleWindow is how long a session may sit idle before it is
// considered expired and must not be reused.
const DefaultIdleWindow = 2 * time.Hour

// Timestamp serializes as a fixed-pattern date-time string for interop
// with the external store.
type Timestamp struct {
	time.Time
}

// MarshalJSON renders the timestamp in the fixed layout, UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(timeLayout) + `"`), nil
}

// UnmarshalJSON parses the fixed layout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// State is the phase-tagged per-session record. The engine exclusively
// owns its lifecycle; stores hold it only as a serialized blob.
type State struct {
	SessionID       string         `json:"session_id"`
	UserID          string         `json:"user_id"`
	Phase           Phase          `json:"phase"`
	UserLevel       UserLevel      `json:"user_level,omitempty"`
	LearningGoal    string         `json:"learning_goal,omitempty"`
	Context         map[string]any `json:"context"`
	MessageHistory  []string       `json:"message_history"`
	MessageCount    int            `json:"message_count"`
	LastInteraction Timestamp      `json:"last_interaction_time"`
	CreatedAt       Timestamp      `json:"created_at"`
}

// NewState creates a fresh session state in the greeting phase under a
// newly generated id.
func NewState(userID string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID:       uuid.NewString(),
		UserID:          userID,
		Phase:           PhaseGreeting,
		Context:         make(map[string]any),
		MessageHistory:  []string{},
		LastInteraction: Timestamp{now},
		CreatedAt:       Timestamp{now},
	}
}

// Append records one raw user utterance. MessageCount stays equal to
// len(MessageHistory) and the interaction time advances.
func (s *State) Append(message string) {
	s.MessageHistory = append(s.MessageHistory, message)
	s.MessageCount = len(s.MessageHistory)
	s.LastInteraction = Timestamp{time.Now().UTC()}
}

// ExpiredAt reports whether the session has been idle longer than window
// as of now. Expired states must not be reused.
func (s *State) ExpiredAt(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastInteraction.Time) > window
}

// AdvanceTo moves the phase forward. Moves to an earlier or equal phase,
// or to an unknown phase, are ignored: the phase index never decreases.
func (s *State) AdvanceTo(p Phase) {
	if p.Index() > s.Phase.Index() {
		s.Phase = p
	}
}
