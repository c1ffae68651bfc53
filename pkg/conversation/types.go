// Package conversation implements the guided-learning dialog core: a
// phase state machine driving multi-turn conversations, with free-form
// generation delegated to the provider router and session continuity
// backed by a pluggable key-value store.
package conversation

// Phase is a named stage in the guided-conversation state machine.
type Phase string

const (
	PhaseGreeting           Phase = "GREETING"
	PhaseGoalIdentification Phase = "GOAL_IDENTIFICATION"
	PhaseSkillAssessment    Phase = "SKILL_ASSESSMENT"
	PhasePathPlanning       Phase = "PATH_PLANNING"
	PhaseTaskExecution      Phase = "TASK_EXECUTION"
	PhaseReviewFeedback     Phase = "REVIEW_FEEDBACK"
	PhaseCompleted          Phase = "COMPLETED"
)

// phaseOrder fixes the forward advance path. Transitions never regress.
var phaseOrder = []Phase{
	PhaseGreeting,
	PhaseGoalIdentification,
	PhaseSkillAssessment,
	PhasePathPlanning,
	PhaseTaskExecution,
	PhaseReviewFeedback,
	PhaseCompleted,
}

// Index returns the position of p in the phase order, or -1 for unknown
// phase values.
func (p Phase) Index() int {
	for i, ph := range phaseOrder {
		if ph == p {
			return i
		}
	}
	return -1
}

// UserLevel is a skill-level tag assessed from the user's own description.
type UserLevel string

const (
	LevelBeginner     UserLevel = "BEGINNER"
	LevelIntermediate UserLevel = "INTERMEDIATE"
	LevelAdvanced     UserLevel = "ADVANCED"
)

// ResponseType classifies a turn's outcome on the wire.
type ResponseType string

const (
	TypeText          ResponseType = "TEXT_RESPONSE"
	TypeError         ResponseType = "ERROR_MESSAGE"
	TypePathGenerated ResponseType = "PATH_GENERATED"
	TypeClarification ResponseType = "CLARIFICATION_NEEDED"
)

// IntentSetLearningGoal is the intent label that moves a session out of
// the greeting phase.
const IntentSetLearningGoal = "set_learning_goal"

// Request is one inbound conversational turn.
type Request struct {
	UserID            string         `json:"user_id"`
	Message           string         `json:"message"`
	SessionID         string         `json:"session_id,omitempty"`
	Type              string         `json:"type,omitempty"`
	PreferredProvider string         `json:"preferred_provider,omitempty"`
	Context           map[string]any `json:"context,omitempty"`
}

// SuggestedAction is a quick action offered alongside a response.
type SuggestedAction struct {
	Label  string         `json:"label"`
	Action string         `json:"action"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is the structured result of one turn. Confidence is a
// caller-facing heuristic quality signal in [0,1], not a probability.
type Response struct {
	Message          string            `json:"message"`
	Type             ResponseType      `json:"type"`
	SessionID        string            `json:"session_id"`
	Data             map[string]any    `json:"data,omitempty"`
	SuggestedActions []SuggestedAction `json:"suggested_actions,omitempty"`
	Confidence       float64           `json:"confidence"`
}
