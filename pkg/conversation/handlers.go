package conversation

import (
	"context"
	"fmt"

	"github.com/pathwise-dev/pathwise/internal/llm/provider"
)

const (
	welcomeMessage = "Hi! I'm your learning companion. Tell me what you'd like to learn and I'll put together a path for you."

	goalFollowUpFmt = "Great, let's work on %s. How would you describe your current level: beginner, intermediate, or advanced?"

	goalClarification = "I couldn't quite catch what you'd like to learn. Could you name a topic or skill, for example \"I want to learn Kafka\"?"

	levelAcknowledgement = "Got it, thanks. I'll take your level into account while planning your path."

	pathGeneratedFmt = "Your learning path is ready: %d modules over roughly %d weeks. Want to start with the first module or customize the plan?"

	pathFailureMessage = "I couldn't put a learning path together just now. Let's try again in a moment."

	taskAcknowledgement = "Noted. Keep working through your current module and tell me when you're done or stuck."

	feedbackAcknowledgement = "Thanks for the feedback. I'll use it to adjust the rest of your path."

	degradedMessage = "I'm having trouble reaching my reasoning backend right now, but I'm still here. Could you rephrase or try again shortly?"

	errorMessage = "Something went wrong on my side while handling that. Please try again."

	throttleMessage = "You're sending messages a little too quickly. Give me a second to catch up."

	systemFraming = "You are a patient learning mentor guiding a student through a structured learning path. Answer concisely and stay on the student's topic."
)

// promptHistoryTurns bounds how much history the default handler feeds
// into the provider prompt.
const promptHistoryTurns = 3

func (e *Engine) handleGreeting(_ context.Context, _ *State, _ Request) Response {
	return Response{
		Message: welcomeMessage,
		Type:    TypeText,
		SuggestedActions: []SuggestedAction{
			{Label: "Set a learning goal", Action: "set_goal"},
			{Label: "Browse popular topics", Action: "browse_topics"},
			{Label: "Continue where I left off", Action: "resume_path"},
		},
		Confidence: 1.0,
	}
}

func (e *Engine) handleGoalIdentification(_ context.Context, state *State, req Request) Response {
	goal, err := e.goals.ExtractLearningGoal(req.Message)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Msg("goal extraction failed")
		goal = ""
	}
	if goal == "" {
		// Goal stays unset; the phase will not advance this turn.
		return Response{
			Message:    goalClarification,
			Type:       TypeClarification,
			Confidence: 0.3,
		}
	}

	state.LearningGoal = goal
	return Response{
		Message:    fmt.Sprintf(goalFollowUpFmt, goal),
		Type:       TypeText,
		Confidence: 0.8,
	}
}

func (e *Engine) handleSkillAssessment(_ context.Context, state *State, req Request) Response {
	level, err := e.levels.AssessUserLevel(req.Message)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Msg("level assessment failed")
		return e.errorResponse(state.SessionID)
	}

	state.UserLevel = level
	return Response{
		Message:    levelAcknowledgement,
		Type:       TypeText,
		Confidence: 0.9,
	}
}

func (e *Engine) handlePathPlanning(ctx context.Context, state *State, _ Request) Response {
	path, err := e.paths.GeneratePath(ctx, state.LearningGoal, state.UserLevel, state.Context)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Str("goal", state.LearningGoal).Msg("path generation failed")
		return Response{
			Message:    pathFailureMessage,
			Type:       TypeError,
			Confidence: 0,
		}
	}

	state.Context["path_id"] = path.ID
	return Response{
		Message: fmt.Sprintf(pathGeneratedFmt, len(path.Modules), path.EstimatedDurationWeeks),
		Type:    TypePathGenerated,
		Data: map[string]any{
			"path_id":                  path.ID,
			"module_count":             len(path.Modules),
			"estimated_duration_weeks": path.EstimatedDurationWeeks,
		},
		SuggestedActions: []SuggestedAction{
			{Label: "Start the first module", Action: "start_path", Params: map[string]any{"path_id": path.ID}},
			{Label: "Customize the plan", Action: "customize_path", Params: map[string]any{"path_id": path.ID}},
		},
		Confidence: 0.85,
	}
}

func (e *Engine) handleTaskExecution(_ context.Context, _ *State, _ Request) Response {
	return Response{
		Message:    taskAcknowledgement,
		Type:       TypeText,
		Confidence: 0.7,
	}
}

func (e *Engine) handleReviewFeedback(_ context.Context, _ *State, _ Request) Response {
	return Response{
		Message:    feedbackAcknowledgement,
		Type:       TypeText,
		Confidence: 0.7,
	}
}

// handleDefault covers COMPLETED and any phase value without a dedicated
// handler: it assembles a bounded prompt and defers to the provider
// router. Router failures degrade to a soft textual response instead of
// surfacing an error to the caller.
func (e *Engine) handleDefault(ctx context.Context, state *State, req Request) Response {
	target := ""
	if req.PreferredProvider != "" && e.router.Available(req.PreferredProvider) {
		target = req.PreferredProvider
	}

	text, err := e.router.Send(ctx, e.buildPrompt(state, req.Message), target)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Msg("router send failed, degrading")
		return Response{
			Message:    degradedMessage,
			Type:       TypeText,
			Confidence: 0.5,
		}
	}

	return Response{
		Message:    text,
		Type:       TypeText,
		Confidence: 0.7,
	}
}

// buildPrompt assembles the bounded conversational context: system
// framing, accumulated profile facts, up to the last promptHistoryTurns
// prior turns with alternating labels, and the current message.
func (e *Engine) buildPrompt(state *State, current string) []provider.Message {
	framing := systemFraming
	framing += fmt.Sprintf("\nConversation phase: %s.", state.Phase)
	if state.LearningGoal != "" {
		framing += fmt.Sprintf(" The student's goal is %s.", state.LearningGoal)
	}
	if state.UserLevel != "" {
		framing += fmt.Sprintf(" Their level is %s.", state.UserLevel)
	}

	messages := []provider.Message{{Role: "system", Content: framing}}

	// The current message was already appended to history; the window of
	// prior turns excludes it.
	prior := state.MessageHistory
	if n := len(prior); n > 0 {
		prior = prior[:n-1]
	}
	if len(prior) > promptHistoryTurns {
		prior = prior[len(prior)-promptHistoryTurns:]
	}
	for i, m := range prior {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		messages = append(messages, provider.Message{Role: role, Content: m})
	}

	return append(messages, provider.Message{Role: "user", Content: current})
}
