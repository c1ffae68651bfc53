package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathwise-dev/pathwise/internal/llm/provider"
	"github.com/pathwise-dev/pathwise/pkg/observability"
)

// UserLimiter gates turns per user. A nil limiter disables throttling.
type UserLimiter interface {
	Allow(userID string) bool
}

// EngineConfig wires the engine's collaborators and policies.
type EngineConfig struct {
	Store  SessionStore
	Router *provider.Router

	Intents  IntentExtractor
	Entities EntityExtractor
	Goals    GoalExtractor
	Levels   LevelAssessor
	Paths    PathGenerator

	// IdleWindow is the read-time expiry horizon (default 2h).
	IdleWindow time.Duration
	// SessionTTL is passed to the store on every write (default 24h).
	SessionTTL time.Duration
	// Limiter optionally throttles turns per user.
	Limiter UserLimiter

	Logger zerolog.Logger
}

type handlerFunc func(ctx context.Context, state *State, req Request) Response

// Engine is the top-level conversation orchestrator. It resolves or
// creates session state, runs the NLP collaborators, dispatches to the
// phase handler, advances the phase, persists, and always returns a
// well-formed Response: a turn never fails past the engine boundary.
type Engine struct {
	store    SessionStore
	router   *provider.Router
	intents  IntentExtractor
	entities EntityExtractor
	goals    GoalExtractor
	levels   LevelAssessor
	paths    PathGenerator

	idleWindow time.Duration
	sessionTTL time.Duration
	limiter    UserLimiter
	log        zerolog.Logger
	now        func() time.Time

	handlers map[Phase]handlerFunc
}

// NewEngine creates an engine from cfg, applying defaults for the idle
// window and session TTL.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		store:      cfg.Store,
		router:     cfg.Router,
		intents:    cfg.Intents,
		entities:   cfg.Entities,
		goals:      cfg.Goals,
		levels:     cfg.Levels,
		paths:      cfg.Paths,
		idleWindow: cfg.IdleWindow,
		sessionTTL: cfg.SessionTTL,
		limiter:    cfg.Limiter,
		log:        cfg.Logger.With().Str("component", "conversation-engine").Logger(),
		now:        time.Now,
	}
	if e.idleWindow <= 0 {
		e.idleWindow = DefaultIdleWindow
	}
	if e.sessionTTL <= 0 {
		e.sessionTTL = 24 * time.Hour
	}
	e.handlers = map[Phase]handlerFunc{
		PhaseGreeting:           e.handleGreeting,
		PhaseGoalIdentification: e.handleGoalIdentification,
		PhaseSkillAssessment:    e.handleSkillAssessment,
		PhasePathPlanning:       e.handlePathPlanning,
		PhaseTaskExecution:      e.handleTaskExecution,
		PhaseReviewFeedback:     e.handleReviewFeedback,
	}
	return e
}

// ProcessTurn handles one request/response cycle. It never returns an
// error and never panics outward: every failure degrades to a fixed-text
// zero-confidence error response carrying the session id.
func (e *Engine) ProcessTurn(ctx context.Context, req Request) (resp Response) {
	start := e.now()
	sessionID := req.SessionID
	phase := PhaseGreeting

	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Any("panic", r).Str("user", req.UserID).Msg("turn panicked")
			resp = e.errorResponse(sessionID)
		}
		observability.RecordTurn(string(phase), string(resp.Type), e.now().Sub(start))
	}()

	if e.limiter != nil && !e.limiter.Allow(req.UserID) {
		return Response{
			Message:    throttleMessage,
			Type:       TypeError,
			SessionID:  sessionID,
			Confidence: 0,
		}
	}

	state := e.resolveState(ctx, req)
	sessionID = state.SessionID
	phase = state.Phase

	state.Append(req.Message)

	intent, err := e.intents.ExtractIntent(req.Message, state)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Msg("intent extraction failed")
		e.persist(ctx, state)
		return e.errorResponse(state.SessionID)
	}
	entities, err := e.entities.ExtractEntities(req.Message)
	if err != nil {
		e.log.Warn().Err(err).Str("session", state.SessionID).Msg("entity extraction failed")
		e.persist(ctx, state)
		return e.errorResponse(state.SessionID)
	}
	for k, v := range entities {
		state.Context[k] = v
	}

	handler, ok := e.handlers[state.Phase]
	if !ok {
		handler = e.handleDefault
	}
	resp = handler(ctx, state, req)

	e.advancePhase(state, intent)

	if err := e.persist(ctx, state); err != nil {
		return e.errorResponse(state.SessionID)
	}

	resp.SessionID = state.SessionID
	return resp
}

// resolveState loads the session named by the request, or creates a fresh
// one when the id is absent, unknown, or resolves to an expired state. An
// expired state is treated as not-found: the stale id is discarded and a
// new id generated, so stale context is never resurrected.
func (e *Engine) resolveState(ctx context.Context, req Request) *State {
	if req.SessionID != "" {
		state, err := e.store.Get(ctx, req.SessionID)
		switch {
		case err == nil && !state.ExpiredAt(e.now(), e.idleWindow):
			return state
		case err == nil:
			e.log.Info().Str("session", req.SessionID).Msg("session expired, creating fresh state")
		case !errors.Is(err, ErrSessionNotFound):
			e.log.Warn().Err(err).Str("session", req.SessionID).Msg("session load failed, creating fresh state")
		}
	}
	observability.RecordSessionCreated()
	return NewState(req.UserID)
}

func (e *Engine) persist(ctx context.Context, state *State) error {
	if err := e.store.Put(ctx, state.SessionID, state, e.sessionTTL); err != nil {
		e.log.Error().Err(err).Str("session", state.SessionID).Msg("session persist failed")
		return err
	}
	return nil
}

// advancePhase applies the intent-driven transition rules after the
// handler has run, using only facts now present on the state.
func (e *Engine) advancePhase(state *State, intent string) {
	switch state.Phase {
	case PhaseGreeting:
		if intent == IntentSetLearningGoal {
			state.AdvanceTo(PhaseGoalIdentification)
		}
	case PhaseGoalIdentification:
		if state.LearningGoal != "" {
			state.AdvanceTo(PhaseSkillAssessment)
		}
	case PhaseSkillAssessment:
		if state.UserLevel != "" {
			state.AdvanceTo(PhasePathPlanning)
		}
	case PhasePathPlanning:
		// Advances even when path generation failed this turn. Known
		// product-level tension; pinned by tests, do not "fix" silently.
		state.AdvanceTo(PhaseTaskExecution)
	}
}

func (e *Engine) errorResponse(sessionID string) Response {
	return Response{
		Message:    errorMessage,
		Type:       TypeError,
		SessionID:  sessionID,
		Confidence: 0,
	}
}
