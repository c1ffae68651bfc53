// Package nlp provides the default keyword-heuristic implementations of
// the conversation engine's extractor contracts. Production deployments
// inject a real NLP service; these keep the repo runnable end to end.
package nlp

import (
	"regexp"
	"strings"

	"github.com/pathwise-dev/pathwise/pkg/conversation"
)

// Extractor implements IntentExtractor, EntityExtractor, GoalExtractor,
// and LevelAssessor with plain string heuristics.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

var goalVerbs = []string{"learn", "study", "master", "pick up", "get into"}

var goalPattern = regexp.MustCompile(`(?i)(?:learn|study|master|pick up|get into)\s+(.+)`)

// ExtractIntent classifies a user utterance. Goal-setting vocabulary maps
// to the set-learning-goal intent; everything else is generic chat.
func (x *Extractor) ExtractIntent(message string, _ *conversation.State) (string, error) {
	lower := strings.ToLower(message)
	for _, verb := range goalVerbs {
		if strings.Contains(lower, verb) {
			return conversation.IntentSetLearningGoal, nil
		}
	}
	if strings.Contains(lower, "help") {
		return "help", nil
	}
	return "chat", nil
}

// ExtractEntities pulls a topic entity when the goal pattern matches.
func (x *Extractor) ExtractEntities(message string) (map[string]any, error) {
	entities := make(map[string]any)
	if m := goalPattern.FindStringSubmatch(message); m != nil {
		entities["topic"] = cleanGoal(m[1])
	}
	return entities, nil
}

// ExtractLearningGoal returns the topic following a goal-setting verb, or
// "" when the utterance carries no recognizable goal.
func (x *Extractor) ExtractLearningGoal(message string) (string, error) {
	m := goalPattern.FindStringSubmatch(message)
	if m == nil {
		return "", nil
	}
	return cleanGoal(m[1]), nil
}

// AssessUserLevel maps self-description vocabulary to a level tag.
// Unrecognized descriptions default to beginner.
func (x *Extractor) AssessUserLevel(message string) (conversation.UserLevel, error) {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "advanced", "expert", "senior", "years of experience"):
		return conversation.LevelAdvanced, nil
	case containsAny(lower, "intermediate", "some experience", "familiar", "used it before"):
		return conversation.LevelIntermediate, nil
	default:
		return conversation.LevelBeginner, nil
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// cleanGoal trims filler and trailing punctuation from a captured topic.
func cleanGoal(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"about ", "how to ", "some "} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimRight(s, ".!?,;: ")
	return s
}
