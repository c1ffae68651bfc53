// Package planner provides the default learning-path generator. Like the
// nlp package it is a stand-in for an external planning service, built
// deterministically from the goal and assessed level.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pathwise-dev/pathwise/pkg/conversation"
)

// ErrNoGoal is returned when path generation is attempted before a
// learning goal exists on the session.
var ErrNoGoal = errors.New("learning goal required for path generation")

// Static generates a fixed-shape module sequence for a goal and level.
type Static struct{}

// New creates a Static planner.
func New() *Static {
	return &Static{}
}

// stageTitles are the module stages per level, ordered fundamentals-first.
var stageTitles = map[conversation.UserLevel][]string{
	conversation.LevelBeginner: {
		"%s fundamentals",
		"Core concepts of %s",
		"Your first %s project",
		"Common %s patterns",
		"Debugging and troubleshooting %s",
		"%s capstone project",
	},
	conversation.LevelIntermediate: {
		"%s refresher and gaps",
		"Intermediate %s patterns",
		"%s in production",
		"Performance and tuning for %s",
		"%s capstone project",
	},
	conversation.LevelAdvanced: {
		"Advanced %s internals",
		"%s at scale",
		"Operating and extending %s",
		"%s capstone project",
	},
}

// GeneratePath builds a learning path. The level falls back to beginner
// when unset; a missing goal is an error.
func (p *Static) GeneratePath(_ context.Context, goal string, level conversation.UserLevel, _ map[string]any) (*conversation.LearningPath, error) {
	if goal == "" {
		return nil, ErrNoGoal
	}

	titles, ok := stageTitles[level]
	if !ok {
		titles = stageTitles[conversation.LevelBeginner]
	}

	modules := make([]conversation.PathModule, len(titles))
	for i, t := range titles {
		modules[i] = conversation.PathModule{
			Title: fmt.Sprintf(t, goal),
			Order: i + 1,
		}
	}

	return &conversation.LearningPath{
		ID:                     uuid.NewString(),
		Modules:                modules,
		EstimatedDurationWeeks: len(modules),
	}, nil
}
