package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise-dev/pathwise/pkg/conversation"
)

func TestGeneratePath(t *testing.T) {
	p := New()

	path, err := p.GeneratePath(context.Background(), "Kafka", conversation.LevelBeginner, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, path.ID)
	assert.Len(t, path.Modules, 6)
	assert.Equal(t, len(path.Modules), path.EstimatedDurationWeeks)
	assert.Contains(t, path.Modules[0].Title, "Kafka")
	for i, m := range path.Modules {
		assert.Equal(t, i+1, m.Order)
	}
}

func TestGeneratePath_LevelShapesPath(t *testing.T) {
	p := New()
	ctx := context.Background()

	beginner, err := p.GeneratePath(ctx, "Go", conversation.LevelBeginner, nil)
	require.NoError(t, err)
	advanced, err := p.GeneratePath(ctx, "Go", conversation.LevelAdvanced, nil)
	require.NoError(t, err)

	assert.Greater(t, len(beginner.Modules), len(advanced.Modules))
}

func TestGeneratePath_UnknownLevelFallsBack(t *testing.T) {
	p := New()

	path, err := p.GeneratePath(context.Background(), "Go", conversation.UserLevel(""), nil)
	require.NoError(t, err)
	assert.Len(t, path.Modules, 6)
}

func TestGeneratePath_RequiresGoal(t *testing.T) {
	p := New()

	_, err := p.GeneratePath(context.Background(), "", conversation.LevelBeginner, nil)
	assert.ErrorIs(t, err, ErrNoGoal)
}
