package conversation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	st := NewState("u1")

	assert.NotEmpty(t, st.SessionID)
	assert.Equal(t, "u1", st.UserID)
	assert.Equal(t, PhaseGreeting, st.Phase)
	assert.NotNil(t, st.Context)
	assert.Equal(t, 0, st.MessageCount)

	other := NewState("u1")
	assert.NotEqual(t, st.SessionID, other.SessionID)
}

func TestState_AppendKeepsCountInvariant(t *testing.T) {
	st := NewState("u1")
	before := st.LastInteraction.Time

	st.Append("first")
	st.Append("second")

	assert.Equal(t, len(st.MessageHistory), st.MessageCount)
	assert.Equal(t, 2, st.MessageCount)
	assert.False(t, st.LastInteraction.Time.Before(before))
}

func TestState_ExpiredAt(t *testing.T) {
	st := NewState("u1")
	now := time.Now().UTC()
	st.LastInteraction = Timestamp{now.Add(-3 * time.Hour)}

	assert.True(t, st.ExpiredAt(now, DefaultIdleWindow))

	st.LastInteraction = Timestamp{now.Add(-time.Hour)}
	assert.False(t, st.ExpiredAt(now, DefaultIdleWindow))
}

func TestState_AdvanceTo_NeverRegresses(t *testing.T) {
	st := NewState("u1")
	st.Phase = PhaseSkillAssessment

	st.AdvanceTo(PhaseGreeting)
	assert.Equal(t, PhaseSkillAssessment, st.Phase)

	st.AdvanceTo(PhaseSkillAssessment)
	assert.Equal(t, PhaseSkillAssessment, st.Phase)

	st.AdvanceTo(Phase("BOGUS"))
	assert.Equal(t, PhaseSkillAssessment, st.Phase)

	st.AdvanceTo(PhasePathPlanning)
	assert.Equal(t, PhasePathPlanning, st.Phase)
}

func TestPhase_Index(t *testing.T) {
	assert.Equal(t, 0, PhaseGreeting.Index())
	assert.Equal(t, 6, PhaseCompleted.Index())
	assert.Equal(t, -1, Phase("BOGUS").Index())

	for i := 1; i < len(phaseOrder); i++ {
		assert.Greater(t, phaseOrder[i].Index(), phaseOrder[i-1].Index())
	}
}

func TestState_TimestampWireFormat(t *testing.T) {
	st := NewState("u1")
	st.LastInteraction = Timestamp{time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"last_interaction_time":"2026-03-14 09:26:53"`)

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, st.LastInteraction.Time, back.LastInteraction.Time)
	assert.Equal(t, st.SessionID, back.SessionID)
}
