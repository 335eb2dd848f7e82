package states

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPhase_String(t *testing.T) {
	tests := []struct {
		phase    MatchPhase
		expected string
	}{
		{PhaseSetup, "Setup"},
		{PhasePlayerTurn, "PlayerTurn"},
		{PhaseAITurn, "AITurn"},
		{PhaseEnded, "Ended"},
		{PhaseReset, "Reset"},
		{MatchPhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase <= PhaseReset {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
	assert.Equal(t, PhaseSetup, ParsePhase("bogus"))
}

func TestMatchPhase_Properties(t *testing.T) {
	assert.True(t, PhaseEnded.IsTerminal())
	assert.False(t, PhaseAITurn.IsTerminal())

	assert.True(t, PhasePlayerTurn.CanReceiveInput())
	assert.False(t, PhaseAITurn.CanReceiveInput())
	assert.False(t, PhaseEnded.CanReceiveInput())

	assert.True(t, PhaseAITurn.IsTurn())
	assert.False(t, PhaseSetup.IsTurn())
}

func TestMatchPhase_Transitions(t *testing.T) {
	tests := []struct {
		from    MatchPhase
		allowed []MatchPhase
	}{
		{PhaseSetup, []MatchPhase{PhasePlayerTurn, PhaseEnded}},
		{PhasePlayerTurn, []MatchPhase{PhaseAITurn, PhaseEnded}},
		{PhaseAITurn, []MatchPhase{PhasePlayerTurn, PhaseEnded}},
		{PhaseEnded, []MatchPhase{PhaseReset}},
		{PhaseReset, []MatchPhase{PhaseSetup}},
	}

	allPhases := []MatchPhase{PhaseSetup, PhasePlayerTurn, PhaseAITurn, PhaseEnded, PhaseReset}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())

			for _, target := range allPhases {
				shouldAllow := false
				for _, allowed := range tt.allowed {
					if target == allowed {
						shouldAllow = true
						break
					}
				}
				assert.Equal(t, shouldAllow, tt.from.CanTransitionTo(target))
			}
		})
	}
}

func TestMatchContext(t *testing.T) {
	t.Run("NewMatchContext", func(t *testing.T) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		assert.Equal(t, "test-match", ctx.MatchID)
		assert.False(t, ctx.Decided)
		assert.NotNil(t, ctx.Metadata)
	})

	t.Run("Decide only once", func(t *testing.T) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		assert.True(t, ctx.Decide(true, "enemy eliminated", false))
		assert.False(t, ctx.Decide(false, "player eliminated", false))
		assert.True(t, ctx.Victory)
		assert.Equal(t, "enemy eliminated", ctx.Reason)
	})

	t.Run("Elapsed excludes pauses", func(t *testing.T) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		ctx.Advance(2*time.Second, false)
		ctx.Advance(5*time.Second, true)
		ctx.Advance(time.Second, false)

		assert.Equal(t, 3*time.Second, ctx.GetElapsedTime())
		assert.Equal(t, 5*time.Second, ctx.TotalPauseDuration)
	})

	t.Run("Metadata", func(t *testing.T) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		ctx.SetMetadata("key1", "value1")

		val, exists := ctx.GetMetadata("key1")
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		_, exists = ctx.GetMetadata("nonexistent")
		assert.False(t, exists)
	})
}

func TestStateMachine(t *testing.T) {
	setup := func() (*StateMachine, *MatchContext, *[]events.Event) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		bus := events.NewEventBusWithLogger(zerolog.Nop())
		var published []events.Event
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			published = append(published, e)
		})
		return NewStateMachine(ctx, bus), ctx, &published
	}

	t.Run("NewStateMachine", func(t *testing.T) {
		sm, _, _ := setup()
		assert.Equal(t, PhaseSetup, sm.CurrentPhase())
		assert.Len(t, sm.states, 5)
	})

	t.Run("Turn cycle", func(t *testing.T) {
		sm, ctx, published := setup()

		require.NoError(t, sm.TransitionTo(PhasePlayerTurn, "level spawned"))
		require.NoError(t, sm.TransitionTo(PhaseAITurn, "end turn"))
		require.NoError(t, sm.TransitionTo(PhasePlayerTurn, "end turn"))

		ctx.Decide(true, "enemy eliminated", false)
		require.NoError(t, sm.TransitionTo(PhaseEnded, "enemy eliminated"))
		assert.Equal(t, PhaseEnded, sm.CurrentPhase())

		require.Len(t, *published, 4)
		last := (*published)[3].(*events.StateTransitionEvent)
		assert.Equal(t, "PlayerTurn", last.FromPhase)
		assert.Equal(t, "Ended", last.ToPhase)
		assert.Equal(t, "test-match", last.MatchID())
	})

	t.Run("Invalid transitions", func(t *testing.T) {
		sm, _, published := setup()

		err := sm.TransitionTo(PhaseAITurn, "skip player")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transition")
		assert.Equal(t, PhaseSetup, sm.CurrentPhase())
		assert.Empty(t, *published)
	})

	t.Run("Validation", func(t *testing.T) {
		sm, ctx, _ := setup()
		require.NoError(t, sm.TransitionTo(PhasePlayerTurn, "start"))

		err := sm.TransitionTo(PhaseEnded, "no outcome")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decided outcome")

		ctx.Decide(false, "player eliminated", false)
		err = sm.TransitionTo(PhaseAITurn, "late end turn")
		assert.Error(t, err, "no turn can start once decided")
		assert.Equal(t, PhasePlayerTurn, sm.CurrentPhase())
	})

	t.Run("History and restart", func(t *testing.T) {
		sm, ctx, _ := setup()

		_ = sm.TransitionTo(PhasePlayerTurn, "reason1")
		_ = sm.TransitionTo(PhaseAITurn, "reason2")

		history := sm.GetHistory()
		require.Len(t, history, 2)
		assert.Equal(t, PhaseSetup, history[0].From)
		assert.Equal(t, PhasePlayerTurn, history[0].To)
		assert.Equal(t, "reason2", history[1].Reason)

		assert.Error(t, sm.Restart("reload"), "restart needs an ended match")

		ctx.Turn = 4
		ctx.Decide(false, "reload", true)
		require.NoError(t, sm.TransitionTo(PhaseEnded, "reload"))
		require.NoError(t, sm.Restart("reload"))

		assert.Equal(t, PhaseSetup, sm.CurrentPhase())
		assert.Empty(t, sm.GetHistory())
		assert.False(t, ctx.Decided)
		assert.Equal(t, 0, ctx.Turn)
	})

	t.Run("Subscribers may query the machine", func(t *testing.T) {
		ctx := NewMatchContext("test-match", zerolog.Nop())
		bus := events.NewEventBusWithLogger(zerolog.Nop())
		sm := NewStateMachine(ctx, bus)

		var seen MatchPhase
		bus.SubscribeFunc(events.TypeStateTransition, func(events.Event) {
			seen = sm.CurrentPhase()
		})

		require.NoError(t, sm.TransitionTo(PhasePlayerTurn, "start"))
		assert.Equal(t, PhasePlayerTurn, seen)
	})
}

// MockState for testing custom state implementations
type MockState struct {
	phase       MatchPhase
	enterCalled bool
	exitCalled  bool
	enterError  error
	exitError   error
}

func (m *MockState) Phase() MatchPhase             { return m.phase }
func (m *MockState) Enter(*MatchContext) error    { m.enterCalled = true; return m.enterError }
func (m *MockState) Exit(*MatchContext) error     { m.exitCalled = true; return m.exitError }
func (m *MockState) Validate(*MatchContext) error { return nil }

func TestStateMachine_CustomStates(t *testing.T) {
	ctx := NewMatchContext("test-match", zerolog.Nop())
	sm := NewStateMachine(ctx, nil)

	playerMock := &MockState{phase: PhasePlayerTurn}
	aiMock := &MockState{phase: PhaseAITurn, enterError: errors.New("enter failed")}
	sm.RegisterState(playerMock)
	sm.RegisterState(aiMock)

	require.NoError(t, sm.TransitionTo(PhasePlayerTurn, "test"))
	assert.True(t, playerMock.enterCalled)
	assert.False(t, playerMock.exitCalled)

	err := sm.TransitionTo(PhaseAITurn, "test")
	assert.Error(t, err)
	assert.True(t, playerMock.exitCalled)
	assert.Equal(t, PhasePlayerTurn, sm.CurrentPhase(), "failed enter rolls back")
}
