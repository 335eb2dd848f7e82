package game

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutopilotAttacksTargetInRange(t *testing.T) {
	h := newHarness(t)
	m := h.match
	units := arrange(t, m,
		placement{core.Golem, core.SidePlayer, 3, 3},
		placement{core.Grunt, core.SideEnemy, 3, 4},
	)
	golem, grunt := units[0], units[1]

	require.NoError(t, NewAutopilot(testutil.NopLogger()).Play(m))
	assert.Equal(t, at(3, 3), golem.Position(), "attacking ends the activation")
	assert.False(t, golem.CanMove)
	assert.False(t, golem.CanShoot)
	assert.Nil(t, m.Selected())

	m.Tick(time.Millisecond)
	assert.True(t, grunt.Destroyed)
	assert.Equal(t, states.PhaseEnded, m.Phase())
	assert.Equal(t, []bool{true}, h.outcome.results)
}

func TestAutopilotAdvancesWithoutTargets(t *testing.T) {
	h := newHarness(t)
	m := h.match
	units := arrange(t, m,
		placement{core.Grunt, core.SidePlayer, 3, 1},
		placement{core.Grunt, core.SideEnemy, 3, 7},
	)
	grunt := units[0]

	require.NoError(t, NewAutopilot(testutil.NopLogger()).Play(m))
	assert.Equal(t, at(3, 2), grunt.Position())
	assert.False(t, grunt.CanMove)
	assert.Nil(t, m.Selected())
	assert.True(t, m.IsPlayerTurn(), "the autopilot leaves ending the turn to the caller")
}

func TestAutopilotMovesThenShoots(t *testing.T) {
	h := newHarness(t)
	m := h.match
	units := arrange(t, m,
		placement{core.Grunt, core.SidePlayer, 3, 3},
		placement{core.Grunt, core.SideEnemy, 4, 5},
	)
	player, enemy := units[0], units[1]

	require.NoError(t, NewAutopilot(testutil.NopLogger()).Play(m))
	assert.Equal(t, at(3, 4), player.Position())
	assert.Equal(t, 1.0, enemy.CurrentHealth)
	assert.False(t, player.CanShoot)
	assert.Equal(t, 1, h.stats.Snapshot().Player.Attacks)
}

func TestAutopilotRefusesOutsidePlayerTurn(t *testing.T) {
	h := newHarness(t)
	m := h.match
	arrange(t, m,
		placement{core.Golem, core.SidePlayer, 3, 1},
		placement{core.Grunt, core.SideEnemy, 3, 6},
	)
	ap := NewAutopilot(testutil.NopLogger())

	require.NoError(t, m.EndTurn())
	assert.ErrorIs(t, ap.Play(m), core.ErrNotPlayerTurn)

	h.gate.Paused = true
	m.Tick(time.Millisecond)
	assert.ErrorIs(t, ap.Play(m), core.ErrPaused)
}
