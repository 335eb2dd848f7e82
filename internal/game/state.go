package game

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
)

// MatchState is a read-only snapshot of a match
type MatchState struct {
	MatchID      string
	Level        string
	LevelIndex   int
	Turn         int
	Active       core.Side
	Phase        states.MatchPhase
	Running      bool
	PlayerUnits  int
	EnemyUnits   int
	Elapsed      time.Duration
	TurnTimeLeft time.Duration
	Victory      bool
	Reason       string
}

// State returns a snapshot of the match
func (m *Match) State() MatchState {
	ctx := m.stateMachine.GetContext()
	lvl, idx := m.Level()
	return MatchState{
		MatchID:      m.id,
		Level:        lvl.Name,
		LevelIndex:   idx,
		Turn:         ctx.Turn,
		Active:       m.active,
		Phase:        m.stateMachine.CurrentPhase(),
		Running:      m.running,
		PlayerUnits:  m.tally.Remaining(core.SidePlayer),
		EnemyUnits:   m.tally.Remaining(core.SideEnemy),
		Elapsed:      ctx.GetElapsedTime(),
		TurnTimeLeft: m.turns.TimeLeft(),
		Victory:      ctx.Victory,
		Reason:       ctx.Reason,
	}
}

// syncContext copies the unit counts into the state machine context
func (m *Match) syncContext() {
	ctx := m.stateMachine.GetContext()
	ctx.PlayerUnits = m.tally.Remaining(core.SidePlayer)
	ctx.EnemyUnits = m.tally.Remaining(core.SideEnemy)
}
