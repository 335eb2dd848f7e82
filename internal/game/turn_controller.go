package game

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/ai"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/rs/zerolog"
)

// aiStep is the AI cursor's position within a turn
type aiStep int

const (
	stepIdle aiStep = iota
	stepThink
	stepNextUnit
	stepPreAttack
	stepPostAttack
	stepAttackIdle
	stepMove
	stepPostMove
	stepMoveIdle
	stepFollowupPreAttack
	stepFollowupPostAttack
	stepFollowupIdle
	stepSettle
	stepFinish
)

func (s aiStep) String() string {
	switch s {
	case stepIdle:
		return "idle"
	case stepThink:
		return "think"
	case stepNextUnit:
		return "next_unit"
	case stepPreAttack:
		return "pre_attack"
	case stepPostAttack:
		return "post_attack"
	case stepAttackIdle:
		return "attack_idle"
	case stepMove:
		return "move"
	case stepPostMove:
		return "post_move"
	case stepMoveIdle:
		return "move_idle"
	case stepFollowupPreAttack:
		return "followup_pre_attack"
	case stepFollowupPostAttack:
		return "followup_post_attack"
	case stepFollowupIdle:
		return "followup_idle"
	case stepSettle:
		return "settle"
	case stepFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// TurnController sequences the AI turn and runs the turn timer. The AI turn
// is a cursor over the board cells (x outer, y inner) plus the sub-step of the
// unit being activated; Advance moves it forward until it has to wait.
type TurnController struct {
	match  *Match
	logger zerolog.Logger

	step   aiStep
	pacing Pacing
	wait   time.Duration
	x, y   int

	unit     *core.Unit
	decision ai.Decision
	target   core.Coordinate

	timeLeft time.Duration
	expired  bool
}

// NewTurnController creates the controller for m
func NewTurnController(m *Match) *TurnController {
	return &TurnController{
		match:  m,
		logger: m.logger.With().Str("component", "TurnController").Logger(),
	}
}

// Running reports whether an AI turn is in progress
func (tc *TurnController) Running() bool {
	return tc.step != stepIdle
}

// TimeLeft returns what remains of the current turn's time limit
func (tc *TurnController) TimeLeft() time.Duration {
	return tc.timeLeft
}

func (tc *TurnController) begin() {
	tc.pacing = tc.match.pacing
	tc.x, tc.y = 0, 0
	tc.unit = nil
	tc.decision = ai.Decision{}
	tc.wait = tc.pacing.Think
	tc.step = stepThink
	tc.logger.Debug().Dur("think", tc.pacing.Think).Msg("AI turn started")
}

func (tc *TurnController) stop() {
	if tc.step != stepIdle {
		tc.logger.Debug().Str("step", tc.step.String()).Msg("AI turn halted")
	}
	tc.step = stepIdle
	tc.unit = nil
	tc.expired = false
}

func (tc *TurnController) resetTimer() {
	tc.timeLeft = tc.match.turnDuration
	tc.expired = false
}

// Advance runs the turn timer and the AI cursor for one tick
func (tc *TurnController) Advance(dt time.Duration) {
	tc.advanceAI(dt)
	if tc.match.running {
		tc.advanceTimer(dt)
	}
}

func (tc *TurnController) advanceTimer(dt time.Duration) {
	if tc.match.turnDuration <= 0 {
		return
	}
	if !tc.expired {
		tc.timeLeft -= dt
		if tc.timeLeft > 0 {
			return
		}
		tc.timeLeft = 0
		tc.expired = true
		tc.logger.Info().Str("side", tc.match.active.String()).Msg("Turn time expired")
	}
	// Retried every tick until the turn can actually end
	if err := tc.match.EndTurn(); err != nil {
		tc.logger.Debug().Err(err).Msg("Timed end turn deferred")
	}
}

// elapsed spends the tick's budget on the current wait. Reports whether the
// wait is over.
func (tc *TurnController) elapsed(budget *time.Duration) bool {
	tc.wait -= *budget
	*budget = 0
	return tc.wait <= 0
}

func (tc *TurnController) advanceAI(dt time.Duration) {
	m := tc.match
	budget := dt

	for tc.step != stepIdle {
		if !m.running {
			tc.stop()
			return
		}
		if m.gate.IsPaused() {
			return
		}

		switch tc.step {
		case stepThink:
			if !tc.elapsed(&budget) {
				return
			}
			m.deselect()
			tc.step = stepNextUnit

		case stepNextUnit:
			u := tc.nextUnit()
			if u == nil {
				tc.wait = tc.pacing.Settle
				tc.step = stepSettle
				continue
			}
			tc.activate(u)

		case stepPreAttack:
			if !tc.elapsed(&budget) {
				return
			}
			tc.attack()
			tc.wait = tc.pacing.PostAttack
			tc.step = stepPostAttack

		case stepPostAttack:
			if !tc.elapsed(&budget) {
				return
			}
			tc.step = stepAttackIdle

		case stepAttackIdle:
			if m.presenter.IsBusy(tc.unit) {
				return
			}
			m.resolvePending(false)
			if m.checkRules() {
				return
			}
			if tc.unit.CanMove {
				tc.step = stepMove
			} else {
				tc.step = stepNextUnit
			}

		case stepMove:
			if err := m.move(tc.unit, *tc.decision.Move); err != nil {
				tc.logger.Warn().Err(err).Str("unit_id", tc.unit.ID).Msg("AI move rejected")
				tc.step = stepNextUnit
				continue
			}
			tc.wait = tc.pacing.PostMove
			tc.step = stepPostMove

		case stepPostMove:
			if !tc.elapsed(&budget) {
				return
			}
			tc.step = stepMoveIdle

		case stepMoveIdle:
			if m.presenter.IsBusy(tc.unit) {
				return
			}
			if outcome := m.winCondition.CheckGoalReached(tc.unit); outcome.Over {
				m.end(outcome.Victory, outcome.Reason, false)
				return
			}
			tc.step = stepNextUnit
			if tc.unit.ShootAfterMove {
				if target := m.planner.DirectTarget(m.board, tc.unit, m.active); target != nil {
					tc.unit.CanShoot = true
					tc.target = *target
					tc.wait = tc.pacing.PreAttack
					tc.step = stepFollowupPreAttack
				}
			}

		case stepFollowupPreAttack:
			if !tc.elapsed(&budget) {
				return
			}
			tc.attack()
			tc.wait = tc.pacing.FollowupPostAttack
			tc.step = stepFollowupPostAttack

		case stepFollowupPostAttack:
			if !tc.elapsed(&budget) {
				return
			}
			tc.step = stepFollowupIdle

		case stepFollowupIdle:
			if m.presenter.IsBusy(tc.unit) {
				return
			}
			m.resolvePending(false)
			if m.checkRules() {
				return
			}
			tc.step = stepNextUnit

		case stepSettle:
			if !tc.elapsed(&budget) {
				return
			}
			tc.step = stepFinish

		case stepFinish:
			tc.step = stepIdle
			tc.unit = nil
			if err := m.EndTurn(); err != nil {
				// Typically the turn announcement; try again next tick
				tc.logger.Debug().Err(err).Msg("AI end turn deferred")
				tc.step = stepFinish
				return
			}
			return
		}
	}
}

// nextUnit moves the cursor to the next enemy unit that has not acted yet
func (tc *TurnController) nextUnit() *core.Unit {
	board := tc.match.board
	size := board.Size()
	for ; tc.x < size; tc.x++ {
		for ; tc.y < size; tc.y++ {
			u := board.Occupant(core.NewCoordinate(tc.x, tc.y))
			if u != nil && u.IsEnemy() && !u.HasActed && !u.Destroyed {
				tc.y++
				return u
			}
		}
		tc.y = 0
	}
	return nil
}

// activate plans u's actions and grants it the capabilities the plan needs
func (tc *TurnController) activate(u *core.Unit) {
	m := tc.match
	u.HasActed = true
	tc.unit = u

	d := m.planner.Decide(m.board, u, m.active)
	tc.decision = d
	u.CanMove = d.Move != nil
	u.CanShoot = d.Attack != nil && !d.Deferred

	m.bus.Publish(events.NewAIActivationEvent(m.id, m.stateMachine.GetContext().Turn, u, d.Move, d.Attack, d.Deferred))

	switch {
	case u.CanShoot:
		tc.target = *d.Attack
		tc.wait = tc.pacing.PreAttack
		tc.step = stepPreAttack
	case u.CanMove:
		tc.step = stepMove
	default:
		tc.logger.Debug().Str("unit_id", u.ID).Msg("AI unit has nothing to do")
		tc.step = stepNextUnit
	}
}

func (tc *TurnController) attack() {
	if err := tc.match.attack(tc.unit, tc.target); err != nil {
		tc.logger.Warn().Err(err).Str("unit_id", tc.unit.ID).Msg("AI attack rejected")
	}
}
