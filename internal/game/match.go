package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/ai"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/level"
	"github.com/mitchelldurbincs/GridTactics/internal/game/processor"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/rs/zerolog"
)

// Match owns the board and every component that acts on it. It is driven
// from a single goroutine: Tick, EndTurn and the input methods must not be
// called concurrently.
type Match struct {
	id     string
	logger zerolog.Logger
	bus    *events.EventBus

	board      *core.Board
	tally      core.Tally
	levels     []level.Level
	levelIndex int

	projector    *rules.Projector
	resolver     *processor.CombatResolver
	planner      *ai.Planner
	winCondition *rules.WinConditionChecker
	spawner      *level.Spawner
	stateMachine *states.StateMachine
	turns        *TurnController

	highlights        HighlightSink
	presenter         Presenter
	gate              Gate
	outcome           OutcomeSink
	audioSubscriberID string
	listenerIDs       []string

	active       core.Side
	running      bool
	turnDuration time.Duration
	pacing       Pacing

	selected    *core.Unit
	hovered     *core.Coordinate
	hoveredUnit *core.Unit
	pending     []*processor.PendingAttack
}

// Start spawns the current level and gives the first turn to the player
func (m *Match) Start() error {
	if phase := m.stateMachine.CurrentPhase(); phase != states.PhaseSetup {
		return fmt.Errorf("start: match is in phase %s", phase)
	}

	lvl := m.levels[m.levelIndex]
	m.board = core.NewBoard(lvl.Size())
	m.tally.Reset()
	m.pending = nil
	m.selected = nil
	m.hovered = nil
	m.hoveredUnit = nil

	spawned, err := m.spawner.Spawn(m.board, &m.tally, lvl)
	if err != nil {
		return fmt.Errorf("spawn level %d: %w", m.levelIndex, err)
	}
	if t, ok := m.presenter.(tracker); ok {
		for _, u := range spawned {
			t.Track(u)
		}
	}

	m.stateMachine.GetContext().LevelName = lvl.Name
	m.syncContext()
	m.running = true

	m.logger.Info().
		Str("level", lvl.Name).
		Int("level_index", m.levelIndex).
		Int("grid_size", lvl.Size()).
		Int("player_units", m.tally.Remaining(core.SidePlayer)).
		Int("enemy_units", m.tally.Remaining(core.SideEnemy)).
		Msg("Level started")
	m.bus.Publish(events.NewMatchStartedEvent(m.id, lvl.Name, m.levelIndex, lvl.Size(),
		m.tally.Remaining(core.SidePlayer), m.tally.Remaining(core.SideEnemy)))

	// The enemy nominally holds setup so the first toggle lands on the player
	m.active = core.SideEnemy
	if err := m.changeTurn(); err != nil {
		return err
	}
	m.checkRules()
	return nil
}

// Tick advances simulated time by dt. Nothing moves while the gate reports
// a pause.
func (m *Match) Tick(dt time.Duration) {
	if !m.running {
		return
	}
	paused := m.gate.IsPaused()
	m.stateMachine.GetContext().Advance(dt, paused)
	if paused {
		return
	}

	if a, ok := m.presenter.(advancer); ok {
		a.Advance(dt)
	}
	m.resolvePending(false)
	if m.checkRules() {
		return
	}
	m.turns.Advance(dt)
}

// EndTurn hands the turn to the other side. It is refused while the AI is
// still acting or the turn announcement is showing.
func (m *Match) EndTurn() error {
	turn := m.stateMachine.GetContext().Turn
	if !m.running {
		return core.WrapMatchStateError(turn, "end turn", core.ErrMatchOver)
	}
	if m.turns.Running() || m.gate.ShowingTurn() {
		m.logger.Debug().
			Bool("ai_running", m.turns.Running()).
			Bool("showing_turn", m.gate.ShowingTurn()).
			Msg("End turn refused")
		return core.WrapMatchStateError(turn, "end turn", core.ErrTurnInProgress)
	}
	return m.changeTurn()
}

func (m *Match) changeTurn() error {
	ctx := m.stateMachine.GetContext()

	m.active = m.active.Opposite()
	m.deselect()
	m.highlights.HideHighlights()

	// Every unit follows the newly active side, including the inactive ones
	playerActive := m.active == core.SidePlayer
	for _, u := range m.board.Units() {
		u.ResetTurn(playerActive)
	}

	ctx.Turn++
	m.turns.resetTimer()

	phase := states.PhaseAITurn
	if playerActive {
		phase = states.PhasePlayerTurn
	}
	if err := m.stateMachine.TransitionTo(phase, "end turn"); err != nil {
		return core.WrapMatchStateError(ctx.Turn, "end turn", err)
	}
	m.bus.Publish(events.NewTurnChangedEvent(m.id, ctx.Turn, m.active))

	if !playerActive {
		m.turns.begin()
	}
	return nil
}

// Reload ends the match silently and respawns the current level
func (m *Match) Reload() error {
	m.end(false, "reload", true)
	if m.stateMachine.CurrentPhase() == states.PhaseEnded {
		if err := m.stateMachine.Restart("reload"); err != nil {
			return fmt.Errorf("reload: %w", err)
		}
	}
	if f, ok := m.presenter.(forgetter); ok {
		f.Forget()
	}
	return m.Start()
}

// NextLevel advances to the following level, wrapping after the last, and reloads
func (m *Match) NextLevel() error {
	m.levelIndex = (m.levelIndex + 1) % len(m.levels)
	m.logger.Info().Int("level_index", m.levelIndex).Msg("Advancing to next level")
	return m.Reload()
}

// SetPacing replaces the AI pacing. It applies from the next AI turn.
func (m *Match) SetPacing(p Pacing) {
	m.pacing = p
}

// SetTurnDuration replaces the turn time limit. It applies from the next turn.
func (m *Match) SetTurnDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.turnDuration = d
}

// OnEvent registers handler for one event type on the match's bus. Handlers
// registered here are removed by Close.
func (m *Match) OnEvent(eventType string, handler events.EventHandler) string {
	id := m.bus.SubscribeFunc(eventType, handler)
	m.listenerIDs = append(m.listenerIDs, id)
	return id
}

// Close detaches the match and its listeners from the event bus
func (m *Match) Close() {
	m.bus.Unsubscribe(m.audioSubscriberID)
	for _, id := range m.listenerIDs {
		m.bus.Unsubscribe(id)
	}
	m.listenerIDs = nil
}

// checkRules ends the match when a side has been wiped out. Reports whether
// the match is over.
func (m *Match) checkRules() bool {
	if !m.running {
		return true
	}
	m.syncContext()
	outcome := m.winCondition.CheckElimination(&m.tally)
	if outcome.Over {
		m.end(outcome.Victory, outcome.Reason, false)
		return true
	}
	return false
}

// end stops play. Unless silent, the losing side's remaining units are
// destroyed. Only the first call has any effect.
func (m *Match) end(victory bool, reason string, silent bool) {
	ctx := m.stateMachine.GetContext()
	if !m.running || !ctx.Decide(victory, reason, silent) {
		return
	}
	m.running = false
	m.turns.stop()
	m.deselect()
	m.highlights.HideHighlights()

	if !silent {
		m.resolvePending(true)
		loser := core.SidePlayer
		if victory {
			loser = core.SideEnemy
		}
		for _, u := range m.board.UnitsOf(loser) {
			m.resolver.Destroy(m.board, &m.tally, u, "match end")
		}
	}
	m.pending = nil
	m.syncContext()

	if err := m.stateMachine.TransitionTo(states.PhaseEnded, reason); err != nil {
		m.logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}
	m.bus.Publish(events.NewMatchEndedEvent(m.id, victory, silent, reason, ctx.GetElapsedTime(), ctx.Turn))
	m.outcome.MatchEnded(victory)
}

// resolvePending settles attacks whose attacker has finished animating.
// force settles all of them.
func (m *Match) resolvePending(force bool) {
	if len(m.pending) == 0 {
		return
	}
	kept := m.pending[:0]
	for _, p := range m.pending {
		if !force && m.presenter.IsBusy(p.Attacker) {
			kept = append(kept, p)
			continue
		}
		if m.resolver.Resolve(m.board, &m.tally, p) {
			m.forgetUnit(p.Target)
		}
	}
	m.pending = kept
}

// attack commits u against target and queues the outcome
func (m *Match) attack(u *core.Unit, target core.Coordinate) error {
	pending, err := m.resolver.ApplyAttack(m.board, u, target)
	if err != nil {
		return err
	}
	m.presenter.Attack(u, pending.Target)
	m.pending = append(m.pending, pending)
	return nil
}

// move relocates u and starts its animation
func (m *Match) move(u *core.Unit, dest core.Coordinate) error {
	to, err := m.resolver.ApplyMove(m.board, u, dest)
	if err != nil {
		return err
	}
	m.presenter.MoveTo(u, to)
	return nil
}

// forgetUnit drops references to a unit that left the board
func (m *Match) forgetUnit(u *core.Unit) {
	if m.selected == u {
		m.deselect()
		m.highlights.HideHighlights()
	}
	if m.hoveredUnit == u {
		m.hoveredUnit = nil
	}
}

// ID returns the match identifier
func (m *Match) ID() string { return m.id }

// Board returns the live board
func (m *Match) Board() *core.Board { return m.board }

// Bus returns the event bus the match publishes on
func (m *Match) Bus() *events.EventBus { return m.bus }

// ActiveSide returns the side holding the turn
func (m *Match) ActiveSide() core.Side { return m.active }

// IsPlayerTurn reports whether the player holds the turn
func (m *Match) IsPlayerTurn() bool { return m.active == core.SidePlayer }

// Running reports whether the match is still being played
func (m *Match) Running() bool { return m.running }

// Phase returns the current state machine phase
func (m *Match) Phase() states.MatchPhase { return m.stateMachine.CurrentPhase() }

// Remaining returns the remaining unit count for side
func (m *Match) Remaining(side core.Side) int { return m.tally.Remaining(side) }

// Level returns the level being played and its index
func (m *Match) Level() (level.Level, int) { return m.levels[m.levelIndex], m.levelIndex }

// Selected returns the selected unit, or nil
func (m *Match) Selected() *core.Unit { return m.selected }

// History returns the phase transitions since the last reload
func (m *Match) History() []states.Transition { return m.stateMachine.GetHistory() }

// Planner exposes the AI planner, e.g. for autopilot clients
func (m *Match) Planner() *ai.Planner { return m.planner }
