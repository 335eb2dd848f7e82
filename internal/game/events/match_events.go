package events

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted    = "match.started"
	TypeMatchEnded      = "match.ended"
	TypeTurnChanged     = "turn.changed"
	TypeUnitSelected    = "unit.selected"
	TypeUnitDeselected  = "unit.deselected"
	TypeUnitMoved       = "unit.moved"
	TypeUnitAttacked    = "unit.attacked"
	TypeUnitDamaged     = "unit.damaged"
	TypeUnitDestroyed   = "unit.destroyed"
	TypeActionRejected  = "action.rejected"
	TypeAIActivation    = "ai.activation"
	TypeStateTransition = "state.transition"
)

// MatchStartedEvent is published when a level has been spawned and the first turn begins
type MatchStartedEvent struct {
	BaseEvent
	LevelName   string
	LevelIndex  int
	GridSize    int
	PlayerUnits int
	EnemyUnits  int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID, levelName string, levelIndex, gridSize, players, enemies int) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:   newBase(TypeMatchStarted, matchID),
		LevelName:   levelName,
		LevelIndex:  levelIndex,
		GridSize:    gridSize,
		PlayerUnits: players,
		EnemyUnits:  enemies,
	}
}

// MatchEndedEvent is published once per match. Silent is set for reloads,
// which skip the teardown and the outcome cue.
type MatchEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Victory  bool
	Silent   bool
	Reason   string
	Duration time.Duration
}

// NewMatchEndedEvent creates a new MatchEndedEvent
func NewMatchEndedEvent(matchID string, victory, silent bool, reason string, duration time.Duration, turn int) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: newBase(TypeMatchEnded, matchID),
		Metadata:  EventMetadata{Turn: turn},
		Victory:   victory,
		Silent:    silent,
		Reason:    reason,
		Duration:  duration,
	}
}

// TurnChangedEvent is published every time the active side toggles
type TurnChangedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	ActiveSide core.Side
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(matchID string, turn int, active core.Side) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent:  newBase(TypeTurnChanged, matchID),
		Metadata:   EventMetadata{Turn: turn, ActiveSide: active.String()},
		ActiveSide: active,
	}
}

// UnitSelectedEvent is published when the input layer selects or deselects a unit
type UnitSelectedEvent struct {
	BaseEvent
	UnitID   string
	Side     core.Side
	Position core.Coordinate
	Moves    int
	Targets  int
}

// NewUnitSelectedEvent creates a selection event from the unit's fresh projection
func NewUnitSelectedEvent(matchID string, u *core.Unit) *UnitSelectedEvent {
	e := &UnitSelectedEvent{
		BaseEvent: newBase(TypeUnitSelected, matchID),
		UnitID:    u.ID,
		Side:      u.Side,
		Position:  u.Position(),
	}
	if u.Moves != nil {
		e.Moves = u.Moves.Count()
	}
	if u.Actions != nil {
		e.Targets = u.Actions.Count()
	}
	return e
}

// NewUnitDeselectedEvent creates a deselection event
func NewUnitDeselectedEvent(matchID string, u *core.Unit) *UnitSelectedEvent {
	return &UnitSelectedEvent{
		BaseEvent: newBase(TypeUnitDeselected, matchID),
		UnitID:    u.ID,
		Side:      u.Side,
		Position:  u.Position(),
	}
}

// UnitMovedEvent is published after the board relocates a unit
type UnitMovedEvent struct {
	BaseEvent
	UnitID string
	Side   core.Side
	From   core.Coordinate
	To     core.Coordinate
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(matchID string, u *core.Unit, from, to core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, matchID),
		UnitID:    u.ID,
		Side:      u.Side,
		From:      from,
		To:        to,
	}
}

// UnitAttackedEvent is published when an attack is committed, before it resolves
type UnitAttackedEvent struct {
	BaseEvent
	AttackerID string
	TargetID   string
	Side       core.Side
	From       core.Coordinate
	Target     core.Coordinate
	Damage     float64
}

// NewUnitAttackedEvent creates a new UnitAttackedEvent
func NewUnitAttackedEvent(matchID string, attacker, target *core.Unit) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent:  newBase(TypeUnitAttacked, matchID),
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Side:       attacker.Side,
		From:       attacker.Position(),
		Target:     target.Position(),
		Damage:     attacker.Damage,
	}
}

// UnitDamagedEvent is published when a resolved attack leaves its target alive
type UnitDamagedEvent struct {
	BaseEvent
	UnitID        string
	Side          core.Side
	Position      core.Coordinate
	Damage        float64
	CurrentHealth float64
}

// NewUnitDamagedEvent creates a new UnitDamagedEvent
func NewUnitDamagedEvent(matchID string, u *core.Unit, damage float64) *UnitDamagedEvent {
	return &UnitDamagedEvent{
		BaseEvent:     newBase(TypeUnitDamaged, matchID),
		UnitID:        u.ID,
		Side:          u.Side,
		Position:      u.Position(),
		Damage:        damage,
		CurrentHealth: u.CurrentHealth,
	}
}

// UnitDestroyedEvent is published once when a unit leaves the board by death
type UnitDestroyedEvent struct {
	BaseEvent
	UnitID    string
	Side      core.Side
	Position  core.Coordinate
	KilledBy  string
	Remaining int
}

// NewUnitDestroyedEvent creates a new UnitDestroyedEvent
func NewUnitDestroyedEvent(matchID string, u *core.Unit, pos core.Coordinate, killedBy string, remaining int) *UnitDestroyedEvent {
	return &UnitDestroyedEvent{
		BaseEvent: newBase(TypeUnitDestroyed, matchID),
		UnitID:    u.ID,
		Side:      u.Side,
		Position:  pos,
		KilledBy:  killedBy,
		Remaining: remaining,
	}
}

// ActionRejectedEvent is published when a move or attack request is ignored
type ActionRejectedEvent struct {
	BaseEvent
	Action core.Action
	Reason string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(matchID string, action core.Action, err error) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, matchID),
		Action:    action,
		Reason:    err.Error(),
	}
}

// AIActivationEvent records the planner's decision for one enemy unit
type AIActivationEvent struct {
	BaseEvent
	Metadata EventMetadata
	UnitID   string
	Position core.Coordinate
	Move     *core.Coordinate
	Attack   *core.Coordinate
	Deferred bool
}

// NewAIActivationEvent creates a new AIActivationEvent
func NewAIActivationEvent(matchID string, turn int, u *core.Unit, move, attack *core.Coordinate, deferred bool) *AIActivationEvent {
	return &AIActivationEvent{
		BaseEvent: newBase(TypeAIActivation, matchID),
		Metadata:  EventMetadata{Turn: turn, ActiveSide: core.SideEnemy.String()},
		UnitID:    u.ID,
		Position:  u.Position(),
		Move:      move,
		Attack:    attack,
		Deferred:  deferred,
	}
}

// StateTransitionEvent is published when the match state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, matchID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
