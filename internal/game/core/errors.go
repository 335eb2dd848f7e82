package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrCellOccupied       = errors.New("cell occupied")
	ErrIllegalMove        = errors.New("illegal move")
	ErrIllegalAttack      = errors.New("illegal attack")
	ErrNoUnit             = errors.New("no unit at position")
	ErrMatchOver          = errors.New("match is over")
	ErrTurnInProgress     = errors.New("turn cannot end yet")
	ErrNotPlayerTurn      = errors.New("not the player's turn")
	ErrPaused             = errors.New("match is paused")
	ErrUnknownArchetype   = errors.New("unknown archetype")
	ErrSpawnRegionFull    = errors.New("spawn region full")
	ErrInvariantViolation = errors.New("board invariant violated")
)

// PositionError records the operation and cell that failed
type PositionError struct {
	Op  string
	Pos Coordinate
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Pos, e.Err)
}

func (e *PositionError) Unwrap() error { return e.Err }

func positionError(op string, c Coordinate, err error) error {
	return &PositionError{Op: op, Pos: c, Err: err}
}

// WrapActionError adds unit and action context to an error
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if action.UnitID == "" {
		return fmt.Errorf("unit action: %w", err)
	}
	switch action.Type {
	case ActionMove:
		return fmt.Errorf("unit %s: move from %s to %s: %w", action.UnitID, action.From, action.To, err)
	case ActionAttack:
		return fmt.Errorf("unit %s: attack from %s at %s: %w", action.UnitID, action.From, action.To, err)
	default:
		return fmt.Errorf("unit %s: %s: %w", action.UnitID, action.Type, err)
	}
}

// WrapMatchStateError adds turn context to match state errors
func WrapMatchStateError(turn int, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d: %s: %w", turn, op, err)
}
