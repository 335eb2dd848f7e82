package game

import (
	"errors"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// Autopilot plays the player side through the same input path a human
// uses, choosing actions with the AI planner. It is meant for headless runs.
type Autopilot struct {
	logger zerolog.Logger
}

// NewAutopilot creates an autopilot
func NewAutopilot(logger zerolog.Logger) *Autopilot {
	return &Autopilot{logger: logger.With().Str("component", "Autopilot").Logger()}
}

// Play issues orders for every player unit that can still act. It does not
// end the turn. Orders the match rejects are logged and skipped.
func (a *Autopilot) Play(m *Match) error {
	if err := m.acceptCommand(); err != nil {
		return err
	}

	// Snapshot first; orders may destroy units and reshuffle the board
	units := m.Board().UnitsOf(core.SidePlayer)
	orders := 0
	for _, u := range units {
		if u.Destroyed || !m.Running() {
			continue
		}
		if !u.CanMove && !u.CanShoot {
			continue
		}
		n, err := a.activate(m, u)
		orders += n
		if err != nil {
			if errors.Is(err, core.ErrMatchOver) {
				return nil
			}
			a.logger.Debug().Err(err).Str("unit_id", u.ID).Msg("Order rejected")
		}
	}
	m.Deselect()

	a.logger.Debug().
		Int("units", len(units)).
		Int("orders", orders).
		Msg("Autopilot turn played")
	return nil
}

// activate selects u and clicks through its decision. Returns the number of
// orders that were accepted.
func (a *Autopilot) activate(m *Match, u *core.Unit) (int, error) {
	d := m.Planner().Decide(m.Board(), u, m.ActiveSide())
	if !d.HasAction() {
		return 0, nil
	}

	m.Deselect()
	if err := m.SelectCell(u.Position()); err != nil {
		return 0, err
	}

	if d.Attack != nil && !d.Deferred && u.CanShoot {
		if err := m.SelectCell(*d.Attack); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if d.Move == nil || !u.CanMove {
		return 0, nil
	}
	if err := m.SelectCell(*d.Move); err != nil {
		return 0, err
	}
	if !d.Deferred || m.Selected() != u {
		return 1, nil
	}
	if err := m.SelectCell(*d.Attack); err != nil {
		return 1, err
	}
	return 2, nil
}
