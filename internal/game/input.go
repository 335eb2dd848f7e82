package game

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// acceptCommand checks that the player may issue orders right now
func (m *Match) acceptCommand() error {
	turn := m.stateMachine.GetContext().Turn
	switch {
	case !m.running:
		return core.WrapMatchStateError(turn, "input", core.ErrMatchOver)
	case m.gate.IsPaused():
		return core.WrapMatchStateError(turn, "input", core.ErrPaused)
	case m.active != core.SidePlayer || m.turns.Running():
		return core.WrapMatchStateError(turn, "input", core.ErrNotPlayerTurn)
	}
	return nil
}

// SelectCell interprets a click on c. With nothing selected it selects the
// unit there. Clicking the selected unit again deselects it. Otherwise a
// player unit moves to a highlighted move cell or attacks a highlighted
// target; anything else selects whatever was clicked instead.
func (m *Match) SelectCell(c core.Coordinate) error {
	if err := m.acceptCommand(); err != nil {
		return err
	}
	clicked, err := m.board.UnitAt(c)
	if err != nil {
		return err
	}

	if m.selected == nil {
		m.selectUnit(clicked)
		return nil
	}

	u := m.selected
	if clicked == u {
		m.highlights.HideHighlights()
		m.deselect()
		return nil
	}

	reselect := true
	var cmdErr error
	if u.Side == core.SidePlayer {
		// Selection may be stale if the board changed since it was made
		m.projector.Project(m.board, u, m.active)
		switch {
		case u.CanMove && u.Moves.Get(c):
			cmdErr = m.move(u, c)
			reselect = cmdErr == nil && u.ShootAfterMove
		case u.CanShoot && u.Actions.Get(c):
			// A unit that already moved may only fire if it shoots after moving;
			// otherwise the click is swallowed
			if u.CanMove || u.ShootAfterMove {
				cmdErr = m.attack(u, c)
			}
			reselect = false
		}
	}

	m.highlights.HideHighlights()
	m.deselect()
	if reselect {
		m.selectUnit(m.board.Occupant(c))
	}
	return cmdErr
}

// selectUnit makes u the selection and shows what it can do. For the
// player's own units on their turn only the remaining actions are shown;
// any other unit shows its movement range.
func (m *Match) selectUnit(u *core.Unit) {
	if u == nil {
		return
	}
	m.selected = u
	m.showSelection(u)
	m.bus.Publish(events.NewUnitSelectedEvent(m.id, u))
}

func (m *Match) showSelection(u *core.Unit) {
	m.projector.Project(m.board, u, m.active)

	pos := u.Position()
	h := Highlight{Selected: &pos, Hovered: m.hovered}
	if m.active == core.SidePlayer && u.Side == core.SidePlayer {
		if u.CanMove {
			h.Moves = u.Moves
		}
		if u.CanShoot && (u.CanMove || u.ShootAfterMove) {
			h.Actions = u.Actions
		}
	} else {
		h.Moves = u.Moves
	}
	m.highlights.ShowHighlights(h)
}

func (m *Match) deselect() {
	if m.selected == nil {
		return
	}
	u := m.selected
	m.selected = nil
	m.bus.Publish(events.NewUnitDeselectedEvent(m.id, u))
}

// Hover records the tile under the pointer and the unit on it
func (m *Match) Hover(c core.Coordinate) error {
	if !m.running {
		return core.WrapMatchStateError(m.stateMachine.GetContext().Turn, "hover", core.ErrMatchOver)
	}
	u, err := m.board.UnitAt(c)
	if err != nil {
		return err
	}
	m.hovered = &c
	m.hoveredUnit = u
	if m.selected != nil {
		m.showSelection(m.selected)
	}
	return nil
}

// ClearHover forgets the hovered tile
func (m *Match) ClearHover() {
	m.hovered = nil
	m.hoveredUnit = nil
}

// HoveredUnit returns the unit under the pointer, or nil
func (m *Match) HoveredUnit() *core.Unit { return m.hoveredUnit }

// InspectArea shows the weapon area of any unit at c
func (m *Match) InspectArea(c core.Coordinate) error {
	if !m.running {
		return core.WrapMatchStateError(m.stateMachine.GetContext().Turn, "inspect", core.ErrMatchOver)
	}
	if m.gate.IsPaused() {
		return core.WrapMatchStateError(m.stateMachine.GetContext().Turn, "inspect", core.ErrPaused)
	}
	u, err := m.board.UnitAt(c)
	if err != nil {
		return err
	}
	if u == nil {
		return &core.PositionError{Op: "inspect", Pos: c, Err: core.ErrNoUnit}
	}
	m.projector.ProjectAttacks(m.board, u, m.active)
	m.highlights.ShowHighlights(Highlight{ActionsArea: u.ActionsArea, Selected: &c, Hovered: m.hovered})
	return nil
}

// HideArea clears an inspected weapon area
func (m *Match) HideArea() {
	m.highlights.HideHighlights()
}

// Deselect clears the selection and its highlights
func (m *Match) Deselect() {
	m.highlights.HideHighlights()
	m.deselect()
}
