package rules

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// Projector computes legal move and attack cells by casting rays along a
// unit's direction sets. The same algorithm serves every archetype.
type Projector struct {
	logger zerolog.Logger
}

// NewProjector creates a new action projector
func NewProjector(logger zerolog.Logger) *Projector {
	return &Projector{
		logger: logger.With().Str("component", "ActionProjector").Logger(),
	}
}

// ProjectMoves rewrites u.Moves and u.PreferredMove from the unit's current cell.
//
// Each ray walks up to MoveRange steps. Empty cells are marked; the first
// occupied cell stops the ray unmarked. When the archetype prefers forward,
// the first step along Forward becomes the preferred move.
func (p *Projector) ProjectMoves(board *core.Board, u *core.Unit) *core.Grid {
	u.Moves = core.NewGrid(board.Size())
	u.PreferredMove = nil

	for _, dir := range u.MoveDirections {
		p.castMoveRay(board, u, dir, u.PreferForward && dir == core.Forward)
	}

	p.logger.Debug().
		Str("unit_id", u.ID).
		Str("origin", u.Position().String()).
		Int("moves", u.Moves.Count()).
		Msg("Projected moves")
	return u.Moves
}

func (p *Projector) castMoveRay(board *core.Board, u *core.Unit, dir core.Direction, preferred bool) {
	step := dir.Vector(u.Side)
	cell := u.Position()

	for i := 1; i <= u.MoveRange; i++ {
		cell = cell.Add(step)
		if !board.InBounds(cell) {
			return
		}
		if board.Occupant(cell) != nil {
			return
		}
		u.Moves.Set(cell)
		if preferred && i == 1 {
			pref := cell
			u.PreferredMove = &pref
		}
	}
}

// ProjectAttacks rewrites u.Actions and u.ActionsArea from the unit's current cell.
// active is the side currently holding the turn.
func (p *Projector) ProjectAttacks(board *core.Board, u *core.Unit, active core.Side) (*core.Grid, *core.Grid) {
	return p.ProjectAttacksFrom(board, u, u.Position(), active)
}

// ProjectAttacksFrom projects attacks as if u stood at origin. The board is not
// touched, so u's real cell still counts as occupied.
//
// The area covers empty cells and cells held by the side opposing u. A cell
// becomes a target when its occupant opposes the side holding the turn, which
// is not necessarily u's own side. Any occupant ends the ray.
func (p *Projector) ProjectAttacksFrom(board *core.Board, u *core.Unit, origin core.Coordinate, active core.Side) (*core.Grid, *core.Grid) {
	u.Actions = core.NewGrid(board.Size())
	u.ActionsArea = core.NewGrid(board.Size())

	for _, dir := range u.AttackDirections {
		p.castAttackRay(board, u, origin, dir, active)
	}

	p.logger.Debug().
		Str("unit_id", u.ID).
		Str("origin", origin.String()).
		Str("active_side", active.String()).
		Int("targets", u.Actions.Count()).
		Int("area", u.ActionsArea.Count()).
		Msg("Projected attacks")
	return u.Actions, u.ActionsArea
}

func (p *Projector) castAttackRay(board *core.Board, u *core.Unit, origin core.Coordinate, dir core.Direction, active core.Side) {
	step := dir.Vector(u.Side)
	cell := origin

	for i := 1; i <= u.AttackRange; i++ {
		cell = cell.Add(step)
		if !board.InBounds(cell) {
			return
		}

		occupant := board.Occupant(cell)
		if occupant == nil {
			u.ActionsArea.Set(cell)
			continue
		}

		// Same-side units act as cover and hide the cell from the area
		if occupant.Side != u.Side {
			u.ActionsArea.Set(cell)
		}
		if occupant.Side != active {
			u.Actions.Set(cell)
		}
		return
	}
}

// Project recomputes moves and attacks in one call
func (p *Projector) Project(board *core.Board, u *core.Unit, active core.Side) {
	p.ProjectMoves(board, u)
	p.ProjectAttacks(board, u, active)
}
