package ai

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/rs/zerolog"
)

// Decision is the planner's choice for one activation. When Deferred is set
// the attack is meant to be taken from Move after the unit gets there.
type Decision struct {
	Move     *core.Coordinate
	Attack   *core.Coordinate
	Deferred bool
}

// HasAction reports whether the unit has anything to do
func (d Decision) HasAction() bool {
	return d.Move != nil || d.Attack != nil
}

// Planner picks a move and a target for a unit from its projections.
// It never mutates the board.
type Planner struct {
	projector *rules.Projector
	logger    zerolog.Logger
}

// NewPlanner creates a planner that projects through projector
func NewPlanner(projector *rules.Projector, logger zerolog.Logger) *Planner {
	return &Planner{
		projector: projector,
		logger:    logger.With().Str("component", "AIPlanner").Logger(),
	}
}

// Decide recomputes u's projections and chooses its actions.
//
// Targets come from a y-outer, x-inner scan where the last flagged cell wins.
// The fallback move is the lowest-x cell of the highest row with a move; the
// preferred forward move overrides it. With
// no direct target, a unit that may shoot after moving looks one move ahead
// and takes the first move cell, in the same scan order, that exposes a target.
func (p *Planner) Decide(board *core.Board, u *core.Unit, active core.Side) Decision {
	p.projector.ProjectMoves(board, u)
	p.projector.ProjectAttacks(board, u, active)

	var d Decision
	d.Attack = lastMarked(u.Actions)
	if u.PreferredMove != nil {
		pref := *u.PreferredMove
		d.Move = &pref
	} else {
		d.Move = firstOfLastRow(u.Moves)
	}

	if d.Attack == nil && d.Move != nil && u.ShootAfterMove {
		if move, target, ok := p.lookahead(board, u, active); ok {
			d.Move = &move
			d.Attack = &target
			d.Deferred = true
		}
		// Leave the projection describing the real board
		p.projector.ProjectAttacks(board, u, active)
	}

	if d.Move != nil {
		u.AIMove = *d.Move
	}
	if d.Attack != nil {
		u.AITarget = *d.Attack
	}

	p.logger.Debug().
		Str("unit_id", u.ID).
		Str("position", u.Position().String()).
		Bool("has_move", d.Move != nil).
		Bool("has_attack", d.Attack != nil).
		Bool("deferred", d.Deferred).
		Msg("Decided activation")
	return d
}

func (p *Planner) lookahead(board *core.Board, u *core.Unit, active core.Side) (core.Coordinate, core.Coordinate, bool) {
	for _, cell := range u.Moves.Cells() {
		actions, _ := p.projector.ProjectAttacksFrom(board, u, cell, active)
		if target := lastMarked(actions); target != nil {
			return cell, *target, true
		}
	}
	return core.Coordinate{}, core.Coordinate{}, false
}

// DirectTarget re-projects u's attacks from where it stands and returns the
// last target in scan order, if any
func (p *Planner) DirectTarget(board *core.Board, u *core.Unit, active core.Side) *core.Coordinate {
	actions, _ := p.projector.ProjectAttacks(board, u, active)
	target := lastMarked(actions)
	if target != nil {
		u.AITarget = *target
	}
	return target
}

func lastMarked(g *core.Grid) *core.Coordinate {
	cells := g.Cells()
	if len(cells) == 0 {
		return nil
	}
	last := cells[len(cells)-1]
	return &last
}

// firstOfLastRow stops each row at its first flagged cell and lets later rows
// overwrite earlier ones
func firstOfLastRow(g *core.Grid) *core.Coordinate {
	if g == nil {
		return nil
	}
	var pick *core.Coordinate
	size := g.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := core.NewCoordinate(x, y)
			if g.Get(c) {
				pick = &c
				break
			}
		}
	}
	return pick
}
