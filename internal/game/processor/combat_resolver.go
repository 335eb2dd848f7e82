package processor

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/rs/zerolog"
)

// PendingAttack is an attack whose damage has landed but whose outcome waits
// for the attacker's animation to finish
type PendingAttack struct {
	Attacker   *core.Unit
	Target     *core.Unit
	TargetCell core.Coordinate
	Damage     float64
}

// CombatResolver applies moves and attacks to the board and unit health
type CombatResolver struct {
	matchID   string
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCombatResolver creates a new combat resolver
func NewCombatResolver(matchID string, publisher events.Publisher, logger zerolog.Logger) *CombatResolver {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CombatResolver{
		matchID:   matchID,
		publisher: publisher,
		logger:    logger.With().Str("component", "CombatResolver").Logger(),
	}
}

// ApplyMove relocates u to dest. dest must be in u's current move projection
// and u must still be allowed to move. Returns the destination for the
// presentation layer.
func (cr *CombatResolver) ApplyMove(board *core.Board, u *core.Unit, dest core.Coordinate) (core.Coordinate, error) {
	action := core.NewMoveAction(u, dest)

	if !u.CanMove || u.Moves == nil || !u.Moves.Get(dest) {
		return cr.reject(action, core.ErrIllegalMove)
	}

	from := u.Position()
	if err := board.Move(u, from, dest); err != nil {
		return cr.reject(action, err)
	}
	u.CanMove = false

	cr.logger.Debug().
		Str("unit_id", u.ID).
		Str("from", from.String()).
		Str("to", dest.String()).
		Msg("Unit moved")
	cr.publisher.Publish(events.NewUnitMovedEvent(cr.matchID, u, from, dest))
	return dest, nil
}

func (cr *CombatResolver) reject(action core.Action, err error) (core.Coordinate, error) {
	wrapped := core.WrapActionError(action, err)
	cr.logger.Debug().Err(wrapped).Msg("Rejected action")
	cr.publisher.Publish(events.NewActionRejectedEvent(cr.matchID, action, wrapped))
	return action.From, wrapped
}

// ApplyAttack commits attacker against the unit at target. Damage is deducted
// immediately; death is settled later by Resolve. Attacking ends the unit's
// activation, so both capability flags are cleared.
func (cr *CombatResolver) ApplyAttack(board *core.Board, attacker *core.Unit, target core.Coordinate) (*PendingAttack, error) {
	action := core.NewAttackAction(attacker, target)

	if !attacker.CanShoot || attacker.Actions == nil || !attacker.Actions.Get(target) {
		_, err := cr.reject(action, core.ErrIllegalAttack)
		return nil, err
	}
	victim, err := board.UnitAt(target)
	if err != nil {
		_, err = cr.reject(action, err)
		return nil, err
	}
	if victim == nil {
		_, err = cr.reject(action, core.ErrNoUnit)
		return nil, err
	}

	attacker.CanMove = false
	attacker.CanShoot = false
	cr.publisher.Publish(events.NewUnitAttackedEvent(cr.matchID, attacker, victim))
	victim.TakeDamage(attacker.Damage)

	cr.logger.Debug().
		Str("attacker_id", attacker.ID).
		Str("target_id", victim.ID).
		Float64("damage", attacker.Damage).
		Float64("target_health", victim.CurrentHealth).
		Msg("Attack committed")

	return &PendingAttack{
		Attacker:   attacker,
		Target:     victim,
		TargetCell: target,
		Damage:     attacker.Damage,
	}, nil
}

// Resolve settles a pending attack once its attacker is idle. A dead target is
// removed from the board and counted as lost exactly once. Reports whether the
// target was destroyed by this call.
func (cr *CombatResolver) Resolve(board *core.Board, tally *core.Tally, pending *PendingAttack) bool {
	target := pending.Target
	if target.Destroyed {
		return false
	}
	if target.IsAlive() {
		cr.publisher.Publish(events.NewUnitDamagedEvent(cr.matchID, target, pending.Damage))
		return false
	}
	cr.destroy(board, tally, target, pending.Attacker.ID)
	return true
}

// Destroy kills u outright, as the match teardown does to the losing side
func (cr *CombatResolver) Destroy(board *core.Board, tally *core.Tally, u *core.Unit, cause string) {
	if u.Destroyed {
		return
	}
	u.TakeDamage(u.CurrentHealth)
	cr.destroy(board, tally, u, cause)
}

func (cr *CombatResolver) destroy(board *core.Board, tally *core.Tally, u *core.Unit, killedBy string) {
	pos := u.Position()
	if u.OnBoard() {
		removed, err := board.Remove(pos)
		if err != nil || removed != u {
			panic(fmt.Errorf("%w: destroying %s at %s found %v", core.ErrInvariantViolation, u.ID, pos, removed))
		}
	}
	u.Destroyed = true
	tally.Lost(u.Side)

	cr.logger.Info().
		Str("unit_id", u.ID).
		Str("side", u.Side.String()).
		Str("position", pos.String()).
		Str("killed_by", killedBy).
		Int("remaining", tally.Remaining(u.Side)).
		Msg("Unit destroyed")
	cr.publisher.Publish(events.NewUnitDestroyedEvent(cr.matchID, u, pos, killedBy, tally.Remaining(u.Side)))
}
