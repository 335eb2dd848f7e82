package core

import "fmt"

// Unit is a single combatant on the board.
// Position is owned by the Board; only Board mutations change it.
type Unit struct {
	ID        string
	Name      string
	Archetype string
	Side      Side

	Health         float64 // maximum health
	CurrentHealth  float64
	Damage         float64
	MoveRange      int
	AttackRange    int
	ShootAfterMove bool

	MoveDirections   []Direction
	AttackDirections []Direction
	PreferForward    bool

	CanMove   bool
	CanShoot  bool
	HasActed  bool // already activated during the current AI turn
	Destroyed bool

	// Projection scratch. Rewritten by every projection call.
	Moves       *Grid
	Actions     *Grid
	ActionsArea *Grid

	// AI scratch
	AIMove        Coordinate
	AITarget      Coordinate
	PreferredMove *Coordinate

	pos    Coordinate
	placed bool
}

// NewUnit creates a unit from an archetype at full health
func NewUnit(id string, arch Archetype, side Side) *Unit {
	return &Unit{
		ID:               id,
		Name:             arch.Name,
		Archetype:        arch.Name,
		Side:             side,
		Health:           arch.Health,
		CurrentHealth:    arch.Health,
		Damage:           arch.Damage,
		MoveRange:        arch.MoveRange,
		AttackRange:      arch.AttackRange,
		ShootAfterMove:   arch.ShootAfterMove,
		MoveDirections:   append([]Direction(nil), arch.MoveDirections...),
		AttackDirections: append([]Direction(nil), arch.AttackDirections...),
		PreferForward:    arch.PreferForward,
	}
}

// Position returns the unit's recorded cell
func (u *Unit) Position() Coordinate { return u.pos }

// OnBoard reports whether the unit currently occupies a cell
func (u *Unit) OnBoard() bool { return u.placed }

func (u *Unit) IsEnemy() bool { return u.Side == SideEnemy }
func (u *Unit) IsAlive() bool { return u.CurrentHealth > 0 }

// ResetTurn grants or revokes the per-turn capabilities.
// Only the player side gets automatic actions; the AI must plan its own.
func (u *Unit) ResetTurn(playerActive bool) {
	u.CanMove = playerActive
	u.CanShoot = playerActive
	u.HasActed = false
}

// TakeDamage deducts health and reports whether the unit is now dead
func (u *Unit) TakeDamage(amount float64) bool {
	u.CurrentHealth -= amount
	return u.CurrentHealth <= 0
}

// HealthRatio is the fraction of max health remaining
func (u *Unit) HealthRatio() float64 {
	if u.Health <= 0 {
		return 0
	}
	return u.CurrentHealth / u.Health
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s[%s %s@%s hp=%.1f/%.1f]", u.ID, u.Side, u.Name, u.pos, u.CurrentHealth, u.Health)
}
