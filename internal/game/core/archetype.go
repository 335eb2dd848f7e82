package core

import "fmt"

// Archetype is the data that distinguishes one kind of unit from another.
// All archetypes share the same projection algorithm; only the direction sets
// and stats differ.
type Archetype struct {
	Name             string
	Health           float64
	Damage           float64
	MoveRange        int
	AttackRange      int
	ShootAfterMove   bool
	MoveDirections   []Direction
	AttackDirections []Direction
	// PreferForward records the first forward step as the AI's preferred move
	PreferForward bool
}

// Validate checks that the archetype can be spawned
func (a Archetype) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("archetype name is required")
	}
	if a.Health <= 0 {
		return fmt.Errorf("archetype %s: health must be positive", a.Name)
	}
	if a.Damage < 0 {
		return fmt.Errorf("archetype %s: damage must be non-negative", a.Name)
	}
	if a.MoveRange < 0 || a.AttackRange < 0 {
		return fmt.Errorf("archetype %s: ranges must be non-negative", a.Name)
	}
	for _, d := range append(append([]Direction{}, a.MoveDirections...), a.AttackDirections...) {
		if _, ok := DirectionVectors[d]; !ok {
			return fmt.Errorf("archetype %s: unknown direction %d", a.Name, int(d))
		}
	}
	return nil
}

// Built-in archetypes
var (
	Grunt = Archetype{
		Name:             "grunt",
		Health:           2,
		Damage:           1,
		MoveRange:        1,
		AttackRange:      1,
		ShootAfterMove:   true,
		MoveDirections:   Orthogonal,
		AttackDirections: Diagonal,
	}
	Golem = Archetype{
		Name:             "golem",
		Health:           4,
		Damage:           2,
		MoveRange:        1,
		AttackRange:      1,
		ShootAfterMove:   false,
		MoveDirections:   Orthogonal,
		AttackDirections: AllEight,
		PreferForward:    true,
	}
	Jumpship = Archetype{
		Name:             "jumpship",
		Health:           3,
		Damage:           1,
		MoveRange:        2,
		AttackRange:      3,
		ShootAfterMove:   true,
		MoveDirections:   Orthogonal,
		AttackDirections: Orthogonal,
		PreferForward:    true,
	}
)

// DefaultArchetypes returns the built-in archetypes keyed by name
func DefaultArchetypes() map[string]Archetype {
	return map[string]Archetype{
		Grunt.Name:    Grunt,
		Golem.Name:    Golem,
		Jumpship.Name: Jumpship,
	}
}
