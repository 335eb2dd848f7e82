package level

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Roster maps archetype names to their definitions
type Roster map[string]core.Archetype

// DefaultRoster returns the built-in archetypes
func DefaultRoster() Roster {
	return Roster(core.DefaultArchetypes())
}

// Names returns the archetype names in sorted order
func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the archetype called name
func (r Roster) Lookup(name string) (core.Archetype, error) {
	arch, ok := r[name]
	if !ok {
		return core.Archetype{}, fmt.Errorf("%q: %w", name, core.ErrUnknownArchetype)
	}
	return arch, nil
}

// ArchetypeDef is the YAML form of an archetype
type ArchetypeDef struct {
	Name             string   `yaml:"name"`
	Health           float64  `yaml:"health"`
	Damage           float64  `yaml:"damage"`
	MoveRange        int      `yaml:"move_range"`
	AttackRange      int      `yaml:"attack_range"`
	ShootAfterMove   bool     `yaml:"shoot_after_move"`
	MoveDirections   []string `yaml:"move_directions"`
	AttackDirections []string `yaml:"attack_directions"`
	PreferForward    bool     `yaml:"prefer_forward"`
}

// ToArchetype converts the definition, resolving direction names and set
// aliases ("orthogonal", "diagonal", "all")
func (d ArchetypeDef) ToArchetype() (core.Archetype, error) {
	moves, err := parseDirections(d.MoveDirections)
	if err != nil {
		return core.Archetype{}, fmt.Errorf("archetype %s: move_directions: %w", d.Name, err)
	}
	attacks, err := parseDirections(d.AttackDirections)
	if err != nil {
		return core.Archetype{}, fmt.Errorf("archetype %s: attack_directions: %w", d.Name, err)
	}
	arch := core.Archetype{
		Name:             d.Name,
		Health:           d.Health,
		Damage:           d.Damage,
		MoveRange:        d.MoveRange,
		AttackRange:      d.AttackRange,
		ShootAfterMove:   d.ShootAfterMove,
		MoveDirections:   moves,
		AttackDirections: attacks,
		PreferForward:    d.PreferForward,
	}
	if err := arch.Validate(); err != nil {
		return core.Archetype{}, err
	}
	return arch, nil
}

func parseDirections(names []string) ([]core.Direction, error) {
	var out []core.Direction
	for _, name := range names {
		switch name {
		case "orthogonal":
			out = append(out, core.Orthogonal...)
		case "diagonal":
			out = append(out, core.Diagonal...)
		case "all":
			out = append(out, core.AllEight...)
		default:
			d, err := core.ParseDirection(name)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}
