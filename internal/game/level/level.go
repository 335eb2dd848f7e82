package level

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// DefaultGridSize is the board size used when a level does not name one
const DefaultGridSize = 8

// Region is a half-open rectangle of cells [MinX,MaxX) × [MinY,MaxY)
type Region struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`
}

// Contains reports whether c lies inside the region
func (r Region) Contains(c core.Coordinate) bool {
	return c.X >= r.MinX && c.X < r.MaxX && c.Y >= r.MinY && c.Y < r.MaxY
}

// Cells returns every cell of the region in scan order
func (r Region) Cells() []core.Coordinate {
	var out []core.Coordinate
	for y := r.MinY; y < r.MaxY; y++ {
		for x := r.MinX; x < r.MaxX; x++ {
			out = append(out, core.Coordinate{X: x, Y: y})
		}
	}
	return out
}

// Area is the number of cells in the region
func (r Region) Area() int {
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return 0
	}
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// PlayerRegion is the default player spawn area: the two rows nearest y=0
func PlayerRegion(size int) Region {
	return Region{MinX: 0, MaxX: size, MinY: 0, MaxY: min(2, size)}
}

// EnemyRegion is the default enemy spawn area: the four far rows, skipping column 0
func EnemyRegion(size int) Region {
	return Region{MinX: min(1, size), MaxX: size, MinY: max(size-4, 0), MaxY: size}
}

// Level describes one battle: board size and the archetypes each side fields
type Level struct {
	Name        string   `yaml:"name"`
	GridSize    int      `yaml:"grid_size"`
	PlayerUnits []string `yaml:"player_units"`
	EnemyUnits  []string `yaml:"enemy_units"`

	// Optional spawn area overrides
	PlayerSpawn *Region `yaml:"player_spawn,omitempty"`
	EnemySpawn  *Region `yaml:"enemy_spawn,omitempty"`
}

// Size returns the grid size, falling back to DefaultGridSize
func (l Level) Size() int {
	if l.GridSize > 0 {
		return l.GridSize
	}
	return DefaultGridSize
}

// SpawnRegion returns the spawn area for side
func (l Level) SpawnRegion(side core.Side) Region {
	if side == core.SideEnemy {
		if l.EnemySpawn != nil {
			return *l.EnemySpawn
		}
		return EnemyRegion(l.Size())
	}
	if l.PlayerSpawn != nil {
		return *l.PlayerSpawn
	}
	return PlayerRegion(l.Size())
}

// Units returns the archetype list for side
func (l Level) Units(side core.Side) []string {
	if side == core.SideEnemy {
		return l.EnemyUnits
	}
	return l.PlayerUnits
}

// Validate checks that every unit exists in roster and fits in its spawn area
func (l Level) Validate(roster Roster) error {
	if l.Name == "" {
		return fmt.Errorf("level name is required")
	}
	size := l.Size()
	for _, side := range []core.Side{core.SidePlayer, core.SideEnemy} {
		region := l.SpawnRegion(side)
		if region.MinX < 0 || region.MinY < 0 || region.MaxX > size || region.MaxY > size {
			return fmt.Errorf("level %s: %s spawn area %+v exceeds %dx%d board: %w",
				l.Name, side, region, size, size, core.ErrInvalidPosition)
		}
		units := l.Units(side)
		if len(units) > region.Area() {
			return fmt.Errorf("level %s: %d %s units in %d cells: %w",
				l.Name, len(units), side, region.Area(), core.ErrSpawnRegionFull)
		}
		for _, name := range units {
			if _, ok := roster[name]; !ok {
				return fmt.Errorf("level %s: %q: %w", l.Name, name, core.ErrUnknownArchetype)
			}
		}
	}
	if l.PlayerSpawn == nil && l.EnemySpawn == nil && size < 4 {
		return fmt.Errorf("level %s: default spawn areas need a board of at least 4, got %d", l.Name, size)
	}
	return nil
}

// DefaultLevels returns the built-in level rotation
func DefaultLevels() []Level {
	return []Level{
		{
			Name:        "Outpost",
			GridSize:    8,
			PlayerUnits: []string{"grunt", "grunt", "golem"},
			EnemyUnits:  []string{"grunt", "grunt", "grunt"},
		},
		{
			Name:        "Ridge",
			GridSize:    8,
			PlayerUnits: []string{"grunt", "jumpship", "golem"},
			EnemyUnits:  []string{"grunt", "golem", "jumpship", "grunt"},
		},
		{
			Name:        "Citadel",
			GridSize:    8,
			PlayerUnits: []string{"grunt", "grunt", "jumpship", "golem"},
			EnemyUnits:  []string{"golem", "golem", "jumpship", "jumpship", "grunt"},
		},
	}
}
