package level

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// Spawner places a level's units at random free cells of their side's spawn area
type Spawner struct {
	roster Roster
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewSpawner creates a spawner drawing positions from rng
func NewSpawner(roster Roster, rng *rand.Rand, logger zerolog.Logger) *Spawner {
	return &Spawner{
		roster: roster,
		rng:    rng,
		logger: logger.With().Str("component", "Spawner").Logger(),
	}
}

// Spawn places every unit of lvl on board and counts them in tally. Units are
// placed last-listed first, player side before enemy side.
func (s *Spawner) Spawn(board *core.Board, tally *core.Tally, lvl Level) ([]*core.Unit, error) {
	if board.Size() != lvl.Size() {
		return nil, fmt.Errorf("level %s wants a %d board, got %d", lvl.Name, lvl.Size(), board.Size())
	}

	var spawned []*core.Unit
	for _, side := range []core.Side{core.SidePlayer, core.SideEnemy} {
		names := lvl.Units(side)
		region := lvl.SpawnRegion(side)
		for i := len(names) - 1; i >= 0; i-- {
			arch, err := s.roster.Lookup(names[i])
			if err != nil {
				return spawned, fmt.Errorf("level %s: %w", lvl.Name, err)
			}
			pos, err := s.freeCell(board, region)
			if err != nil {
				return spawned, fmt.Errorf("level %s: %s unit %d: %w", lvl.Name, side, i, err)
			}

			u := core.NewUnit(fmt.Sprintf("%s-%s-%d", side, arch.Name, i), arch, side)
			if err := board.Place(u, pos); err != nil {
				return spawned, err
			}
			tally.Spawned(side)
			spawned = append(spawned, u)

			s.logger.Debug().
				Str("unit_id", u.ID).
				Str("position", pos.String()).
				Msg("Spawned unit")
		}
	}

	s.logger.Info().
		Str("level", lvl.Name).
		Int("player_units", tally.Remaining(core.SidePlayer)).
		Int("enemy_units", tally.Remaining(core.SideEnemy)).
		Msg("Level spawned")
	return spawned, nil
}

// freeCell draws random cells until one is empty. The region is checked
// first so a full area fails instead of looping.
func (s *Spawner) freeCell(board *core.Board, region Region) (core.Coordinate, error) {
	free := 0
	for _, c := range region.Cells() {
		if board.IsEmpty(c) {
			free++
		}
	}
	if free == 0 {
		return core.Coordinate{}, core.ErrSpawnRegionFull
	}

	for {
		c := core.Coordinate{
			X: region.MinX + s.rng.Intn(region.MaxX-region.MinX),
			Y: region.MinY + s.rng.Intn(region.MaxY-region.MinY),
		}
		if board.IsEmpty(c) {
			return c, nil
		}
	}
}
