package testutil

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// CreateTestBoard creates an empty test board of the given size
func CreateTestBoard(size int) *core.Board {
	return core.NewBoard(size)
}

// PlaceUnit spawns a unit of arch for side at (x, y) and counts it in tally.
// The unit gets an ID derived from its side and cell.
func PlaceUnit(t testing.TB, board *core.Board, tally *core.Tally, arch core.Archetype, side core.Side, x, y int) *core.Unit {
	t.Helper()
	u := core.NewUnit(fmt.Sprintf("%s-%s-%d-%d", side, arch.Name, x, y), arch, side)
	if err := board.Place(u, core.Coordinate{X: x, Y: y}); err != nil {
		t.Fatalf("place %s at (%d,%d): %v", u.ID, x, y, err)
	}
	if tally != nil {
		tally.Spawned(side)
	}
	return u
}

// CreateDuelSetup creates an 8x8 board with one player golem at (3,1) and
// one enemy grunt at (3,6)
func CreateDuelSetup(t testing.TB) (*core.Board, *core.Tally, *core.Unit, *core.Unit) {
	t.Helper()
	board := CreateTestBoard(8)
	tally := &core.Tally{}
	player := PlaceUnit(t, board, tally, core.Golem, core.SidePlayer, 3, 1)
	enemy := PlaceUnit(t, board, tally, core.Grunt, core.SideEnemy, 3, 6)
	return board, tally, player, enemy
}
