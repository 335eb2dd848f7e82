package core

// Tally tracks the remaining unit count of each side
type Tally struct {
	player int
	enemy  int
}

// Spawned counts a newly placed unit
func (t *Tally) Spawned(side Side) {
	if side == SideEnemy {
		t.enemy++
	} else {
		t.player++
	}
}

// Lost counts a unit removed by death
func (t *Tally) Lost(side Side) {
	if side == SideEnemy {
		t.enemy--
	} else {
		t.player--
	}
}

// Remaining returns the count for side
func (t *Tally) Remaining(side Side) int {
	if side == SideEnemy {
		return t.enemy
	}
	return t.player
}

// HasWinner reports whether either side has been wiped out
func (t *Tally) HasWinner() bool {
	return t.enemy <= 0 || t.player <= 0
}

// Reset zeroes both counts
func (t *Tally) Reset() {
	t.player = 0
	t.enemy = 0
}
