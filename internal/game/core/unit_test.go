package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnit(t *testing.T) {
	u := NewUnit("golem-1", Golem, SideEnemy)

	assert.Equal(t, "golem", u.Archetype)
	assert.Equal(t, Golem.Health, u.CurrentHealth)
	assert.True(t, u.IsEnemy())
	assert.True(t, u.IsAlive())
	assert.True(t, u.PreferForward)
	assert.Equal(t, AllEight, u.AttackDirections)
	assert.False(t, u.OnBoard())

	// Direction slices are copied, not shared with the archetype
	u.MoveDirections[0] = Backward
	assert.Equal(t, Forward, Golem.MoveDirections[0])
}

func TestUnit_ResetTurn(t *testing.T) {
	u := NewUnit("grunt-1", Grunt, SidePlayer)
	u.HasActed = true

	u.ResetTurn(true)
	assert.True(t, u.CanMove)
	assert.True(t, u.CanShoot)
	assert.False(t, u.HasActed)

	u.ResetTurn(false)
	assert.False(t, u.CanMove)
	assert.False(t, u.CanShoot)
}

func TestUnit_TakeDamage(t *testing.T) {
	u := NewUnit("grunt-1", Grunt, SidePlayer) // health 2

	assert.False(t, u.TakeDamage(1))
	assert.InDelta(t, 0.5, u.HealthRatio(), 1e-9)
	assert.True(t, u.TakeDamage(1))
	assert.False(t, u.IsAlive())
}

func TestArchetype_Validate(t *testing.T) {
	for name, arch := range DefaultArchetypes() {
		assert.NoError(t, arch.Validate(), name)
	}

	bad := Grunt
	bad.Health = 0
	assert.Error(t, bad.Validate())

	bad = Grunt
	bad.Name = ""
	assert.Error(t, bad.Validate())

	bad = Grunt
	bad.AttackDirections = []Direction{Direction(99)}
	assert.Error(t, bad.Validate())
}

func TestTally(t *testing.T) {
	var tally Tally
	tally.Spawned(SidePlayer)
	tally.Spawned(SideEnemy)
	tally.Spawned(SideEnemy)

	assert.Equal(t, 1, tally.Remaining(SidePlayer))
	assert.Equal(t, 2, tally.Remaining(SideEnemy))
	assert.False(t, tally.HasWinner())

	tally.Lost(SidePlayer)
	assert.True(t, tally.HasWinner())

	tally.Reset()
	assert.Equal(t, 0, tally.Remaining(SideEnemy))
}
