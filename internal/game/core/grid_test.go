package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_SetGet(t *testing.T) {
	g := NewGrid(4)

	assert.Equal(t, 4, g.Size())
	assert.False(t, g.Any())

	g.Set(Coordinate{1, 2})
	g.Set(Coordinate{-1, 0}) // ignored
	g.Set(Coordinate{4, 4})  // ignored

	assert.True(t, g.Get(Coordinate{1, 2}))
	assert.False(t, g.Get(Coordinate{2, 1}))
	assert.False(t, g.Get(Coordinate{-1, 0}))
	assert.Equal(t, 1, g.Count())
	assert.True(t, g.Any())
}

func TestGrid_CellsScanOrder(t *testing.T) {
	g := NewGrid(3)
	g.Set(Coordinate{2, 0})
	g.Set(Coordinate{0, 1})
	g.Set(Coordinate{1, 0})
	g.Set(Coordinate{0, 2})

	// y outer, x inner
	assert.Equal(t, []Coordinate{{1, 0}, {2, 0}, {0, 1}, {0, 2}}, g.Cells())
}

func TestGrid_EqualAndClone(t *testing.T) {
	a := NewGrid(3)
	a.Set(Coordinate{1, 1})
	b := a.Clone()

	assert.True(t, a.Equal(b))
	b.Set(Coordinate{0, 0})
	assert.False(t, a.Equal(b))
	assert.False(t, a.Get(Coordinate{0, 0}), "clone must not share storage")
	assert.False(t, a.Equal(NewGrid(4)))
}

func TestGrid_NilIsEmpty(t *testing.T) {
	var g *Grid

	assert.False(t, g.Get(Coordinate{0, 0}))
	assert.Equal(t, 0, g.Count())
	assert.Nil(t, g.Cells())
	assert.Nil(t, g.Clone())
}
