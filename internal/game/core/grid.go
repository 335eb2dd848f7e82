package core

// Grid is a size×size boolean mask stored row-major (index = y*size + x).
// Projection results are Grids.
type Grid struct {
	size  int
	cells []bool
}

// NewGrid returns an all-false grid
func NewGrid(size int) *Grid {
	return &Grid{size: size, cells: make([]bool, size*size)}
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	if g == nil {
		return 0
	}
	return g.size
}

// Get reports whether c is set. Out-of-range and nil grids read as false.
func (g *Grid) Get(c Coordinate) bool {
	if g == nil || !c.IsValid(g.size) {
		return false
	}
	return g.cells[c.ToIndex(g.size)]
}

// Set marks c. Out-of-range coordinates are ignored.
func (g *Grid) Set(c Coordinate) {
	if !c.IsValid(g.size) {
		return
	}
	g.cells[c.ToIndex(g.size)] = true
}

// Count returns the number of marked cells
func (g *Grid) Count() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Any reports whether at least one cell is marked
func (g *Grid) Any() bool {
	if g == nil {
		return false
	}
	for _, v := range g.cells {
		if v {
			return true
		}
	}
	return false
}

// Cells returns marked cells in scan order: y outer, x inner
func (g *Grid) Cells() []Coordinate {
	if g == nil {
		return nil
	}
	out := make([]Coordinate, 0, 8)
	for idx, v := range g.cells {
		if v {
			out = append(out, FromIndex(idx, g.size))
		}
	}
	return out
}

// Equal compares two grids cell by cell
func (g *Grid) Equal(other *Grid) bool {
	if g.Size() != other.Size() {
		return false
	}
	if g == nil || other == nil {
		return g == other
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	c := &Grid{size: g.size, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}
