package core

import "fmt"

// Board maps each cell of a size×size grid to at most one unit.
// Cells are stored row-major (index = y*size + x).
type Board struct {
	size  int
	cells []*Unit
}

func NewBoard(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("board size must be positive, got %d", size))
	}
	return &Board{size: size, cells: make([]*Unit, size*size)}
}

func (b *Board) Size() int              { return b.size }
func (b *Board) Idx(c Coordinate) int   { return c.ToIndex(b.size) }
func (b *Board) XY(idx int) Coordinate { return FromIndex(idx, b.size) }

// InBounds checks if the coordinate is within board boundaries
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid(b.size)
}

// UnitAt returns the occupant of c, or nil for an empty cell
func (b *Board) UnitAt(c Coordinate) (*Unit, error) {
	if !b.InBounds(c) {
		return nil, positionError("lookup", c, ErrInvalidPosition)
	}
	return b.cells[b.Idx(c)], nil
}

// Occupant is UnitAt for callers that already checked bounds; out-of-range reads as empty
func (b *Board) Occupant(c Coordinate) *Unit {
	if !b.InBounds(c) {
		return nil
	}
	return b.cells[b.Idx(c)]
}

// IsEmpty reports whether an in-bounds cell has no occupant
func (b *Board) IsEmpty(c Coordinate) bool {
	return b.InBounds(c) && b.cells[b.Idx(c)] == nil
}

// Place puts a unit that is not yet on the board into an empty cell
func (b *Board) Place(u *Unit, c Coordinate) error {
	if !b.InBounds(c) {
		return positionError("place", c, ErrInvalidPosition)
	}
	if b.cells[b.Idx(c)] != nil {
		return positionError("place", c, ErrCellOccupied)
	}
	if u.placed {
		panic(fmt.Errorf("%w: unit %s placed twice (already at %s)", ErrInvariantViolation, u.ID, u.pos))
	}
	b.cells[b.Idx(c)] = u
	u.pos = c
	u.placed = true
	return nil
}

// Remove clears c and returns the unit that was there (nil if it was empty)
func (b *Board) Remove(c Coordinate) (*Unit, error) {
	if !b.InBounds(c) {
		return nil, positionError("remove", c, ErrInvalidPosition)
	}
	idx := b.Idx(c)
	u := b.cells[idx]
	if u == nil {
		return nil, nil
	}
	b.cells[idx] = nil
	u.placed = false
	return u, nil
}

// Move relocates u from one cell to another in a single step: no caller can
// observe u at both cells or at neither.
func (b *Board) Move(u *Unit, from, to Coordinate) error {
	if !b.InBounds(from) {
		return positionError("move", from, ErrInvalidPosition)
	}
	if !b.InBounds(to) {
		return positionError("move", to, ErrInvalidPosition)
	}
	fromIdx := b.Idx(from)
	if b.cells[fromIdx] != u || u.pos != from {
		panic(fmt.Errorf("%w: unit %s recorded at %s but board holds %v at %s",
			ErrInvariantViolation, u.ID, u.pos, b.cells[fromIdx], from))
	}
	if from == to {
		return nil
	}
	toIdx := b.Idx(to)
	if b.cells[toIdx] != nil {
		return positionError("move", to, ErrCellOccupied)
	}
	b.cells[fromIdx] = nil
	b.cells[toIdx] = u
	u.pos = to
	return nil
}

// Units returns every unit in scan order (y outer, x inner)
func (b *Board) Units() []*Unit {
	units := make([]*Unit, 0, 16)
	for _, u := range b.cells {
		if u != nil {
			units = append(units, u)
		}
	}
	return units
}

// UnitsOf returns the units belonging to side in scan order
func (b *Board) UnitsOf(side Side) []*Unit {
	var units []*Unit
	for _, u := range b.cells {
		if u != nil && u.Side == side {
			units = append(units, u)
		}
	}
	return units
}

// Clear removes every unit and returns them
func (b *Board) Clear() []*Unit {
	removed := b.Units()
	for i := range b.cells {
		b.cells[i] = nil
	}
	for _, u := range removed {
		u.placed = false
	}
	return removed
}

// CheckInvariants verifies that every occupant's recorded position matches its cell
func (b *Board) CheckInvariants() error {
	for idx, u := range b.cells {
		if u == nil {
			continue
		}
		c := b.XY(idx)
		if !u.placed || u.pos != c {
			return fmt.Errorf("%w: unit %s recorded at %s but stored at %s", ErrInvariantViolation, u.ID, u.pos, c)
		}
	}
	return nil
}
