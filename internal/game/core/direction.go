package core

import "fmt"

// Direction is a unit step authored from the player's point of view.
// Enemy units walk every direction negated.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	ForwardLeft
	ForwardRight
	BackwardRight
	BackwardLeft
)

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = map[Direction]Coordinate{
	Forward:       {X: 0, Y: 1},
	Backward:      {X: 0, Y: -1},
	Left:          {X: -1, Y: 0},
	Right:         {X: 1, Y: 0},
	ForwardLeft:   {X: -1, Y: 1},
	ForwardRight:  {X: 1, Y: 1},
	BackwardRight: {X: 1, Y: -1},
	BackwardLeft:  {X: -1, Y: -1},
}

var directionNames = map[Direction]string{
	Forward:       "forward",
	Backward:      "backward",
	Left:          "left",
	Right:         "right",
	ForwardLeft:   "forward_left",
	ForwardRight:  "forward_right",
	BackwardRight: "backward_right",
	BackwardLeft:  "backward_left",
}

// Commonly used direction sets
var (
	Orthogonal = []Direction{Forward, Backward, Left, Right}
	Diagonal   = []Direction{ForwardLeft, ForwardRight, BackwardRight, BackwardLeft}
	AllEight   = []Direction{Forward, Backward, Left, Right, ForwardLeft, ForwardRight, BackwardRight, BackwardLeft}
)

// Vector returns the step for the given side
func (d Direction) Vector(side Side) Coordinate {
	v := DirectionVectors[d]
	if side == SideEnemy {
		return v.Neg()
	}
	return v
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts a direction name to a Direction
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
