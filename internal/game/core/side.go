package core

// Side tags unit ownership
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// Opposite returns the other side
func (s Side) Opposite() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "player"
}
