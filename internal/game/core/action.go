package core

// ActionType represents the type of action
type ActionType int

const (
	ActionMove ActionType = iota
	ActionAttack
)

func (t ActionType) String() string {
	switch t {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Action describes a single unit command. For attacks To is the target cell.
type Action struct {
	Type   ActionType
	UnitID string
	Side   Side
	From   Coordinate
	To     Coordinate
}

// NewMoveAction describes moving u to dest
func NewMoveAction(u *Unit, dest Coordinate) Action {
	return Action{Type: ActionMove, UnitID: u.ID, Side: u.Side, From: u.Position(), To: dest}
}

// NewAttackAction describes u attacking the unit at target
func NewAttackAction(u *Unit, target Coordinate) Action {
	return Action{Type: ActionAttack, UnitID: u.ID, Side: u.Side, From: u.Position(), To: target}
}
