package states

import "fmt"

// MatchPhase represents the current phase of a match
type MatchPhase int

const (
	// PhaseSetup - Board creation and unit spawning
	PhaseSetup MatchPhase = iota

	// PhasePlayerTurn - Waiting for player input
	PhasePlayerTurn

	// PhaseAITurn - Enemy units are being activated
	PhaseAITurn

	// PhaseEnded - Outcome decided, no further actions
	PhaseEnded

	// PhaseReset - Level teardown before a reload
	PhaseReset
)

// String returns the string representation of a MatchPhase
func (p MatchPhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlayerTurn:
		return "PlayerTurn"
	case PhaseAITurn:
		return "AITurn"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a finished match
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveInput returns true if player commands are accepted in this phase
func (p MatchPhase) CanReceiveInput() bool {
	return p == PhasePlayerTurn
}

// IsTurn returns true for the two turn phases
func (p MatchPhase) IsTurn() bool {
	return p == PhasePlayerTurn || p == PhaseAITurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseSetup:
		return []MatchPhase{PhasePlayerTurn, PhaseEnded}
	case PhasePlayerTurn:
		return []MatchPhase{PhaseAITurn, PhaseEnded}
	case PhaseAITurn:
		return []MatchPhase{PhasePlayerTurn, PhaseEnded}
	case PhaseEnded:
		return []MatchPhase{PhaseReset}
	case PhaseReset:
		return []MatchPhase{PhaseSetup}
	default:
		return []MatchPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a MatchPhase
func ParsePhase(s string) MatchPhase {
	switch s {
	case "Setup":
		return PhaseSetup
	case "PlayerTurn":
		return PhasePlayerTurn
	case "AITurn":
		return PhaseAITurn
	case "Ended":
		return PhaseEnded
	case "Reset":
		return PhaseReset
	default:
		return PhaseSetup // Default to setup for unknown phases
	}
}
