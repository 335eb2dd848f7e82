package rules

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome describes a finished match from the player's point of view
type Outcome struct {
	Over    bool
	Victory bool
	Reason  string
}

// WinConditionChecker handles match over detection
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckElimination ends the match once either side has no units left.
// The enemy side is checked first, so a simultaneous wipe counts as a victory.
func (wc *WinConditionChecker) CheckElimination(tally *core.Tally) Outcome {
	players := tally.Remaining(core.SidePlayer)
	enemies := tally.Remaining(core.SideEnemy)

	wc.logger.Debug().
		Int("player_units", players).
		Int("enemy_units", enemies).
		Msg("Checking elimination")

	switch {
	case enemies <= 0:
		wc.logger.Info().Int("player_units", players).Msg("Enemy side eliminated")
		return Outcome{Over: true, Victory: true, Reason: "enemy eliminated"}
	case players <= 0:
		wc.logger.Info().Int("enemy_units", enemies).Msg("Player side eliminated")
		return Outcome{Over: true, Victory: false, Reason: "player eliminated"}
	default:
		return Outcome{}
	}
}

// CheckGoalReached ends the match when an enemy unit stands on the player's back row
func (wc *WinConditionChecker) CheckGoalReached(u *core.Unit) Outcome {
	if u == nil || !u.IsEnemy() || u.Position().Y != 0 {
		return Outcome{}
	}
	wc.logger.Info().
		Str("unit_id", u.ID).
		Str("position", u.Position().String()).
		Msg("Enemy unit reached the player's back row")
	return Outcome{Over: true, Victory: false, Reason: "enemy reached back row"}
}
