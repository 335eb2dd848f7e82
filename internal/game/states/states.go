package states

import (
	"fmt"
)

// SetupState represents board creation and spawning
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() MatchPhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().Str("level", ctx.LevelName).Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *MatchContext) error {
	ctx.Logger.Info().
		Str("level", ctx.LevelName).
		Int("player_units", ctx.PlayerUnits).
		Int("enemy_units", ctx.EnemyUnits).
		Msg("Level spawned")
	return nil
}

func (s *SetupState) Validate(ctx *MatchContext) error {
	return nil
}

// PlayerTurnState represents the player's turn
type PlayerTurnState struct{}

func NewPlayerTurnState() State {
	return &PlayerTurnState{}
}

func (s *PlayerTurnState) Phase() MatchPhase {
	return PhasePlayerTurn
}

func (s *PlayerTurnState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().Int("turn", ctx.Turn).Msg("Player turn")
	return nil
}

func (s *PlayerTurnState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *PlayerTurnState) Validate(ctx *MatchContext) error {
	return validateTurn(ctx)
}

// AITurnState represents the enemy's automated turn
type AITurnState struct{}

func NewAITurnState() State {
	return &AITurnState{}
}

func (s *AITurnState) Phase() MatchPhase {
	return PhaseAITurn
}

func (s *AITurnState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().
		Int("turn", ctx.Turn).
		Int("enemy_units", ctx.EnemyUnits).
		Msg("AI turn")
	return nil
}

func (s *AITurnState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("AI turn finished")
	return nil
}

func (s *AITurnState) Validate(ctx *MatchContext) error {
	return validateTurn(ctx)
}

func validateTurn(ctx *MatchContext) error {
	if ctx.Decided {
		return fmt.Errorf("match already decided: %s", ctx.Reason)
	}
	return nil
}

// EndedState represents a finished match
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() MatchPhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().
		Bool("victory", ctx.Victory).
		Bool("silent", ctx.Silent).
		Str("reason", ctx.Reason).
		Int("turn", ctx.Turn).
		Dur("match_duration", ctx.GetElapsedTime()).
		Msg("Match ended")
	return nil
}

func (s *EndedState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *MatchContext) error {
	if !ctx.Decided {
		return fmt.Errorf("ended state requires a decided outcome")
	}
	return nil
}

// ResetState clears the per-match context before the level is spawned again
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() MatchPhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().Str("level", ctx.LevelName).Msg("Resetting match")

	ctx.Turn = 0
	ctx.PlayerUnits = 0
	ctx.EnemyUnits = 0
	ctx.Elapsed = 0
	ctx.TotalPauseDuration = 0
	ctx.Decided = false
	ctx.Victory = false
	ctx.Reason = ""
	ctx.Silent = false

	// Clear metadata but keep the map allocated
	for k := range ctx.Metadata {
		delete(ctx.Metadata, k)
	}

	return nil
}

func (s *ResetState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Match reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *MatchContext) error {
	return nil
}
