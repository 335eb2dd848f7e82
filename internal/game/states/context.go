package states

import (
	"time"

	"github.com/rs/zerolog"
)

// MatchContext provides match information to states for making decisions
type MatchContext struct {
	// MatchID uniquely identifies this match instance
	MatchID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// LevelName of the level being played
	LevelName string

	// Turn counts side changes since setup
	Turn int

	// PlayerUnits and EnemyUnits are the remaining counts at the last update
	PlayerUnits int
	EnemyUnits  int

	// Elapsed is simulated match time, excluding pauses
	Elapsed time.Duration

	// TotalPauseDuration tracks simulated time spent paused
	TotalPauseDuration time.Duration

	// Decided is set once the outcome is known
	Decided bool
	Victory bool
	Reason  string

	// Silent marks an outcome forced by a reload
	Silent bool

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewMatchContext creates a new match context
func NewMatchContext(matchID string, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		MatchID:  matchID,
		Logger:   logger.With().Str("match_id", matchID).Logger(),
		Metadata: make(map[string]interface{}),
	}
}

// Decide records the outcome. Later calls are ignored.
func (mc *MatchContext) Decide(victory bool, reason string, silent bool) bool {
	if mc.Decided {
		return false
	}
	mc.Decided = true
	mc.Victory = victory
	mc.Reason = reason
	mc.Silent = silent
	return true
}

// Advance adds dt to the elapsed or paused total
func (mc *MatchContext) Advance(dt time.Duration, paused bool) {
	if paused {
		mc.TotalPauseDuration += dt
		return
	}
	mc.Elapsed += dt
}

// GetElapsedTime returns the simulated time since setup, excluding pauses
func (mc *MatchContext) GetElapsedTime() time.Duration {
	return mc.Elapsed
}

// SetMetadata stores custom data for states
func (mc *MatchContext) SetMetadata(key string, value interface{}) {
	mc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (mc *MatchContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := mc.Metadata[key]
	return val, exists
}
