package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Str("level", e.LevelName).
			Int("level_index", e.LevelIndex).
			Int("grid_size", e.GridSize).
			Int("player_units", e.PlayerUnits).
			Int("enemy_units", e.EnemyUnits)

	case *events.MatchEndedEvent:
		logEvent.
			Bool("victory", e.Victory).
			Bool("silent", e.Silent).
			Str("reason", e.Reason).
			Dur("duration", e.Duration).
			Int("final_turn", e.Metadata.Turn)

	case *events.TurnChangedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("active_side", e.ActiveSide.String())

	case *events.UnitSelectedEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Str("side", e.Side.String()).
			Str("position", e.Position.String()).
			Int("moves", e.Moves).
			Int("targets", e.Targets)

	case *events.UnitMovedEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Str("side", e.Side.String()).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)

	case *events.UnitAttackedEvent:
		logEvent.
			Str("attacker_id", e.AttackerID).
			Str("target_id", e.TargetID).
			Str("side", e.Side.String()).
			Str("target", e.Target.String()).
			Float64("damage", e.Damage)

	case *events.UnitDamagedEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Float64("damage", e.Damage).
			Float64("current_health", e.CurrentHealth)

	case *events.UnitDestroyedEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Str("side", e.Side.String()).
			Str("position", e.Position.String()).
			Str("killed_by", e.KilledBy).
			Int("remaining", e.Remaining)

	case *events.ActionRejectedEvent:
		logEvent.
			Str("unit_id", e.Action.UnitID).
			Str("action_type", e.Action.Type.String()).
			Str("reason", e.Reason)

	case *events.AIActivationEvent:
		logEvent.
			Str("unit_id", e.UnitID).
			Int("turn", e.Metadata.Turn).
			Bool("has_move", e.Move != nil).
			Bool("has_attack", e.Attack != nil).
			Bool("deferred", e.Deferred)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Match event")
}
