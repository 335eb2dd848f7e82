package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/GridTactics/internal/game/ai"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridTactics/internal/game/level"
	"github.com/mitchelldurbincs/GridTactics/internal/game/processor"
	"github.com/mitchelldurbincs/GridTactics/internal/game/rules"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/rs/zerolog"
)

// MatchConfig holds everything needed to build a match. Collaborators left
// nil fall back to no-op implementations.
type MatchConfig struct {
	MatchID      string
	Levels       []level.Level
	Roster       level.Roster
	StartLevel   int
	TurnDuration time.Duration // zero disables the turn timer
	Pacing       Pacing
	Rng          *rand.Rand
	Logger       zerolog.Logger
	Bus          *events.EventBus

	Highlights HighlightSink
	Presenter  Presenter
	Audio      AudioSink
	Gate       Gate
	Outcome    OutcomeSink
}

// MatchInitializer handles building a match and its components
type MatchInitializer struct {
	config MatchConfig
	logger zerolog.Logger
}

// NewMatchInitializer creates a new match initializer
func NewMatchInitializer(cfg MatchConfig) *MatchInitializer {
	return &MatchInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Match").Logger(),
	}
}

// NewMatch builds a match and spawns its first level
func NewMatch(ctx context.Context, cfg MatchConfig) (*Match, error) {
	return NewMatchInitializer(cfg).Initialize(ctx)
}

// Initialize creates the match, spawns the starting level and hands the
// first turn to the player
func (mi *MatchInitializer) Initialize(ctx context.Context) (*Match, error) {
	select {
	case <-ctx.Done():
		mi.logger.Error().Err(ctx.Err()).Msg("Match creation cancelled before setup")
		return nil, ctx.Err()
	default:
	}

	if err := mi.setupDefaults(); err != nil {
		return nil, err
	}

	m := mi.createMatch()
	mi.setupEventHandling(m)

	if err := m.Start(); err != nil {
		return nil, fmt.Errorf("match start failed: %w", err)
	}

	mi.logger.Info().
		Str("match_id", m.id).
		Int("levels", len(m.levels)).
		Int("start_level", m.levelIndex).
		Dur("turn_duration", m.turnDuration).
		Msg("Match created successfully")
	return m, nil
}

// setupDefaults fills in missing configuration
func (mi *MatchInitializer) setupDefaults() error {
	if mi.config.Rng == nil {
		mi.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		mi.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if mi.config.MatchID == "" {
		mi.config.MatchID = uuid.NewString()
	}
	if mi.config.Roster == nil {
		mi.config.Roster = level.DefaultRoster()
	}
	if len(mi.config.Levels) == 0 {
		mi.config.Levels = level.DefaultLevels()
	}
	for _, lvl := range mi.config.Levels {
		if err := lvl.Validate(mi.config.Roster); err != nil {
			return fmt.Errorf("invalid level: %w", err)
		}
	}
	if mi.config.StartLevel < 0 || mi.config.StartLevel >= len(mi.config.Levels) {
		return fmt.Errorf("start level %d out of range [0,%d)", mi.config.StartLevel, len(mi.config.Levels))
	}
	if mi.config.TurnDuration < 0 {
		return fmt.Errorf("turn duration must be non-negative, got %s", mi.config.TurnDuration)
	}

	if mi.config.Highlights == nil {
		mi.config.Highlights = nopHighlights{}
	}
	if mi.config.Presenter == nil {
		mi.config.Presenter = nopPresenter{}
	}
	if mi.config.Audio == nil {
		mi.config.Audio = nopAudio{}
	}
	if mi.config.Gate == nil {
		mi.config.Gate = &ManualGate{}
	}
	if mi.config.Outcome == nil {
		mi.config.Outcome = nopOutcome{}
	}
	if mi.config.Bus == nil {
		mi.config.Bus = events.NewEventBusWithLogger(mi.config.Logger)
	}
	return nil
}

// createMatch wires the match components together
func (mi *MatchInitializer) createMatch() *Match {
	cfg := mi.config
	logger := mi.logger.With().Str("match_id", cfg.MatchID).Logger()

	projector := rules.NewProjector(logger)
	matchContext := states.NewMatchContext(cfg.MatchID, cfg.Logger)

	m := &Match{
		id:           cfg.MatchID,
		logger:       logger,
		bus:          cfg.Bus,
		levels:       cfg.Levels,
		levelIndex:   cfg.StartLevel,
		projector:    projector,
		resolver:     processor.NewCombatResolver(cfg.MatchID, cfg.Bus, logger),
		planner:      ai.NewPlanner(projector, logger),
		winCondition: rules.NewWinConditionChecker(logger),
		spawner:      level.NewSpawner(cfg.Roster, cfg.Rng, logger),
		stateMachine: states.NewStateMachine(matchContext, cfg.Bus),
		highlights:   cfg.Highlights,
		presenter:    cfg.Presenter,
		gate:         cfg.Gate,
		outcome:      cfg.Outcome,
		turnDuration: cfg.TurnDuration,
		pacing:       cfg.Pacing,
	}
	m.turns = NewTurnController(m)
	return m
}

// setupEventHandling subscribes the audio layer to the match events
func (mi *MatchInitializer) setupEventHandling(m *Match) {
	audio := subscribers.NewAudioSubscriber("audio_"+m.id, mi.config.Audio, m.logger)
	m.bus.Subscribe(audio)
	m.audioSubscriberID = audio.ID()
}
