package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridTactics/internal/game/level"
	"github.com/mitchelldurbincs/GridTactics/internal/game/presentation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type outcomeRecorder struct {
	results []bool
}

func (o *outcomeRecorder) MatchEnded(victory bool) { o.results = append(o.results, victory) }

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment config to merge, e.g. fast for config.fast.yaml")
	seed := flag.Int64("seed", -1, "RNG seed (-1 to use config, 0 for time based)")
	startLevel := flag.Int("level", -1, "Starting level index (-1 to use config default)")
	rounds := flag.Int("rounds", 1, "Number of levels to play in sequence")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	render := flag.Bool("render", false, "Print the board after every turn")
	color := flag.Bool("color", true, "Use ANSI colors when rendering")
	watch := flag.Bool("watch", false, "Hot-reload pacing from the config file")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *seed == -1 {
		*seed = cfg.Match.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *startLevel == -1 {
		*startLevel = cfg.Match.StartLevel
	}
	if !*render {
		*render = cfg.Sim.RenderEveryTurn
	}
	setupLogging(*logLevel, cfg.Server.LogFormat)

	roster, err := level.LoadRoster(cfg.Match.RosterFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load roster")
	}
	levels, err := level.LoadLevels(cfg.Match.LevelFile, roster)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load levels")
	}
	for i := range levels {
		if levels[i].GridSize == 0 {
			levels[i].GridSize = cfg.Match.GridSize
		}
	}

	bus := events.NewEventBusWithLogger(log.Logger)
	eventLog := subscribers.NewLoggerSubscriber("event_log", log.Logger, zerolog.DebugLevel)
	eventLog.SetDevMode(os.Getenv("APP_ENV") != "production")
	bus.Subscribe(eventLog)
	stats := subscribers.NewStatsSubscriber("stats")
	bus.Subscribe(stats)

	outcome := &outcomeRecorder{}
	m, err := game.NewMatch(context.Background(), game.MatchConfig{
		Levels:       levels,
		Roster:       roster,
		StartLevel:   *startLevel,
		TurnDuration: game.TurnDuration(),
		Pacing:       game.ConfiguredPacing(),
		Rng:          rand.New(rand.NewSource(*seed)),
		Logger:       log.Logger,
		Bus:          bus,
		Presenter:    presentation.NewHeadless(game.ConfiguredTiming(), log.Logger),
		Outcome:      outcome,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create match")
	}
	defer m.Close()

	m.OnEvent(events.TypeUnitDestroyed, func(e events.Event) {
		d := e.(*events.UnitDestroyedEvent)
		log.Info().
			Str("unit_id", d.UnitID).
			Str("side", d.Side.String()).
			Str("position", d.Position.String()).
			Int("remaining", d.Remaining).
			Msg("Unit destroyed")
	})

	log.Info().
		Str("match_id", m.ID()).
		Int64("seed", *seed).
		Int("levels", len(levels)).
		Int("rounds", *rounds).
		Dur("tick", cfg.Sim.TickRate).
		Msg("Simulation starting")

	// Config reloads arrive on the watcher goroutine; the match is only touched here
	reloads := make(chan *config.Config, 1)
	if *watch {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config reload rejected")
				return
			}
			snapshot := *c
			select {
			case reloads <- &snapshot:
			default:
			}
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	autopilot := game.NewAutopilot(log.Logger)
	for round := 0; round < *rounds; round++ {
		if round > 0 {
			if err := m.NextLevel(); err != nil {
				log.Fatal().Err(err).Msg("Failed to load next level")
			}
		}
		if !run(ctx, m, autopilot, reloads, cfg.Sim.TickRate, cfg.Sim.MaxTicks, *render, *color) {
			break
		}
		report(m, stats.Snapshot())
	}
	if ctx.Err() != nil {
		log.Info().Msg("Simulation interrupted")
	}

	wins := 0
	for _, v := range outcome.results {
		if v {
			wins++
		}
	}
	fmt.Printf("\nRounds: %d  Victories: %d  Defeats: %d\n", len(outcome.results), wins, len(outcome.results)-wins)
}

// run ticks the match until it ends. Reports false when the run should stop.
func run(ctx context.Context, m *game.Match, ap *game.Autopilot, reloads <-chan *config.Config,
	tick time.Duration, maxTicks int, render, color bool) bool {
	lastTurn := -1
	played := -1

	for i := 0; i < maxTicks; i++ {
		select {
		case <-ctx.Done():
			return false
		case c := <-reloads:
			m.SetPacing(game.Pacing{
				Think:              c.Pacing.AIThink,
				PreAttack:          c.Pacing.PreAttack,
				PostAttack:         c.Pacing.PostAttack,
				PostMove:           c.Pacing.PostMove,
				FollowupPostAttack: c.Pacing.FollowupPostAttack,
				Settle:             c.Pacing.AISettle,
			})
			m.SetTurnDuration(c.Match.TurnDuration)
			log.Info().Msg("Pacing reloaded")
		default:
		}

		state := m.State()
		if render && state.Turn != lastTurn {
			lastTurn = state.Turn
			fmt.Printf("\nTurn %d (%s)\n%s", state.Turn, state.Active, m.Render(color))
		}

		if !m.Running() {
			return true
		}

		if m.IsPlayerTurn() && played != state.Turn {
			played = state.Turn
			if err := ap.Play(m); err != nil {
				log.Warn().Err(err).Msg("Autopilot could not play")
			}
			if err := m.EndTurn(); err != nil {
				log.Debug().Err(err).Msg("End turn refused")
			}
		}

		m.Tick(tick)
	}

	log.Warn().Int("max_ticks", maxTicks).Msg("Tick limit reached before the match ended")
	return false
}

func report(m *game.Match, stats subscribers.MatchStats) {
	state := m.State()
	result := "DEFEAT"
	if state.Victory {
		result = "VICTORY"
	}
	fmt.Printf("\n%s on %s after %d turns (%s): %s\n", result, state.Level, state.Turn, state.Elapsed.Round(time.Millisecond), state.Reason)
	fmt.Printf("%s", m.Render(false))
	for _, side := range []core.Side{core.SidePlayer, core.SideEnemy} {
		s := stats.Player
		if side == core.SideEnemy {
			s = stats.Enemy
		}
		fmt.Printf("  %-6s moves %3d  attacks %3d  damage %5.1f  lost %2d  rejected %d\n",
			side, s.Moves, s.Attacks, s.DamageDealt, s.UnitsLost, s.RejectedOrders)
	}
	fmt.Printf("  AI activations %d\n", stats.Enemy.AIActivations)
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
