package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeMatchStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTurnChanged))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	golem := core.NewUnit("golem-1", core.Golem, core.SideEnemy)
	grunt := core.NewUnit("grunt-1", core.Grunt, core.SidePlayer)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "MatchStartedEvent",
			event: events.NewMatchStartedEvent("test-match-1", "Outpost", 1, 8, 3, 4),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Outpost", logLine["level"])
				assert.Equal(t, float64(8), logLine["grid_size"])
				assert.Equal(t, float64(3), logLine["player_units"])
				assert.Equal(t, float64(4), logLine["enemy_units"])
			},
		},
		{
			name:  "TurnChangedEvent",
			event: events.NewTurnChangedEvent("test-match-1", 5, core.SideEnemy),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, "enemy", logLine["active_side"])
			},
		},
		{
			name:  "UnitMovedEvent",
			event: events.NewUnitMovedEvent("test-match-1", grunt, core.Coordinate{X: 1, Y: 0}, core.Coordinate{X: 1, Y: 1}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "grunt-1", logLine["unit_id"])
				assert.Equal(t, float64(1), logLine["to_y"])
			},
		},
		{
			name:  "UnitAttackedEvent",
			event: events.NewUnitAttackedEvent("test-match-1", golem, grunt),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "golem-1", logLine["attacker_id"])
				assert.Equal(t, "grunt-1", logLine["target_id"])
				assert.Equal(t, core.Golem.Damage, logLine["damage"])
			},
		},
		{
			name:  "UnitDestroyedEvent",
			event: events.NewUnitDestroyedEvent("test-match-1", grunt, core.Coordinate{X: 2, Y: 2}, "golem-1", 0),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "player", logLine["side"])
				assert.Equal(t, "(2,2)", logLine["position"])
				assert.Equal(t, float64(0), logLine["remaining"])
			},
		},
		{
			name:  "MatchEndedEvent",
			event: events.NewMatchEndedEvent("test-match-1", false, false, "player eliminated", 5*time.Minute, 12),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, false, logLine["victory"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
				assert.Equal(t, float64(12), logLine["final_turn"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(logOutput), &logLine))

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Match event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-match-1", logLine["match_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.Nop(), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeMatchStarted, events.TypeMatchEnded})

	assert.True(t, logSub.InterestedIn(events.TypeMatchStarted))
	assert.True(t, logSub.InterestedIn(events.TypeMatchEnded))
	assert.False(t, logSub.InterestedIn(events.TypeTurnChanged))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeUnitMoved))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewMatchStartedEvent("match1", "Outpost", 0, 8, 2, 2))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	u := core.NewUnit("jumpship-1", core.Jumpship, core.SidePlayer)
	logSub.HandleEvent(events.NewUnitMovedEvent("dev-match", u, core.Coordinate{X: 5, Y: 5}, core.Coordinate{X: 5, Y: 7}))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), "unit.moved")
	assert.Contains(t, string(eventDataBytes), "jumpship-1")
}
