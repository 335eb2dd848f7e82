package subscribers_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
)

func TestStatsSubscriberTalliesPerSide(t *testing.T) {
	stats := subscribers.NewStatsSubscriber("stats")
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(stats)

	player := core.NewUnit("p", core.Golem, core.SidePlayer)
	enemy := core.NewUnit("e", core.Grunt, core.SideEnemy)
	move := core.Coordinate{X: 2, Y: 5}

	bus.Publish(events.NewMatchStartedEvent("m", "Outpost", 0, 8, 1, 1))
	bus.Publish(events.NewTurnChangedEvent("m", 1, core.SidePlayer))
	bus.Publish(events.NewUnitMovedEvent("m", player, core.Coordinate{X: 2, Y: 1}, core.Coordinate{X: 2, Y: 2}))
	bus.Publish(events.NewUnitAttackedEvent("m", player, enemy))
	bus.Publish(events.NewActionRejectedEvent("m", core.NewMoveAction(player, core.Coordinate{X: 9, Y: 9}), errors.New("out of range")))
	bus.Publish(events.NewTurnChangedEvent("m", 2, core.SideEnemy))
	bus.Publish(events.NewAIActivationEvent("m", 2, enemy, &move, nil, false))
	bus.Publish(events.NewUnitMovedEvent("m", enemy, core.Coordinate{X: 2, Y: 6}, move))
	bus.Publish(events.NewUnitDestroyedEvent("m", enemy, move, "p", 0))
	bus.Publish(events.NewMatchEndedEvent("m", true, false, "enemy eliminated", 3*time.Second, 2))

	s := stats.Snapshot()
	assert.Equal(t, "m", s.MatchID)
	assert.Equal(t, 2, s.Turns)
	assert.True(t, s.Finished)
	assert.True(t, s.Victory)
	assert.Equal(t, "enemy eliminated", s.Reason)
	assert.Equal(t, 3*time.Second, s.Duration)

	assert.Equal(t, subscribers.SideStats{Moves: 1, Attacks: 1, DamageDealt: player.Damage, RejectedOrders: 1}, s.Player)
	assert.Equal(t, subscribers.SideStats{Moves: 1, UnitsLost: 1, AIActivations: 1}, s.Enemy)
}

func TestStatsSubscriberResetsOnMatchStart(t *testing.T) {
	stats := subscribers.NewStatsSubscriber("stats")
	u := core.NewUnit("p", core.Grunt, core.SidePlayer)

	stats.HandleEvent(events.NewUnitMovedEvent("m", u, core.Coordinate{}, core.Coordinate{Y: 1}))
	assert.Equal(t, 1, stats.Snapshot().Player.Moves)

	stats.HandleEvent(events.NewMatchStartedEvent("m2", "Ridge", 1, 8, 3, 4))
	s := stats.Snapshot()
	assert.Equal(t, "m2", s.MatchID)
	assert.Zero(t, s.Player.Moves)
}
