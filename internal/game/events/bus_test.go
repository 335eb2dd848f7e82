package events

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeMatchStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewMatchStartedEvent("test-match", "Outpost", 0, 8, 3, 3))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeMatchStarted, receivedEvent.Type())
	assert.Equal(t, "test-match", receivedEvent.MatchID())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		handler1Called = true
	})
	id2 := bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		handler2Called = true
	})

	bus.Publish(NewTurnChangedEvent("test-match", 1, core.SidePlayer))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.Equal(t, "turn.changed_func_1", id1)
	assert.Equal(t, "turn.changed_func_2", id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTurnChanged))
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeMatchStarted: true,
			TypeMatchEnded:   true,
		},
	}

	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewMatchStartedEvent("test-match", "Outpost", 0, 8, 2, 2))
	bus.Publish(NewTurnChangedEvent("test-match", 1, core.SidePlayer))
	bus.Publish(NewMatchEndedEvent("test-match", true, false, "enemy eliminated", time.Minute, 7))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeMatchStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeMatchEnded, subscriber.receivedEvents[1].Type())

	ended := subscriber.receivedEvents[1].(*MatchEndedEvent)
	assert.True(t, ended.Victory)
	assert.Equal(t, 7, ended.Metadata.Turn)

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewMatchStartedEvent("test-match", "Outpost", 0, 8, 2, 2))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panicker" }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(panickingSubscriber{})
	bus.SubscribeFunc(TypeUnitMoved, func(Event) { panic("handler boom") })

	delivered := false
	bus.SubscribeFunc(TypeUnitMoved, func(Event) { delivered = true })

	u := core.NewUnit("u1", core.Grunt, core.SidePlayer)
	assert.NotPanics(t, func() {
		bus.Publish(NewUnitMovedEvent("m", u, core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 0, Y: 1}))
	})
	assert.True(t, delivered, "a panicking handler must not starve later handlers")
}

func TestMatchEventConstructors(t *testing.T) {
	attacker := core.NewUnit("a", core.Golem, core.SideEnemy)
	target := core.NewUnit("t", core.Grunt, core.SidePlayer)

	attacked := NewUnitAttackedEvent("m", attacker, target)
	assert.Equal(t, TypeUnitAttacked, attacked.Type())
	assert.Equal(t, core.Golem.Damage, attacked.Damage)
	assert.Equal(t, core.SideEnemy, attacked.Side)

	selected := NewUnitSelectedEvent("m", target)
	assert.Equal(t, 0, selected.Moves, "unprojected unit reports no moves")

	turn := NewTurnChangedEvent("m", 3, core.SideEnemy)
	assert.Equal(t, "enemy", turn.Metadata.ActiveSide)

	move := core.Coordinate{X: 1, Y: 2}
	activation := NewAIActivationEvent("m", 3, attacker, &move, nil, false)
	assert.Equal(t, &move, activation.Move)
	assert.Nil(t, activation.Attack)
	assert.False(t, activation.Timestamp().IsZero())
}

type orderSubscriber struct {
	id  string
	log *[]string
}

func (o orderSubscriber) ID() string               { return o.id }
func (o orderSubscriber) HandleEvent(Event)        { *o.log = append(*o.log, o.id) }
func (o orderSubscriber) InterestedIn(string) bool { return true }

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var order []string
	for _, id := range []string{"stats", "audio", "logger", "render", "alpha", "zulu"} {
		bus.Subscribe(orderSubscriber{id: id, log: &order})
	}
	bus.SubscribeFunc(TypeTurnChanged, func(Event) { order = append(order, "func") })

	for i := 0; i < 20; i++ {
		order = order[:0]
		bus.Publish(NewTurnChangedEvent("m", i, core.SidePlayer))
		require.Equal(t, []string{"stats", "audio", "logger", "render", "alpha", "zulu", "func"}, order)
	}

	// Re-subscribing an existing ID keeps its slot
	bus.Subscribe(orderSubscriber{id: "audio", log: &order})
	order = order[:0]
	bus.Publish(NewTurnChangedEvent("m", 21, core.SidePlayer))
	assert.Equal(t, []string{"stats", "audio", "logger", "render", "alpha", "zulu", "func"}, order)
	assert.Equal(t, 6, bus.GetSubscriberCount())
}

func TestEventBusUnsubscribeFuncHandler(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	calls := map[string]int{}
	first := bus.SubscribeFunc(TypeTurnChanged, func(Event) { calls["first"]++ })
	second := bus.SubscribeFunc(TypeTurnChanged, func(Event) { calls["second"]++ })
	assert.NotEqual(t, first, second)

	assert.True(t, bus.Unsubscribe(first))
	assert.False(t, bus.Unsubscribe(first), "already removed")
	assert.Equal(t, 1, bus.GetFuncHandlerCount(TypeTurnChanged))

	// A new handler never reuses a removed handler's ID
	third := bus.SubscribeFunc(TypeTurnChanged, func(Event) { calls["third"]++ })
	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)

	bus.Publish(NewTurnChangedEvent("m", 1, core.SidePlayer))
	assert.Equal(t, map[string]int{"second": 1, "third": 1}, calls)

	assert.True(t, bus.Unsubscribe(second))
	assert.True(t, bus.Unsubscribe(third))
	assert.Equal(t, 0, bus.GetFuncHandlerCount(TypeTurnChanged))
}

func TestEventBusHandlersMayUnsubscribeWhileHandling(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	calls := 0
	var id string
	id = bus.SubscribeFunc(TypeMatchEnded, func(Event) {
		calls++
		bus.Unsubscribe(id)
	})

	bus.Publish(NewMatchEndedEvent("m", true, false, "enemy eliminated", time.Second, 3))
	bus.Publish(NewMatchEndedEvent("m", true, false, "enemy eliminated", time.Second, 3))
	assert.Equal(t, 1, calls)
}
