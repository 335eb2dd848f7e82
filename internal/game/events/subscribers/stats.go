package subscribers

import (
	"sync"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// SideStats aggregates what one side did during a match
type SideStats struct {
	Moves          int
	Attacks        int
	DamageDealt    float64
	UnitsLost      int
	AIActivations  int
	RejectedOrders int
}

// MatchStats is a snapshot of a StatsSubscriber
type MatchStats struct {
	MatchID  string
	Turns    int
	Finished bool
	Victory  bool
	Reason   string
	Duration time.Duration
	Player   SideStats
	Enemy    SideStats
}

// StatsSubscriber tallies match events. Safe to read from another goroutine.
type StatsSubscriber struct {
	id    string
	mu    sync.Mutex
	stats MatchStats
}

// NewStatsSubscriber creates a new statistics subscriber
func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{id: id}
}

func (ss *StatsSubscriber) ID() string { return ss.id }

func (ss *StatsSubscriber) InterestedIn(eventType string) bool { return true }

// HandleEvent updates the counters for event
func (ss *StatsSubscriber) HandleEvent(event events.Event) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		ss.stats = MatchStats{MatchID: e.MatchID()}
	case *events.TurnChangedEvent:
		ss.stats.Turns = e.Metadata.Turn
	case *events.UnitMovedEvent:
		ss.side(e.Side).Moves++
	case *events.UnitAttackedEvent:
		s := ss.side(e.Side)
		s.Attacks++
		s.DamageDealt += e.Damage
	case *events.UnitDestroyedEvent:
		ss.side(e.Side).UnitsLost++
	case *events.AIActivationEvent:
		ss.stats.Enemy.AIActivations++
	case *events.ActionRejectedEvent:
		ss.side(e.Action.Side).RejectedOrders++
	case *events.MatchEndedEvent:
		ss.stats.Finished = true
		ss.stats.Victory = e.Victory
		ss.stats.Reason = e.Reason
		ss.stats.Duration = e.Duration
	}
}

func (ss *StatsSubscriber) side(side core.Side) *SideStats {
	if side == core.SideEnemy {
		return &ss.stats.Enemy
	}
	return &ss.stats.Player
}

// Snapshot returns a copy of the current counters
func (ss *StatsSubscriber) Snapshot() MatchStats {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.stats
}
