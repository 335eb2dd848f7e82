package game

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
)

// Highlight is what the highlight sink draws for the current selection
type Highlight struct {
	Moves       *core.Grid
	Actions     *core.Grid
	ActionsArea *core.Grid
	Selected    *core.Coordinate
	Hovered     *core.Coordinate
}

// HighlightSink receives projection grids whenever selection or hover changes
type HighlightSink interface {
	ShowHighlights(h Highlight)
	HideHighlights()
}

// Presenter animates board changes. IsBusy is polled once per tick.
type Presenter interface {
	MoveTo(u *core.Unit, dest core.Coordinate)
	Attack(attacker, target *core.Unit)
	IsBusy(u *core.Unit) bool
}

// advancer is implemented by presenters that run on simulated time
type advancer interface {
	Advance(dt time.Duration)
}

// tracker is implemented by presenters that need each unit's starting cell
type tracker interface {
	Track(u *core.Unit)
}

// forgetter is implemented by presenters that track per-unit state
type forgetter interface {
	Forget()
}

// AudioSink plays named cues
type AudioSink = subscribers.AudioSink

// Gate exposes the external pause and turn-announcement predicates
type Gate interface {
	IsPaused() bool
	ShowingTurn() bool
}

// OutcomeSink is told how the match ended
type OutcomeSink interface {
	MatchEnded(victory bool)
}

type nopHighlights struct{}

func (nopHighlights) ShowHighlights(Highlight) {}
func (nopHighlights) HideHighlights()          {}

type nopPresenter struct{}

func (nopPresenter) MoveTo(*core.Unit, core.Coordinate) {}
func (nopPresenter) Attack(*core.Unit, *core.Unit)      {}
func (nopPresenter) IsBusy(*core.Unit) bool             { return false }

type nopAudio struct{}

func (nopAudio) Play(string)  {}
func (nopAudio) Pause(string) {}

type nopOutcome struct{}

func (nopOutcome) MatchEnded(bool) {}

// ManualGate is a Gate driven by its fields
type ManualGate struct {
	Paused     bool
	Announcing bool
}

func (g *ManualGate) IsPaused() bool    { return g.Paused }
func (g *ManualGate) ShowingTurn() bool { return g.Announcing }
