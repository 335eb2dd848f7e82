package presentation

import (
	"math"
	"sync"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// Timing controls how long simulated animations keep a unit busy
type Timing struct {
	MoveSpeed  float64       // cells per second
	RotateTime time.Duration // turning to face a destination or target
	AttackTime time.Duration // firing
}

// DefaultTiming matches the feel of the interactive client
func DefaultTiming() Timing {
	return Timing{
		MoveSpeed:  2.5,
		RotateTime: 150 * time.Millisecond,
		AttackTime: 333 * time.Millisecond,
	}
}

type activity struct {
	moving    time.Duration
	attacking time.Duration
	pos       core.Coordinate
	tracked   bool
}

// Headless stands in for the animation layer. Each command keeps the unit
// busy for a simulated duration that only Advance consumes.
type Headless struct {
	mu     sync.Mutex
	timing Timing
	units  map[string]*activity
	logger zerolog.Logger
}

// NewHeadless creates a headless presenter
func NewHeadless(timing Timing, logger zerolog.Logger) *Headless {
	return &Headless{
		timing: timing,
		units:  make(map[string]*activity),
		logger: logger.With().Str("component", "HeadlessPresenter").Logger(),
	}
}

func (h *Headless) get(u *core.Unit) *activity {
	a, ok := h.units[u.ID]
	if !ok {
		a = &activity{}
		h.units[u.ID] = a
	}
	return a
}

// MoveTo starts the travel animation toward dest. Travel is measured from
// the last cell the presenter saw u at; untracked units only turn.
func (h *Headless) MoveTo(u *core.Unit, dest core.Coordinate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a := h.get(u)
	from := dest
	if a.tracked {
		from = a.pos
	}
	a.moving += h.timing.RotateTime + h.travelTime(from, dest)
	a.pos = dest
	a.tracked = true

	h.logger.Debug().
		Str("unit_id", u.ID).
		Str("dest", dest.String()).
		Dur("busy", a.moving).
		Msg("Move animation started")
}

func (h *Headless) travelTime(from, to core.Coordinate) time.Duration {
	if h.timing.MoveSpeed <= 0 {
		return 0
	}
	d := to.Sub(from)
	dist := math.Hypot(float64(d.X), float64(d.Y))
	return time.Duration(dist / h.timing.MoveSpeed * float64(time.Second))
}

// Attack starts the turn-and-fire animation toward target
func (h *Headless) Attack(attacker, target *core.Unit) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a := h.get(attacker)
	a.attacking += h.timing.RotateTime + h.timing.AttackTime

	h.logger.Debug().
		Str("attacker_id", attacker.ID).
		Str("target_id", target.ID).
		Dur("busy", a.attacking).
		Msg("Attack animation started")
}

// Track records u's starting cell so the first move has a travel distance
func (h *Headless) Track(u *core.Unit) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a := h.get(u)
	a.pos = u.Position()
	a.tracked = true
}

// IsBusy reports whether u is still moving, turning or firing
func (h *Headless) IsBusy(u *core.Unit) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	a, ok := h.units[u.ID]
	return ok && (a.moving > 0 || a.attacking > 0)
}

// Advance plays every running animation forward by dt. Movement finishes
// before firing starts, as a unit cannot shoot while travelling.
func (h *Headless) Advance(dt time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, a := range h.units {
		left := dt
		if a.moving > 0 {
			used := min(a.moving, left)
			a.moving -= used
			left -= used
		}
		if a.attacking > 0 && left > 0 {
			a.attacking -= min(a.attacking, left)
		}
	}
}

// Forget drops every tracked unit, used when a level is torn down
func (h *Headless) Forget() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.units = make(map[string]*activity)
}
