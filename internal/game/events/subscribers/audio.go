package subscribers

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/rs/zerolog"
)

// Audio cue names understood by the sound layer
const (
	CueMainMusic = "mainMusic"
	CueEndTurn   = "endTurn"
	CueHit       = "hit"
	CueDestroy   = "destroy"
	CueVictory   = "victory"
	CueDefeat    = "defeat"
)

// AudioSink plays named cues. Calls are fire-and-forget.
type AudioSink interface {
	Play(cue string)
	Pause(cue string)
}

// AudioSubscriber turns match events into audio cues
type AudioSubscriber struct {
	id     string
	sink   AudioSink
	logger zerolog.Logger
}

// NewAudioSubscriber creates a subscriber that forwards cues to sink
func NewAudioSubscriber(id string, sink AudioSink, logger zerolog.Logger) *AudioSubscriber {
	return &AudioSubscriber{
		id:     id,
		sink:   sink,
		logger: logger.With().Str("subscriber", "audio").Logger(),
	}
}

func (as *AudioSubscriber) ID() string { return as.id }

// InterestedIn returns true for the events that carry a cue
func (as *AudioSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeMatchStarted, events.TypeMatchEnded, events.TypeTurnChanged,
		events.TypeUnitDamaged, events.TypeUnitDestroyed:
		return true
	}
	return false
}

// HandleEvent plays the cue for event
func (as *AudioSubscriber) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.MatchStartedEvent:
		as.play(CueMainMusic)
	case *events.TurnChangedEvent:
		as.play(CueEndTurn)
	case *events.UnitDamagedEvent:
		as.play(CueHit)
	case *events.UnitDestroyedEvent:
		as.play(CueDestroy)
	case *events.MatchEndedEvent:
		as.sink.Pause(CueMainMusic)
		if e.Silent {
			return
		}
		if e.Victory {
			as.play(CueVictory)
		} else {
			as.play(CueDefeat)
		}
	}
}

func (as *AudioSubscriber) play(cue string) {
	as.logger.Debug().Str("cue", cue).Msg("Playing cue")
	as.sink.Play(cue)
}

// RecordingAudio is an AudioSink that keeps every call, for headless runs and tests
type RecordingAudio struct {
	Played []string
	Paused []string
}

func (r *RecordingAudio) Play(cue string)  { r.Played = append(r.Played, cue) }
func (r *RecordingAudio) Pause(cue string) { r.Paused = append(r.Paused, cue) }

// Count returns how many times cue was played
func (r *RecordingAudio) Count(cue string) int {
	n := 0
	for _, c := range r.Played {
		if c == cue {
			n++
		}
	}
	return n
}

var _ AudioSink = (*RecordingAudio)(nil)

