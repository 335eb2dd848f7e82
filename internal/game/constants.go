package game

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game/presentation"
)

// Pacing holds the waits inserted between AI sub-steps
type Pacing struct {
	Think              time.Duration
	PreAttack          time.Duration
	PostAttack         time.Duration
	PostMove           time.Duration
	FollowupPostAttack time.Duration
	Settle             time.Duration
}

// ConfiguredPacing reads the pacing section of the global config
func ConfiguredPacing() Pacing {
	p := config.Get().Pacing
	return Pacing{
		Think:              p.AIThink,
		PreAttack:          p.PreAttack,
		PostAttack:         p.PostAttack,
		PostMove:           p.PostMove,
		FollowupPostAttack: p.FollowupPostAttack,
		Settle:             p.AISettle,
	}
}

// ConfiguredTiming reads the presentation section of the global config
func ConfiguredTiming() presentation.Timing {
	p := config.Get().Presentation
	return presentation.Timing{
		MoveSpeed:  p.MoveSpeed,
		RotateTime: p.RotateTime,
		AttackTime: p.AttackTime,
	}
}

// TurnDuration is the per-turn time limit; zero disables the timer
func TurnDuration() time.Duration {
	return config.Get().Match.TurnDuration
}
