package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game"
	"github.com/rs/zerolog"
)

func main() {
	// Quick demo: the built-in first level, autopilot against the AI, no pacing
	seed := time.Now().UnixNano()
	fmt.Printf("Game seed: %d\n", seed)

	m, err := game.NewMatch(context.Background(), game.MatchConfig{
		Rng:    rand.New(rand.NewSource(seed)),
		Logger: zerolog.Nop(),
	})
	if err != nil {
		panic(err)
	}
	autopilot := game.NewAutopilot(zerolog.Nop())

	fmt.Printf("Initial board:\n%s\n", m.Render(true))
	for tick := 0; tick < 1000 && m.Running(); tick++ {
		if m.IsPlayerTurn() {
			if err := autopilot.Play(m); err != nil {
				fmt.Printf("Autopilot: %v\n", err)
			}
			if err := m.EndTurn(); err != nil {
				fmt.Printf("End turn: %v\n", err)
			}
			m.Tick(time.Millisecond)
			fmt.Printf("After turn %d:\n%s\n", m.State().Turn-1, m.Render(true))
			continue
		}
		m.Tick(time.Millisecond)
	}

	state := m.State()
	switch {
	case state.Running:
		fmt.Printf("No result after %d turns\n", state.Turn)
	case state.Victory:
		fmt.Printf("Victory after %d turns (%s)\n", state.Turn, state.Reason)
	default:
		fmt.Printf("Defeat after %d turns (%s)\n", state.Turn, state.Reason)
	}
}
