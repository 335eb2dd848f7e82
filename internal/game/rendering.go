package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// This file contains the text rendering of the board.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

const (
	emptySymbol  = "·"
	moveSymbol   = "+"
	targetSymbol = "x"
)

var sideColors = map[core.Side]string{
	core.SidePlayer: ColorBlue,
	core.SideEnemy:  ColorRed,
}

// Render returns the board as text, enemy rows on top. Player units are
// capitalised, enemy units lower case. The selected unit's remaining moves
// and targets are marked.
func (m *Match) Render(color bool) string {
	size := m.board.Size()

	var sb strings.Builder
	sb.Grow((size*12+8)*(size+4) + 128)

	sb.WriteString("   ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%3d", x)
	}
	sb.WriteString("\n")

	for y := size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < size; x++ {
			m.writeCell(&sb, core.NewCoordinate(x, y), color)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s=empty %s=move %s=target  turn %d (%s)  player %d  enemy %d\n",
		emptySymbol, moveSymbol, targetSymbol,
		m.stateMachine.GetContext().Turn, m.active,
		m.tally.Remaining(core.SidePlayer), m.tally.Remaining(core.SideEnemy))
	return sb.String()
}

// writeCell writes one three-column cell
func (m *Match) writeCell(sb *strings.Builder, c core.Coordinate, color bool) {
	paint := func(code, text string) {
		if color {
			sb.WriteString(code)
		}
		sb.WriteString(text)
		if color {
			sb.WriteString(ColorReset)
		}
	}

	sel := m.selected
	if u := m.board.Occupant(c); u != nil {
		symbol := unitSymbol(u)
		code := sideColors[u.Side]
		if sel != nil && sel.Actions != nil && sel.Actions.Get(c) && sel.CanShoot {
			paint(ColorYellow, targetSymbol+symbol)
			return
		}
		if u == sel {
			paint(ColorGreen, "*"+symbol)
			return
		}
		paint(code, " "+symbol)
		return
	}

	if sel != nil && sel.CanMove && sel.Moves != nil && sel.Moves.Get(c) {
		paint(ColorGreen, "  "+moveSymbol)
		return
	}
	paint(ColorGray, "  "+emptySymbol)
}

// unitSymbol is the first two letters of the archetype, cased by side
func unitSymbol(u *core.Unit) string {
	name := u.Archetype
	if len(name) < 2 {
		name += "?"
	}
	name = name[:2]
	if u.IsEnemy() {
		return strings.ToLower(name)
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}
