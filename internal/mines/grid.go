package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the square is open and carries its surrounding mine
	 * count. The values above 8 only appear once the game is over and
	 * the grid has been revealed.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged || s == CorrectlyFlagged:
		return "*"
	case s == ExplodedMine:
		return "@"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "!"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "?"
	}
}

// Grid is the player-facing view of the board.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range (len(g) + width - 1) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
