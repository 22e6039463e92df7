package knowledge

import (
	"fmt"
	"slices"
)

// Cell identifies a single board position by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Compare orders cells row-major.
func (c Cell) Compare(o Cell) int {
	if c.Row != o.Row {
		return c.Row - o.Row
	}
	return c.Col - o.Col
}

type void struct{}

type cellSet map[Cell]void

func (s cellSet) has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// sorted returns the set's cells in row-major order, so that callers
// iterating a set always see the same sequence.
func (s cellSet) sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, Cell.Compare)
	return cells
}
