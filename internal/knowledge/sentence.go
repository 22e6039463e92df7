package knowledge

import (
	"fmt"
	"strings"
)

/*
A Sentence is a single logical statement about the board: of the cells in
its set, exactly Count are mines. Cells leave the set one at a time as
their status becomes certain; a sentence whittled down to no cells is a
tautology and stays in the knowledge base as harmless dead weight.

Outside the brief window where a freshly built sentence is being
normalised against already-known mines, 0 <= Count <= len(cells) always
holds.
*/
type Sentence struct {
	cells cellSet
	count int
}

func NewSentence(cells []Cell, count int) *Sentence {
	s := &Sentence{cells: make(cellSet, len(cells)), count: count}
	for _, c := range cells {
		s.cells[c] = void{}
	}
	return s
}

func (s *Sentence) Count() int { return s.count }

func (s *Sentence) Size() int { return len(s.cells) }

func (s *Sentence) Has(c Cell) bool { return s.cells.has(c) }

// Cells returns the sentence's cell set in row-major order.
func (s *Sentence) Cells() []Cell { return s.cells.sorted() }

// KnownMines returns every cell of the sentence when all of them must be
// mines, i.e. the mine count equals the set size. Otherwise nothing is
// certain and it returns no cells.
func (s *Sentence) KnownMines() []Cell {
	if s.count == len(s.cells) && len(s.cells) > 0 {
		return s.cells.sorted()
	}
	return nil
}

// KnownSafes returns every cell of the sentence when none of them can be a
// mine, i.e. the mine count is zero. Otherwise it returns no cells.
func (s *Sentence) KnownSafes() []Cell {
	if s.count == 0 {
		return s.cells.sorted()
	}
	return nil
}

// MarkMine removes a cell known to hold a mine. Both the population and the
// required mine count shrink by one, keeping the constraint's arithmetic
// consistent. Reports whether the sentence changed.
func (s *Sentence) MarkMine(c Cell) bool {
	if !s.cells.has(c) {
		return false
	}
	delete(s.cells, c)
	s.count--
	return true
}

// MarkSafe removes a cell known to be clear. The population shrinks but the
// number of mines among the rest is unchanged. Reports whether the sentence
// changed.
func (s *Sentence) MarkSafe(c Cell) bool {
	if !s.cells.has(c) {
		return false
	}
	delete(s.cells, c)
	return true
}

// Equal reports structural equality: same cell set, same count.
func (s *Sentence) Equal(o *Sentence) bool {
	if s.count != o.count || len(s.cells) != len(o.cells) {
		return false
	}
	for c := range s.cells {
		if !o.cells.has(c) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s also belongs to o.
func (s *Sentence) SubsetOf(o *Sentence) bool {
	if len(s.cells) > len(o.cells) {
		return false
	}
	for c := range s.cells {
		if !o.cells.has(c) {
			return false
		}
	}
	return true
}

// Minus returns the cells of s that are not in o, in row-major order.
func (s *Sentence) Minus(o *Sentence) []Cell {
	var diff []Cell
	for _, c := range s.cells.sorted() {
		if !o.cells.has(c) {
			diff = append(diff, c)
		}
	}
	return diff
}

// Key is a canonical representation built from the sorted cell set and the
// count. Two sentences are structurally equal iff their keys match, which
// lets the knowledge base deduplicate with a map lookup instead of a scan.
func (s *Sentence) Key() string {
	var b strings.Builder
	for _, c := range s.cells.sorted() {
		fmt.Fprintf(&b, "%d.%d;", c.Row, c.Col)
	}
	fmt.Fprintf(&b, "=%d", s.count)
	return b.String()
}

func (s *Sentence) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range s.cells.sorted() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, "} = %d", s.count)
	return b.String()
}
