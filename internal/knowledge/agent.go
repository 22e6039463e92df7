package knowledge

import (
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

/*
Agent is the knowledge base. It exclusively owns every sentence plus the
accumulated sets of proven mines, proven safes and played cells; nothing
else mutates them. Safes and mines only ever grow and stay disjoint, and a
cell whose status becomes known is purged from every sentence at the moment
of marking, so no sentence ever mentions a settled cell.

An Agent is not safe for concurrent use: a single Observe call touches all
four collections, so callers adapting it to a concurrent setting must treat
the whole structure as one unit of mutual exclusion.
*/
type Agent struct {
	height, width int

	movesMade cellSet
	safes     cellSet
	mines     cellSet

	knowledge []*Sentence
	index     map[string]int /* canonical key -> slot in knowledge */

	rnd *rand.Rand
}

func NewAgent(height, width int, r *rand.Rand) *Agent {
	return &Agent{
		height:    height,
		width:     width,
		movesMade: make(cellSet),
		safes:     make(cellSet),
		mines:     make(cellSet),
		index:     make(map[string]int),
		rnd:       r,
	}
}

// MarkMine records that a cell holds a mine and removes it from every
// sentence that mentions it. Marking an already-known mine again is a no-op
// for every sentence that no longer contains the cell.
func (a *Agent) MarkMine(cell Cell) {
	a.mines[cell] = void{}
	for i, s := range a.knowledge {
		old := s.Key()
		if s.MarkMine(cell) {
			a.rekey(old, s, i)
		}
	}
}

// MarkSafe records that a cell is clear and removes it from every sentence
// that mentions it.
func (a *Agent) MarkSafe(cell Cell) {
	a.safes[cell] = void{}
	for i, s := range a.knowledge {
		old := s.Key()
		if s.MarkSafe(cell) {
			a.rekey(old, s, i)
		}
	}
}

// rekey keeps the dedup index in step with a sentence that just shrank. If
// another sentence already owns the new key the index entry is left alone;
// the duplicate sentence is inert and harmless.
func (a *Agent) rekey(old string, s *Sentence, i int) {
	if j, ok := a.index[old]; ok && j == i {
		delete(a.index, old)
	}
	key := s.Key()
	if _, ok := a.index[key]; !ok {
		a.index[key] = i
	}
}

/*
Observe feeds one revealed cell and its true adjacent-mine count into the
knowledge base and runs every deduction that follows from it.

The caller contract is the board's: call Observe exactly once per revealed
cell, with the count the board reported. A repeated observation or a count
inconsistent with the real board is not detected here; it leaves the base
holding stale sentences rather than failing.
*/
func (a *Agent) Observe(cell Cell, count int) {
	a.movesMade[cell] = void{}
	a.MarkSafe(cell)

	/*
	 * Build the candidate sentence over the cell's undetermined
	 * neighbors. Known mines stay in at this point; the candidate's own
	 * arithmetic takes them out just below, so that its count ends up
	 * describing only the unresolved neighbors.
	 */
	var cells []Cell
	for _, n := range a.neighbors(cell) {
		if !a.safes.has(n) {
			cells = append(cells, n)
		}
	}
	candidate := NewSentence(cells, count)
	for mine := range a.mines {
		candidate.MarkMine(mine)
	}
	a.appendSentence(candidate)

	Log.WithFields(logrus.Fields{
		"cell":      cell,
		"count":     count,
		"knowledge": len(a.knowledge),
	}).Debug("observed cell")

	a.markCells()
	a.resolve()
	a.markCells()
}

// appendSentence adds a sentence unless a structurally equal one is already
// known.
func (a *Agent) appendSentence(s *Sentence) {
	key := s.Key()
	if _, ok := a.index[key]; ok {
		return
	}
	a.index[key] = len(a.knowledge)
	a.knowledge = append(a.knowledge, s)
}

/*
markCells performs one deduction pass: collect every cell any sentence can
currently prove safe or mined, then mark them all. The pass is not iterated
internally; Observe invokes it before and after resolution, and that
repetition is what drives the base to a fixpoint.
*/
func (a *Agent) markCells() {
	var safes, mines []Cell
	for _, s := range a.knowledge {
		for _, c := range s.KnownSafes() {
			if !a.safes.has(c) && !slices.Contains(safes, c) {
				safes = append(safes, c)
			}
		}
		for _, c := range s.KnownMines() {
			if !a.mines.has(c) && !slices.Contains(mines, c) {
				mines = append(mines, c)
			}
		}
	}
	for _, c := range safes {
		a.MarkSafe(c)
	}
	for _, c := range mines {
		a.MarkMine(c)
	}
	if len(safes) > 0 || len(mines) > 0 {
		Log.WithFields(logrus.Fields{
			"safes": safes,
			"mines": mines,
		}).Debug("deduced cells")
	}
}

/*
resolve derives new sentences from every subset pair: when A's cells all
lie within B's, exactly B.count-A.count mines sit among B's cells outside
A. A derivation with no cells says nothing, and one with a negative count
is the arithmetic of two sentences that merely coexist rather than
constrain each other; both are discarded rather than inserted.
*/
func (a *Agent) resolve() {
	var derived []*Sentence
	for _, sub := range a.knowledge {
		for _, super := range a.knowledge {
			if sub == super || !sub.SubsetOf(super) {
				continue
			}
			cells := super.Minus(sub)
			count := super.count - sub.count
			if len(cells) == 0 || count < 0 {
				continue
			}
			derived = append(derived, NewSentence(cells, count))
		}
	}
	for _, s := range derived {
		a.appendSentence(s)
	}
}

// SafeMove returns a cell proved safe that has not been played yet, in
// row-major order so repeated calls are deterministic. It is a pure query.
// ok is false when no safe move is known, which is a normal outcome
// signalling "fall back to another strategy", not an error.
func (a *Agent) SafeMove() (cell Cell, ok bool) {
	for _, c := range a.safes.sorted() {
		if !a.movesMade.has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// RandomMove picks uniformly, via the injected generator, among cells that
// have not been played and are not known mines. It is a pure query. ok is
// false once every cell is either played or mined.
func (a *Agent) RandomMove() (cell Cell, ok bool) {
	var candidates []Cell
	for row := range a.height {
		for col := range a.width {
			c := Cell{row, col}
			if !a.movesMade.has(c) && !a.mines.has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}

// Mines returns the cells proven to hold mines, sorted row-major.
func (a *Agent) Mines() []Cell { return a.mines.sorted() }

// Safes returns the cells proven clear, sorted row-major.
func (a *Agent) Safes() []Cell { return a.safes.sorted() }

// MovesMade returns the cells already played, sorted row-major.
func (a *Agent) MovesMade() []Cell { return a.movesMade.sorted() }

func (a *Agent) IsMine(c Cell) bool { return a.mines.has(c) }

func (a *Agent) HasPlayed(c Cell) bool { return a.movesMade.has(c) }

func (a *Agent) IsSafe(c Cell) bool { return a.safes.has(c) }

func (a *Agent) KnowledgeSize() int { return len(a.knowledge) }

// SentenceView is a read-only snapshot of one sentence.
type SentenceView struct {
	Cells []Cell `json:"cells"`
	Count int    `json:"count"`
}

// Sentences snapshots the current knowledge. Sentences that have been fully
// resolved (no cells, zero count) are skipped.
func (a *Agent) Sentences() []SentenceView {
	views := make([]SentenceView, 0, len(a.knowledge))
	for _, s := range a.knowledge {
		if s.Size() == 0 && s.count == 0 {
			continue
		}
		views = append(views, SentenceView{Cells: s.Cells(), Count: s.count})
	}
	return views
}

func (a *Agent) neighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{c.Row + dr, c.Col + dc}
			if 0 <= n.Row && n.Row < a.height && 0 <= n.Col && n.Col < a.width {
				ns = append(ns, n)
			}
		}
	}
	return ns
}
