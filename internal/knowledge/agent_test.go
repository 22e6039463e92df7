package knowledge

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(height, width int) *Agent {
	return NewAgent(height, width, rand.New(rand.NewPCG(1, 2)))
}

func TestObserveZeroCount(t *testing.T) {
	t.Parallel()

	// 1x2 board: revealing (0,0) with count 0 proves (0,1) safe.
	a := newTestAgent(1, 2)
	a.Observe(Cell{0, 0}, 0)

	assert.True(t, a.IsSafe(Cell{0, 1}))
	assert.Empty(t, a.Mines())

	cell, ok := a.SafeMove()
	require.True(t, ok)
	assert.Equal(t, Cell{0, 1}, cell)
}

func TestObserveFullCount(t *testing.T) {
	t.Parallel()

	// 1x2 board: revealing (0,0) with count 1 proves (0,1) a mine.
	a := newTestAgent(1, 2)
	a.Observe(Cell{0, 0}, 1)

	assert.Equal(t, []Cell{{0, 1}}, a.Mines())

	_, ok := a.SafeMove()
	assert.False(t, ok)
	_, ok = a.RandomMove()
	assert.False(t, ok, "the only unplayed cell is a known mine")
}

func TestResolutionDerivesDifference(t *testing.T) {
	t.Parallel()

	// {A,B,C}=2 and {A,B}=1 must resolve to {C}=1, making C a known mine.
	a := newTestAgent(3, 3)
	a.appendSentence(NewSentence([]Cell{{0, 0}, {0, 1}, {0, 2}}, 2))
	a.appendSentence(NewSentence([]Cell{{0, 0}, {0, 1}}, 1))

	a.resolve()
	a.markCells()

	assert.Contains(t, a.Mines(), Cell{0, 2})
}

func TestResolutionDiscardsUselessCandidates(t *testing.T) {
	t.Parallel()

	a := newTestAgent(3, 3)
	// Equal cell sets with different counts subtract to an empty set; the
	// derivation must be discarded, not inserted.
	a.appendSentence(NewSentence([]Cell{{0, 0}, {0, 1}}, 1))
	a.appendSentence(NewSentence([]Cell{{0, 0}, {0, 1}}, 2))

	before := a.KnowledgeSize()
	a.resolve()
	assert.Equal(t, before, a.KnowledgeSize())
}

func TestObserveRepeatedIsStable(t *testing.T) {
	t.Parallel()

	a := newTestAgent(2, 2)
	a.Observe(Cell{0, 0}, 3)

	mines := a.Mines()
	safes := a.Safes()

	a.Observe(Cell{0, 0}, 3)

	assert.Equal(t, mines, a.Mines())
	assert.Equal(t, safes, a.Safes())
}

func TestMarkCellsIdempotent(t *testing.T) {
	t.Parallel()

	// 2x2 board with one mine at (0,1).
	a := newTestAgent(2, 2)
	a.Observe(Cell{0, 0}, 1)
	a.Observe(Cell{1, 1}, 1)

	mines := a.Mines()
	safes := a.Safes()
	size := a.KnowledgeSize()

	a.markCells()

	assert.Equal(t, mines, a.Mines())
	assert.Equal(t, safes, a.Safes())
	assert.Equal(t, size, a.KnowledgeSize())
}

func TestMarkMinePurgesSentences(t *testing.T) {
	t.Parallel()

	a := newTestAgent(3, 3)
	a.appendSentence(NewSentence([]Cell{{0, 0}, {0, 1}, {1, 0}}, 1))

	a.MarkMine(Cell{0, 1})

	for _, v := range a.Sentences() {
		assert.NotContains(t, v.Cells, Cell{0, 1})
	}
	// Marking again must be harmless.
	a.MarkMine(Cell{0, 1})
	assert.Equal(t, []Cell{{0, 1}}, a.Mines())
}

func TestSafesAndMinesDisjoint(t *testing.T) {
	t.Parallel()

	// Drive a few observations and check the invariant after each.
	a := newTestAgent(3, 3)
	observations := []struct {
		cell  Cell
		count int
	}{
		{Cell{1, 1}, 1},
		{Cell{0, 0}, 0},
		{Cell{0, 1}, 0},
		{Cell{0, 2}, 0},
		{Cell{1, 0}, 1},
		{Cell{1, 2}, 1},
	}

	var prevSafes, prevMines int
	for _, o := range observations {
		a.Observe(o.cell, o.count)

		for _, m := range a.Mines() {
			assert.False(t, a.IsSafe(m), "%v is both safe and mine", m)
		}
		require.GreaterOrEqual(t, len(a.Safes()), prevSafes, "safes must not shrink")
		require.GreaterOrEqual(t, len(a.Mines()), prevMines, "mines must not shrink")
		prevSafes, prevMines = len(a.Safes()), len(a.Mines())
	}

	// The six truthful observations pin the lone mine down exactly.
	assert.Equal(t, []Cell{{2, 1}}, a.Mines())
}

func TestCornerDeduction(t *testing.T) {
	t.Parallel()

	// 2x2 board with a single mine at (1,1): opening the other three cells
	// pins it down exactly.
	a := newTestAgent(2, 2)
	a.Observe(Cell{0, 0}, 1)
	a.Observe(Cell{0, 1}, 1)
	a.Observe(Cell{1, 0}, 1)

	assert.Equal(t, []Cell{{1, 1}}, a.Mines())
}

func TestSafeMoveIsPure(t *testing.T) {
	t.Parallel()

	a := newTestAgent(1, 3)
	a.Observe(Cell{0, 0}, 0)

	first, ok := a.SafeMove()
	require.True(t, ok)
	again, ok := a.SafeMove()
	require.True(t, ok)
	assert.Equal(t, first, again, "repeated queries must agree")
	assert.NotContains(t, a.MovesMade(), first)
}

func TestRandomMoveAvoidsMinesAndMoves(t *testing.T) {
	t.Parallel()

	a := newTestAgent(2, 2)
	a.Observe(Cell{0, 0}, 3)

	for range 20 {
		_, ok := a.RandomMove()
		assert.False(t, ok, "all unplayed cells are mines")
	}

	b := newTestAgent(2, 2)
	b.Observe(Cell{0, 0}, 1)
	for range 20 {
		c, ok := b.RandomMove()
		require.True(t, ok)
		assert.NotContains(t, b.MovesMade(), c)
		assert.False(t, b.IsMine(c))
	}
}

func TestSentencesSkipResolved(t *testing.T) {
	t.Parallel()

	a := newTestAgent(1, 2)
	a.Observe(Cell{0, 0}, 0)
	a.Observe(Cell{0, 1}, 0)

	for _, v := range a.Sentences() {
		assert.NotEmpty(t, v.Cells)
	}
}
