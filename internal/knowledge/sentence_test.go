package knowledge

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func TestKnownMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []Cell
		count int
		want  []Cell
	}{
		{
			name:  "all mines",
			cells: []Cell{{0, 0}, {0, 1}, {1, 0}},
			count: 3,
			want:  []Cell{{0, 0}, {0, 1}, {1, 0}},
		},
		{
			name:  "single mine undetermined",
			cells: []Cell{{0, 0}, {0, 1}},
			count: 1,
			want:  nil,
		},
		{
			name:  "no mines",
			cells: []Cell{{0, 0}, {0, 1}},
			count: 0,
			want:  nil,
		},
		{
			name:  "resolved sentence",
			cells: nil,
			count: 0,
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSentence(test.cells, test.count)
			assert.Equal(t, test.want, s.KnownMines())
		})
	}
}

func TestKnownSafes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []Cell
		count int
		want  []Cell
	}{
		{
			name:  "all safe",
			cells: []Cell{{1, 1}, {0, 1}, {0, 0}},
			count: 0,
			want:  []Cell{{0, 0}, {0, 1}, {1, 1}},
		},
		{
			name:  "undetermined",
			cells: []Cell{{0, 0}, {0, 1}},
			count: 1,
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSentence(test.cells, test.count)
			assert.Equal(t, test.want, s.KnownSafes())
		})
	}
}

func TestMarkMine(t *testing.T) {
	t.Parallel()

	s := NewSentence([]Cell{{0, 0}, {0, 1}, {0, 2}}, 2)

	if !s.MarkMine(Cell{0, 1}) {
		t.Error("marking a member cell must report a change")
	}
	assert.False(t, s.Has(Cell{0, 1}))
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 2, s.Size())

	if s.MarkMine(Cell{5, 5}) {
		t.Error("marking a non-member cell must not report a change")
	}
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 2, s.Size())
}

func TestMarkSafe(t *testing.T) {
	t.Parallel()

	s := NewSentence([]Cell{{0, 0}, {0, 1}, {0, 2}}, 1)

	if !s.MarkSafe(Cell{0, 0}) {
		t.Error("marking a member cell must report a change")
	}
	assert.False(t, s.Has(Cell{0, 0}))
	assert.Equal(t, 1, s.Count(), "count must not change")
	assert.Equal(t, 2, s.Size())

	if s.MarkSafe(Cell{0, 0}) {
		t.Error("marking the same cell twice must not report a change")
	}
}

func TestSentenceEqual(t *testing.T) {
	t.Parallel()

	a := NewSentence([]Cell{{0, 0}, {1, 1}}, 1)
	b := NewSentence([]Cell{{1, 1}, {0, 0}}, 1)
	c := NewSentence([]Cell{{0, 0}, {1, 1}}, 2)
	d := NewSentence([]Cell{{0, 0}}, 1)

	assert.True(t, a.Equal(b), "order must not matter")
	assert.False(t, a.Equal(c), "counts differ")
	assert.False(t, a.Equal(d), "sets differ")
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestSentenceSubsetMinus(t *testing.T) {
	t.Parallel()

	sub := NewSentence([]Cell{{0, 0}, {0, 1}}, 1)
	super := NewSentence([]Cell{{0, 0}, {0, 1}, {0, 2}}, 2)

	assert.True(t, sub.SubsetOf(super))
	assert.False(t, super.SubsetOf(sub))
	assert.True(t, sub.SubsetOf(sub))
	assert.Equal(t, []Cell{{0, 2}}, super.Minus(sub))
	assert.Nil(t, sub.Minus(super))
}
