package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func TestNewBoardPlacesExactCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "9x9(10)", params: GameParams{Width: 9, Height: 9, MineCount: 10}},
		{name: "16x16(40)", params: GameParams{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: GameParams{Width: 30, Height: 16, MineCount: 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			board, err := NewBoard(test.params, r)
			if err != nil {
				t.Fatal(err)
			}
			placed := 0
			for _, mined := range board.Grid {
				if mined {
					placed++
				}
			}
			if placed != test.params.MineCount {
				t.Errorf("placed %d mines, want %d", placed, test.params.MineCount)
			}
		})
	}
}

func TestNewBoardSafeAt(t *testing.T) {
	t.Parallel()

	params := GameParams{Width: 9, Height: 9, MineCount: 35}
	r := rand.New(rand.NewPCG(1, 2))
	for sy := 0; sy < params.Height; sy += 4 {
		for sx := 0; sx < params.Width; sx += 4 {
			board, err := NewBoardSafeAt(params, sx, sy, r)
			if err != nil {
				t.Fatal(err)
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x, y := sx+dx, sy+dy
					if params.PointInBounds(x, y) && board.IsMine(x, y) {
						t.Errorf("mine at %d:%d next to start %d:%d", x, y, sx, sy)
					}
				}
			}
		}
	}
}

func TestNewBoardRejectsBadParams(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for _, params := range []GameParams{
		{Width: 0, Height: 5, MineCount: 1},
		{Width: 5, Height: 5, MineCount: 26},
		{Width: 5, Height: 5, MineCount: -1},
	} {
		if _, err := NewBoard(params, r); err == nil {
			t.Errorf("params %+v must be rejected", params)
		}
	}

	// A full 3x3 board cannot keep a clear start zone.
	if _, err := NewBoardSafeAt(GameParams{Width: 3, Height: 3, MineCount: 9}, 1, 1, r); err == nil {
		t.Error("expected error when mines cannot avoid the start zone")
	}
}

func TestNearbyMines(t *testing.T) {
	t.Parallel()

	//  - * -
	//  - - *
	//  - - -
	board := &Board{
		GameParams: GameParams{Width: 3, Height: 3, MineCount: 2},
		Grid: []bool{
			false, true, false,
			false, false, true,
			false, false, false,
		},
	}

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 1},
		{1, 0, 1}, /* the square itself is not counted */
		{2, 0, 2},
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{0, 2, 0},
	}
	for _, test := range tests {
		if got := board.NearbyMines(test.x, test.y); got != test.want {
			t.Errorf("NearbyMines(%d, %d) = %d, want %d", test.x, test.y, got, test.want)
		}
	}
}

func TestSeedRoundTrip(t *testing.T) {
	t.Parallel()

	params := GameParams{Width: 30, Height: 16, MineCount: 99}
	parsed, err := ParseSeed(params.Seed())
	if err != nil {
		t.Fatal(err)
	}
	if *parsed != params {
		t.Errorf("parsed %+v, want %+v", *parsed, params)
	}

	if _, err := ParseSeed("not-a-seed"); err == nil {
		t.Error("garbage seed must not parse")
	}
}
