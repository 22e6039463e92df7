package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

/*
Board holds the real mine locations. It is built once and never modified
afterwards; the agent only ever reads it through IsMine and NearbyMines.
*/
type Board struct {
	GameParams
	Grid []bool /* real mine points, row-major */
}

// NewBoard places MineCount mines uniformly at random across the whole
// grid.
func NewBoard(params GameParams, r *rand.Rand) (*Board, error) {
	return newBoard(params, -1, -1, r)
}

// NewBoardSafeAt places mines so that none lands on (x, y) or within one
// square of it, guaranteeing the first open reports a zero-risk count.
func NewBoardSafeAt(params GameParams, x, y int, r *rand.Rand) (*Board, error) {
	if !params.PointInBounds(x, y) {
		return nil, fmt.Errorf("start point %d:%d out of bounds", x, y)
	}
	return newBoard(params, x, y, r)
}

func newBoard(params GameParams, startX, startY int, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	width, height, mineCount := params.Unpack()
	grid := make([]bool, width*height)

	/*
	 * Write down the list of possible mine locations, then pick
	 * mineCount off it at random.
	 */
	candidates := make([]int, 0, width*height)
	for y := range height {
		for x := range width {
			if startX < 0 || absDiff(startY, y) > 1 || absDiff(startX, x) > 1 {
				candidates = append(candidates, y*width+x)
			}
		}
	}
	if mineCount > len(candidates) {
		return nil, fmt.Errorf(
			"cannot place %d mines on a %dx%d board with a clear start",
			mineCount, width, height,
		)
	}

	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	Log.WithFields(logrus.Fields{
		"params": params.Seed(),
		"start":  fmt.Sprintf("%d:%d", startX, startY),
	}).Debug("generated board")

	return &Board{GameParams: params, Grid: grid}, nil
}

func (b *Board) IsMine(x, y int) bool {
	return b.Grid[y*b.Width+x]
}

// NearbyMines counts the mines within one row and column of (x, y), not
// including the square itself.
func (b *Board) NearbyMines(x, y int) (count int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < b.Width && 0 <= yy && yy < b.Height &&
				b.Grid[yy*b.Width+xx] {
				count++
			}
		}
	}
	return
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			if b.Grid[y*b.Width+x] {
				fmt.Fprint(&sb, "* ")
			} else {
				fmt.Fprint(&sb, "- ")
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
