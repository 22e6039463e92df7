package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

/*
GameState couples a Board with the player-facing grid. Squares are opened
one at a time; the caller (normally the agent's driving loop) decides which
square to open next and receives the square's mine count in return.
*/
type GameState struct {
	Dead, Won  bool
	Board      *Board
	PlayerGrid Grid /* player knowledge */
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame builds a fresh game over a randomly mined board.
func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	board, err := NewBoard(params, r)
	if err != nil {
		return nil, err
	}
	return newGame(board), nil
}

// NewGameSafeAt builds a fresh game whose first open at (x, y) is
// guaranteed not to hit a mine.
func NewGameSafeAt(params GameParams, x, y int, r *rand.Rand) (*GameState, error) {
	board, err := NewBoardSafeAt(params, x, y, r)
	if err != nil {
		return nil, err
	}
	return newGame(board), nil
}

func newGame(board *Board) *GameState {
	playerGrid := make(Grid, len(board.Grid))
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}
	return &GameState{Board: board, PlayerGrid: playerGrid}
}

/*
OpenCell opens a single square. It returns the square's surrounding mine
count, or -1 when the square held a mine, in which case the game is lost
and only the fatal mine is exposed (so an Undo layer could carry on).
Opening an already-open square just reports its count again.
*/
func (s *GameState) OpenCell(x, y int) int {
	i := y*s.Board.Width + x
	if s.Board.Grid[i] {
		s.Dead = true
		s.PlayerGrid[i] = ExplodedMine
		return -1
	}

	count := s.Board.NearbyMines(x, y)
	s.PlayerGrid[i] = CellState(count)

	if s.Dead {
		/* If the player has already lost, don't let them win as well. */
		return count
	}

	/*
	 * Scan the grid and see if exactly as many squares are still covered
	 * as there are mines. If so the game is won; fill in mine markers on
	 * the covered squares.
	 */
	ncovered := 0
	for _, c := range s.PlayerGrid {
		if c < 0 {
			ncovered++
		}
	}
	if ncovered == s.Board.MineCount {
		for i, c := range s.PlayerGrid {
			if c == Unknown {
				s.PlayerGrid[i] = UnflaggedMine
			}
		}
		s.Won = true
	}

	return count
}

// FlagCell toggles a flag on a covered square.
func (s *GameState) FlagCell(x, y int) {
	i := y*s.Board.Width + x
	if s.PlayerGrid[i] == Unknown {
		s.PlayerGrid[i] = Flagged
	} else if s.PlayerGrid[i] == Flagged {
		s.PlayerGrid[i] = Unknown
	}
}

// AllMinesFlagged reports whether every mine carries a flag and no flag
// sits on a clear square.
func (s *GameState) AllMinesFlagged() bool {
	for i, mined := range s.Board.Grid {
		flagged := s.PlayerGrid[i] == Flagged
		if mined != flagged {
			return false
		}
	}
	return true
}

// Forfeit ends the game as lost (unless already decided) and reveals the
// whole grid.
func (s *GameState) Forfeit() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	s.RevealMines()
}

// RevealMines rewrites the player grid with the ground truth: flags are
// graded, covered mines exposed, covered clear squares opened.
func (s *GameState) RevealMines() {
	for i := range s.Board.Grid {
		if s.PlayerGrid[i] == Flagged {
			if s.Board.Grid[i] {
				s.PlayerGrid[i] = CorrectlyFlagged
			} else {
				s.PlayerGrid[i] = FalselyFlagged
			}
		} else if s.PlayerGrid[i] == Unknown {
			if s.Board.Grid[i] {
				s.PlayerGrid[i] = UnflaggedMine
			} else {
				x := i % s.Board.Width
				y := i / s.Board.Width
				s.PlayerGrid[i] = CellState(s.Board.NearbyMines(x, y))
			}
		}
	}
}
