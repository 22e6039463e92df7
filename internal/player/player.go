package player

import (
	"math/rand/v2"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var Log = logrus.New()

// Move is one opened square together with what the board answered.
type Move struct {
	Cell   knowledge.Cell `json:"cell"`
	Count  int            `json:"count"` /* -1 when the square held a mine */
	Random bool           `json:"random"`
}

/*
Player drives one game: it asks the agent for a move, opens the square,
and feeds the board's answer back into the agent's knowledge base. Squares
the agent proves safe are parked on a queue so they get opened in the
order they were discovered, before any guessing happens.
*/
type Player struct {
	agent   *knowledge.Agent
	state   *mines.GameState
	pending deque.Deque[knowledge.Cell]
	queued  map[knowledge.Cell]bool
	moves   []Move
}

func New(state *mines.GameState, r *rand.Rand) *Player {
	return &Player{
		agent:  knowledge.NewAgent(state.Board.Height, state.Board.Width, r),
		state:  state,
		queued: make(map[knowledge.Cell]bool),
	}
}

func (p *Player) Agent() *knowledge.Agent { return p.agent }

func (p *Player) State() *mines.GameState { return p.state }

// Moves returns every move played so far, in order.
func (p *Player) Moves() []Move { return p.moves }

func (p *Player) GameOver() bool { return p.state.Dead || p.state.Won }

/*
Step plays one move: the oldest queued safe square if any, else whatever
the agent can prove safe, else a uniformly random guess. ok is false when
the game is over or the agent has nowhere left to go (every unplayed
square is a known mine).
*/
func (p *Player) Step() (move *Move, ok bool) {
	if p.GameOver() {
		return nil, false
	}

	for p.pending.Len() > 0 {
		c := p.pending.PopFront()
		if !p.agent.HasPlayed(c) {
			return p.play(c, false), true
		}
	}

	if c, ok := p.agent.SafeMove(); ok {
		return p.play(c, false), true
	}
	if c, ok := p.agent.RandomMove(); ok {
		Log.WithField("cell", c).Debug("no safe move, guessing")
		return p.play(c, true), true
	}
	return nil, false
}

// Open plays a caller-chosen square, e.g. the first click of a session.
func (p *Player) Open(c knowledge.Cell) (move *Move, ok bool) {
	if p.GameOver() || p.agent.HasPlayed(c) {
		return nil, false
	}
	return p.play(c, false), true
}

func (p *Player) play(c knowledge.Cell, random bool) *Move {
	count := p.state.OpenCell(c.Col, c.Row)
	if count < 0 && !random {
		// Only reachable when the board's counts were inconsistent with
		// the grid; sound inference never opens a mined square on purpose.
		Log.WithField("cell", c).Error("proven-safe square held a mine")
	}
	move := Move{Cell: c, Count: count, Random: random}
	p.moves = append(p.moves, move)

	if count >= 0 {
		p.agent.Observe(c, count)
		for _, s := range p.agent.Safes() {
			if !p.queued[s] {
				p.queued[s] = true
				p.pending.PushBack(s)
			}
		}
	}
	return &move
}

// Result sums up a finished (or stalled) game.
type Result struct {
	Won     bool `json:"won"`
	Dead    bool `json:"dead"`
	Moves   int  `json:"moves"`
	Guesses int  `json:"guesses"`
	Flagged int  `json:"flagged"`
}

/*
Play steps the game to its end, then flags every square the agent has
proved to be a mine. maxMoves bounds the loop as a safety net; a value
of 0 means the board size is used.
*/
func (p *Player) Play(maxMoves int) Result {
	if maxMoves <= 0 {
		maxMoves = p.state.Board.Width * p.state.Board.Height
	}
	for range maxMoves {
		if _, ok := p.Step(); !ok {
			break
		}
	}
	return p.finish()
}

func (p *Player) finish() Result {
	flagged := 0
	for _, c := range p.agent.Mines() {
		i := c.Row*p.state.Board.Width + c.Col
		if p.state.PlayerGrid[i] == mines.Unknown {
			p.state.FlagCell(c.Col, c.Row)
			flagged++
		}
	}
	guesses := 0
	for _, m := range p.moves {
		if m.Random {
			guesses++
		}
	}
	result := Result{
		Won:     p.state.Won,
		Dead:    p.state.Dead,
		Moves:   len(p.moves),
		Guesses: guesses,
		Flagged: flagged,
	}
	Log.WithFields(logrus.Fields{
		"won":     result.Won,
		"dead":    result.Dead,
		"moves":   result.Moves,
		"guesses": result.Guesses,
	}).Debug("game finished")
	return result
}
