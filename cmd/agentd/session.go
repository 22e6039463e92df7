package main

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/player"
)

type GameSession struct {
	SessionId int
	PlayerId  *int
	State     []byte /* gob of player.SavedGame */
	StartedAt time.Time
	EndedAt   *time.Time
}

// Player decodes the session's saved game into a live player.
func (s *GameSession) Player(r *rand.Rand) (*player.Player, error) {
	return player.Decode(s.State, r)
}

type GameSessionJSON struct {
	SessionId  string     `json:"session_id"`
	Grid       mines.Grid `json:"grid"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	MineCount  int        `json:"mine_count"`
	Dead       bool       `json:"dead"`
	Won        bool       `json:"won"`
	Moves      int        `json:"moves"`
	KnownMines int        `json:"known_mines"`
	KnownSafes int        `json:"known_safes"`
	StartedAt  int64      `json:"started_at"`
	EndedAt    *int64     `json:"ended_at,omitempty"`
}

func sessionJSON(s *GameSession, p *player.Player) GameSessionJSON {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	state := p.State()
	return GameSessionJSON{
		SessionId:  strconv.Itoa(s.SessionId),
		Grid:       state.PlayerGrid,
		Width:      state.Board.Width,
		Height:     state.Board.Height,
		MineCount:  state.Board.MineCount,
		Dead:       state.Dead,
		Won:        state.Won,
		Moves:      len(p.Moves()),
		KnownMines: len(p.Agent().Mines()),
		KnownSafes: len(p.Agent().Safes()),
		StartedAt:  s.StartedAt.UnixMilli(),
		EndedAt:    endedAt,
	}
}
