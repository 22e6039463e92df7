package player

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/mines"
)

/*
The knowledge base itself is not serialized. A saved game is the board
plus the ordered move log; restoring replays every observation into a
fresh agent, which lands it in exactly the state the move sequence
implies. Only the random stream is not carried over, so a restored agent
may guess differently than the original would have.
*/
type SavedGame struct {
	State *mines.GameState
	Moves []Move
}

func (p *Player) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	saved := SavedGame{State: p.state, Moves: p.moves}
	if err := gob.NewEncoder(&buf).Encode(saved); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decode(buf []byte, r *rand.Rand) (*Player, error) {
	var saved SavedGame
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&saved); err != nil {
		return nil, err
	}
	return Restore(saved, r)
}

// Restore rebuilds a player by replaying the saved move log over a fresh
// agent.
func Restore(saved SavedGame, r *rand.Rand) (*Player, error) {
	if saved.State == nil || saved.State.Board == nil {
		return nil, fmt.Errorf("saved game has no board")
	}
	p := New(saved.State, r)
	for _, m := range saved.Moves {
		if m.Count >= 0 {
			p.agent.Observe(m.Cell, m.Count)
		}
	}
	p.moves = saved.Moves

	for _, s := range p.agent.Safes() {
		p.queued[s] = true
		if !p.agent.HasPlayed(s) {
			p.pending.PushBack(s)
		}
	}
	return p, nil
}
