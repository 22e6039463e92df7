package main

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/player"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

type PosParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		gameParams NewGameParams
		posParams  PosParams
	)
	if err := dec.Decode(&gameParams, query); err != nil {
		writeError(w, http.StatusBadRequest, "width, height and mine_count are required")
		return
	}
	if err := dec.Decode(&posParams, query); err != nil {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	params := mines.GameParams(gameParams)
	if !params.PointInBounds(posParams.X, posParams.Y) {
		writeError(w, http.StatusBadRequest, "start point out of bounds")
		return
	}
	game, err := mines.NewGameSafeAt(params, posParams.X, posParams.Y, rnd)
	if err != nil {
		log.Error(err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := player.New(game, rnd)
	start := knowledge.Cell{Row: posParams.Y, Col: posParams.X}
	if _, ok := p.Open(start); !ok {
		writeError(w, http.StatusInternalServerError, "unable to open starting square")
		return
	}

	var playerId *int
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
		refreshPlayerCookies(w, *claims)
	} else {
		log.Debug("creating anonymous session")
	}
	session, err := pg.CreateSession(r.Context(), playerId, p)
	if err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to create session")
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(session, p))
}

func fetchSession(w http.ResponseWriter, r *http.Request) (*GameSession, *player.Player, bool) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, nil, false
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, nil, false
	} else if err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to fetch session")
		return nil, nil, false
	}
	p, err := session.Player(rnd)
	if err != nil {
		log.Error("unable to decode session state: ", err)
		writeError(w, http.StatusInternalServerError, "unable to decode session state")
		return nil, nil, false
	}
	return session, p, true
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, p, ok := fetchSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(session, p))
}

type KnowledgeJSON struct {
	Sentences []knowledge.SentenceView `json:"sentences"`
	Safes     []knowledge.Cell         `json:"safes"`
	Mines     []knowledge.Cell         `json:"mines"`
	MovesMade []knowledge.Cell         `json:"moves_made"`
}

func handleKnowledge(w http.ResponseWriter, r *http.Request) {
	_, p, ok := fetchSession(w, r)
	if !ok {
		return
	}
	a := p.Agent()
	writeJSON(w, http.StatusOK, KnowledgeJSON{
		Sentences: a.Sentences(),
		Safes:     a.Safes(),
		Mines:     a.Mines(),
		MovesMade: a.MovesMade(),
	})
}

type StepJSON struct {
	Move    *player.Move    `json:"move,omitempty"`
	Session GameSessionJSON `json:"session"`
}

func handleStep(w http.ResponseWriter, r *http.Request) {
	session, p, ok := fetchSession(w, r)
	if !ok {
		return
	}
	move, _ := p.Step()
	if err := saveProgress(r, session, p); err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to save session")
		return
	}
	writeJSON(w, http.StatusOK, StepJSON{Move: move, Session: sessionJSON(session, p)})
}

type AutoplayJSON struct {
	Result  player.Result   `json:"result"`
	Session GameSessionJSON `json:"session"`
}

func handleAutoplay(w http.ResponseWriter, r *http.Request) {
	session, p, ok := fetchSession(w, r)
	if !ok {
		return
	}
	result := p.Play(0)
	if err := saveProgress(r, session, p); err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to save session")
		return
	}
	writeJSON(w, http.StatusOK, AutoplayJSON{Result: result, Session: sessionJSON(session, p)})
}

func handleForfeit(w http.ResponseWriter, r *http.Request) {
	session, p, ok := fetchSession(w, r)
	if !ok {
		return
	}
	p.State().Forfeit()
	if err := saveProgress(r, session, p); err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to save session")
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(session, p))
}

// saveProgress persists the session and, the first time the game ends,
// files a record for the leaderboards.
func saveProgress(r *http.Request, session *GameSession, p *player.Player) error {
	justEnded := p.GameOver() && session.EndedAt == nil
	if err := pg.SaveSession(r.Context(), session, p); err != nil {
		return err
	}
	if justEnded {
		guesses := 0
		for _, m := range p.Moves() {
			if m.Random {
				guesses++
			}
		}
		result := player.Result{
			Won:     p.State().Won,
			Dead:    p.State().Dead,
			Moves:   len(p.Moves()),
			Guesses: guesses,
		}
		return pg.CreateRecord(r.Context(), session, p, result)
	}
	return nil
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := pg.GetRecords(r.Context(), 100)
	if err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to fetch records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	records, err := pg.GetPlayerRecords(r.Context(), claims.PlayerId)
	if err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to fetch records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
