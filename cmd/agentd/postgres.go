package main

import (
	"context"
	"embed"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/database"
	"github.com/vancomm/minesweeper-agent/internal/player"
)

type postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(
	ctx context.Context, dbUrl string, migrations embed.FS,
) (*postgres, error) {
	db, err := database.ConnectAndMigrate(ctx, dbUrl, migrations)
	if err != nil {
		return nil, err
	}
	return &postgres{db}, nil
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

type Player struct {
	PlayerId     int
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		},
	).Scan(&playerId); err != nil {
		return nil, err
	}
	return &Player{PlayerId: playerId, Username: username}, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	p := &Player{Username: username}
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, password_hash, created_at
		FROM player
		WHERE username = @username`,
		pgx.NamedArgs{"username": username},
	).Scan(&p.PlayerId, &p.PasswordHash, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (pg *postgres) CreateSession(
	ctx context.Context, playerId *int, p *player.Player,
) (*GameSession, error) {
	state, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	session := &GameSession{PlayerId: playerId, State: state}
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO agent_session (
			player_id, state
		)
		VALUES (
			@player_id, @state
		)
		RETURNING session_id, started_at`,
		pgx.NamedArgs{
			"player_id": playerId,
			"state":     state,
		},
	).Scan(&session.SessionId, &session.StartedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (pg *postgres) GetSession(
	ctx context.Context, sessionId int,
) (*GameSession, error) {
	session := &GameSession{SessionId: sessionId}
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, state, started_at, ended_at
		FROM agent_session
		WHERE session_id = @session_id`,
		pgx.NamedArgs{"session_id": sessionId},
	).Scan(
		&session.PlayerId, &session.State,
		&session.StartedAt, &session.EndedAt,
	); err != nil {
		return nil, err
	}
	return session, nil
}

func (pg *postgres) SaveSession(
	ctx context.Context, session *GameSession, p *player.Player,
) error {
	state, err := p.Bytes()
	if err != nil {
		return err
	}
	session.State = state
	if p.GameOver() && session.EndedAt == nil {
		now := time.Now()
		session.EndedAt = &now
	}
	_, err = pg.db.Exec(ctx, `
		UPDATE agent_session
		SET state = @state, ended_at = @ended_at
		WHERE session_id = @session_id`,
		pgx.NamedArgs{
			"session_id": session.SessionId,
			"state":      state,
			"ended_at":   session.EndedAt,
		},
	)
	return err
}

type GameRecord struct {
	RecordId  int     `json:"record_id"`
	SessionId int     `json:"session_id"`
	Username  *string `json:"username,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MineCount int     `json:"mine_count"`
	Won       bool    `json:"won"`
	Moves     int     `json:"moves"`
	Guesses   int     `json:"guesses"`
	PlayedMs  int64   `json:"played_ms"`
}

func (pg *postgres) CreateRecord(
	ctx context.Context, session *GameSession, p *player.Player,
	result player.Result,
) error {
	playedMs := int64(0)
	if session.EndedAt != nil {
		playedMs = session.EndedAt.Sub(session.StartedAt).Milliseconds()
	}
	params := p.State().Board.GameParams
	_, err := pg.db.Exec(ctx, `
		INSERT INTO game_record (
			session_id, player_id, width, height, mine_count,
			won, moves, guesses, played_ms
		)
		VALUES (
			@session_id, @player_id, @width, @height, @mine_count,
			@won, @moves, @guesses, @played_ms
		)`,
		pgx.NamedArgs{
			"session_id": session.SessionId,
			"player_id":  session.PlayerId,
			"width":      params.Width,
			"height":     params.Height,
			"mine_count": params.MineCount,
			"won":        result.Won,
			"moves":      result.Moves,
			"guesses":    result.Guesses,
			"played_ms":  playedMs,
		},
	)
	return err
}

func (pg *postgres) GetRecords(
	ctx context.Context, limit int,
) ([]GameRecord, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT r.record_id, r.session_id, p.username,
			r.width, r.height, r.mine_count,
			r.won, r.moves, r.guesses, r.played_ms
		FROM game_record r
		LEFT JOIN player p USING (player_id)
		ORDER BY r.created_at DESC
		LIMIT @limit`,
		pgx.NamedArgs{"limit": limit},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (pg *postgres) GetPlayerRecords(
	ctx context.Context, playerId int,
) ([]GameRecord, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT r.record_id, r.session_id, p.username,
			r.width, r.height, r.mine_count,
			r.won, r.moves, r.guesses, r.played_ms
		FROM game_record r
		LEFT JOIN player p USING (player_id)
		WHERE r.player_id = @player_id
		ORDER BY r.created_at DESC`,
		pgx.NamedArgs{"player_id": playerId},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]GameRecord, error) {
	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(
			&r.RecordId, &r.SessionId, &r.Username,
			&r.Width, &r.Height, &r.MineCount,
			&r.Won, &r.Moves, &r.Guesses, &r.PlayedMs,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
