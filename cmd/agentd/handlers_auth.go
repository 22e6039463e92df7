package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type PlayerInfo struct {
	Username string `json:"username"`
	PlayerId int    `json:"player_id"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

// handleStatus doubles as the cookie maintenance endpoint: authenticated
// callers get their cookies rolled forward, callers whose cookies failed
// to parse in [authMiddleware] get them cleared.
func handleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		clearPlayerCookies(w)
		writeJSON(w, http.StatusOK, Status{LoggedIn: false})
		return
	}
	refreshPlayerCookies(w, *claims)
	writeJSON(w, http.StatusOK, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{Username: claims.Username, PlayerId: claims.PlayerId},
	})
}

// credentials pulls the username/password pair out of a form body. bcrypt
// refuses passwords over 72 bytes, so that bound is enforced up front.
func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", errors.New("body must be a url-encoded form")
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", errors.New("username and password are required")
	}
	if len(password) > 72 {
		return "", "", errors.New("password must not exceed 72 bytes")
	}
	return username, password, nil
}

// startPlayerSession signs a fresh token pair into the response cookies.
// On failure it has already written the error response.
func startPlayerSession(w http.ResponseWriter, playerId int, username string) bool {
	token, err := createPlayerToken(playerId, username)
	if err != nil {
		log.Error("unable to sign jwt token: ", err)
		writeError(w, http.StatusInternalServerError, "unable to start session")
		return false
	}
	setPlayerCookies(w, token)
	return true
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("unable to hash password: ", err)
		writeError(w, http.StatusInternalServerError, "unable to register")
		return
	}
	registered, err := pg.CreatePlayer(r.Context(), username, hash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		writeError(w, http.StatusConflict, "username is taken")
		return
	} else if err != nil {
		log.Error("unable to insert player: ", err)
		writeError(w, http.StatusInternalServerError, "unable to register")
		return
	}
	if startPlayerSession(w, registered.PlayerId, registered.Username) {
		writeJSON(w, http.StatusCreated, PlayerInfo{
			Username: registered.Username,
			PlayerId: registered.PlayerId,
		})
	}
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	known, err := pg.GetPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		/* the same response as for a wrong password, on purpose */
		writeError(w, http.StatusUnauthorized, "unknown username or wrong password")
		return
	} else if err != nil {
		log.Error("unable to fetch player: ", err)
		writeError(w, http.StatusInternalServerError, "unable to log in")
		return
	}
	if bcrypt.CompareHashAndPassword(known.PasswordHash, []byte(password)) != nil {
		writeError(w, http.StatusUnauthorized, "unknown username or wrong password")
		return
	}
	if startPlayerSession(w, known.PlayerId, known.Username) {
		writeJSON(w, http.StatusOK, PlayerInfo{
			Username: known.Username,
			PlayerId: known.PlayerId,
		})
	}
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	clearPlayerCookies(w)
	writeJSON(w, http.StatusOK, Status{LoggedIn: false})
}
