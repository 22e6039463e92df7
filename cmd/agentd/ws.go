package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

func handleWatchWs(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	} else if err != nil {
		log.Error(err)
		writeError(w, http.StatusInternalServerError, "unable to fetch session")
		return
	}
	p, err := session.Player(rnd)
	if err != nil {
		log.Error("unable to decode session state: ", err)
		writeError(w, http.StatusInternalServerError, "unable to decode session state")
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)
		for _, line := range strings.Split(text, "\n") {
			if err := executeCommand(c, session, p, line); err != nil {
				log.Error("command: ", err)
				return
			}
		}
		if err := saveProgress(r, session, p); err != nil {
			log.Error("unable to save session: ", err)
			return
		}
	}
}
