package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)

	mux.HandleFunc("GET /v1/status", handleStatus)
	mux.HandleFunc("GET /v1/records", handleGetRecords)
	mux.HandleFunc("GET /v1/myrecords", handleGetOwnRecords)

	mux.HandleFunc("POST /v1/game", handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", handleGetGame)
	mux.HandleFunc("GET /v1/game/{id}/knowledge", handleKnowledge)
	mux.HandleFunc("POST /v1/game/{id}/step", handleStep)
	mux.HandleFunc("POST /v1/game/{id}/autoplay", handleAutoplay)
	mux.HandleFunc("POST /v1/game/{id}/forfeit", handleForfeit)

	mux.HandleFunc("/v1/game/{id}/watch", handleWatchWs)

	handler := useMiddleware(mux,
		corsMiddleware,
		authMiddleware,
		loggingMiddleware,
	)

	return handler
}
