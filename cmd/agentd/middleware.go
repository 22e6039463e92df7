package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"
)

type Middleware func(http.Handler) http.Handler

func useMiddleware(s *http.ServeMux, mws ...Middleware) http.Handler {
	var h http.Handler = s
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func loggingMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Infof("--> %s %s", r.Method, r.URL.String())
		wrapped := &loggingResponseWriter{w, http.StatusOK}
		h.ServeHTTP(wrapped, r)
		code := wrapped.statusCode
		log.Infof("<-- %d %s", code, http.StatusText(code))
	})
}

func corsMiddleware(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
	}).Handler(h)
}

type contextKey int

const ctxPlayerClaims contextKey = iota

// authMiddleware parses auth cookies when present and stores the claims in
// the request context. Requests without valid cookies proceed anonymously.
func authMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := parsePlayerClaims(r); err == nil {
			ctx := context.WithValue(r.Context(), ctxPlayerClaims, claims)
			r = r.WithContext(ctx)
		}
		h.ServeHTTP(w, r)
	})
}
