package main

import (
	"encoding/json"
	"net/http"
)

/*
writeJSON renders every body the service produces, success and error
alike, so handlers never touch the encoder or the response status
directly. A marshal failure degrades to a plain 500; there is nothing
sensible a handler could add at that point.
*/
func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error("unable to marshal response: ", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.Error("unable to write response: ", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError sends a JSON error body so that clients can treat every
// non-2xx response uniformly.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
