package http

import (
	"encoding/json"
	"net/http"
)

type fieldError struct {
	Msg string `json:"msg"`
}

type errorsPayload struct {
	Errors []fieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeErrors emits the {"errors":[{"msg":...}]} failure shape shared by
// validation and domain errors.
func writeErrors(w http.ResponseWriter, statusCode int, msgs ...string) {
	out := errorsPayload{Errors: make([]fieldError, 0, len(msgs))}
	for _, msg := range msgs {
		out.Errors = append(out.Errors, fieldError{Msg: msg})
	}
	writeJSON(w, statusCode, out)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"msg": message})
}

func writeServerError(w http.ResponseWriter) {
	writeErrors(w, http.StatusInternalServerError, "Server Error")
}
