package server

import (
	"encoding/json"
	"net/http"
)

// API error codes: HTTP status times 100 plus a discriminator, so
// clients can tell apart failures that share a status.
const (
	codeInvalidRequest   = 40000
	codeInvalidPath      = 40001
	codeInvalidTarget    = 40002
	codeBodyTooLarge     = 40003
	codeUnauthorized     = 40100
	codePeriodDisabled   = 40300
	codeCommandsDisabled = 40301
	codeNotFound         = 40400
	codeFileNotFound     = 40401
	codeTargetNotFound   = 40402
	codeCommandError     = 40403
	codeNoActiveFile     = 40404
	codeInternal         = 50000
)

// apiError is the JSON error payload.
type apiError struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code/100, apiError{ErrorCode: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
