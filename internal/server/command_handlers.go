package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mdvault/mdvaultd/internal/commands"
)

type commandListResponse struct {
	Commands []commands.Info `json:"commands"`
}

type commandRequest struct {
	Params map[string]any `json:"params"`
}

type commandResponse struct {
	Result any `json:"result"`
}

func (s *Server) handleCommandList(w http.ResponseWriter, _ *http.Request) {
	if !s.cfg.Commands.Enabled {
		writeError(w, codeCommandsDisabled, "commands are disabled in configuration")
		return
	}
	writeJSON(w, http.StatusOK, commandListResponse{Commands: s.registry.List()})
}

func (s *Server) handleCommandExecute(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Commands.Enabled {
		writeError(w, codeCommandsDisabled, "commands are disabled in configuration")
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, codeInvalidRequest, "invalid command request: "+err.Error())
		return
	}

	result, err := s.registry.Execute(r.Context(), r.PathValue("id"), req.Params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotFound):
			writeError(w, codeCommandError, err.Error())
		case errors.Is(err, commands.ErrBadParams):
			writeError(w, codeInvalidRequest, err.Error())
		default:
			writeError(w, codeInternal, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, commandResponse{Result: result})
}
