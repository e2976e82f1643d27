package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/periodic"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

// periodicTarget resolves the request's period, offset, and per-period
// configuration. Disabled periods answer 403.
func (s *Server) periodicTarget(w http.ResponseWriter, r *http.Request) (periodic.Period, string, periodic.Config, bool) {
	period, err := periodic.ParsePeriod(r.PathValue("period"))
	if err != nil {
		writeError(w, codeInvalidRequest, err.Error())
		return "", "", periodic.Config{}, false
	}

	pc, ok := s.cfg.PeriodConfig(string(period))
	if !ok || !pc.Enabled {
		writeError(w, codePeriodDisabled, "periodic notes for '"+string(period)+"' are disabled in configuration")
		return "", "", periodic.Config{}, false
	}

	offset := r.URL.Query().Get("offset")
	if offset == "" {
		offset = "today"
	}

	cfg := periodic.Config{
		Enabled:  pc.Enabled,
		Folder:   pc.Folder,
		Template: pc.Template,
	}

	logging.FromContext(r.Context()).Debug("resolved periodic request",
		logging.FieldPeriod, string(period),
		logging.FieldOffset, offset,
		logging.FieldTemplate, cfg.Template,
	)
	return period, offset, cfg, true
}

// periodicPath computes the note path without touching the vault.
func (s *Server) periodicPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	period, offset, cfg, ok := s.periodicTarget(w, r)
	if !ok {
		return "", false
	}

	path, err := s.periodic.NotePath(period, offset, cfg, time.Time{})
	if err != nil {
		if errors.Is(err, periodic.ErrInvalidOffset) {
			writeError(w, codeInvalidRequest, err.Error())
		} else {
			writeError(w, codeInternal, err.Error())
		}
		return "", false
	}
	return path, true
}

// handlePeriodicRead reads the periodic note, creating it from the
// configured template on first access.
func (s *Server) handlePeriodicRead(w http.ResponseWriter, r *http.Request) {
	period, offset, cfg, ok := s.periodicTarget(w, r)
	if !ok {
		return
	}

	path, err := s.periodic.EnsureExists(r.Context(), period, offset, cfg, time.Time{})
	if err != nil {
		if errors.Is(err, periodic.ErrInvalidOffset) {
			writeError(w, codeInvalidRequest, err.Error())
		} else {
			writeError(w, codeInternal, err.Error())
		}
		return
	}

	s.serveNote(w, r, path)
}

func (s *Server) handlePeriodicWrite(w http.ResponseWriter, r *http.Request) {
	path, ok := s.periodicPath(w, r)
	if !ok {
		return
	}
	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	if err := s.vault.Write(r.Context(), path, content); err != nil {
		s.writeVaultError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePeriodicAppend(w http.ResponseWriter, r *http.Request) {
	path, ok := s.periodicPath(w, r)
	if !ok {
		return
	}
	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	if err := s.vault.Append(r.Context(), path, content); err != nil {
		s.writeVaultError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePeriodicPatch(w http.ResponseWriter, r *http.Request) {
	path, ok := s.periodicPath(w, r)
	if !ok {
		return
	}
	s.patchNote(w, r, path)
}

func (s *Server) handlePeriodicDelete(w http.ResponseWriter, r *http.Request) {
	path, ok := s.periodicPath(w, r)
	if !ok {
		return
	}

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	if err := s.vault.Delete(r.Context(), path); err != nil {
		s.writeVaultError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
