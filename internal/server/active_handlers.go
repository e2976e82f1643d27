package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/mdvault/mdvaultd/internal/active"
	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

// Session identification: header takes precedence over the cookie.
const (
	sessionHeader = "Mdvault-Session"
	sessionCookie = "mdvault_session"
)

// sessionCookieMaxAge keeps the session cookie for 30 days.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// sessionID extracts the client session, or "" for anonymous clients.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(sessionHeader); id != "" {
		return id
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return active.DefaultSession
	}
	return hex.EncodeToString(buf)
}

// handleOpen sets the active file for the session. The file must exist.
// Anonymous clients get a generated session delivered via cookie.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	path := vault.NormalizePath(r.PathValue("path"))

	exists, err := s.vault.Exists(path)
	if err != nil {
		s.writeVaultError(w, err)
		return
	}
	if !exists {
		writeError(w, codeFileNotFound, "file not found in vault: "+path)
		return
	}

	session := sessionID(r)
	if session == "" {
		session = newSessionID()
	}
	s.active.Set(session, path)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionCookieMaxAge,
	})

	s.logger.Info("set active file",
		logging.FieldSession, session,
		logging.FieldPath, path,
	)
	w.WriteHeader(http.StatusNoContent)
}

// activePath resolves the session's active file, answering 404 when
// nothing is active and no default file is configured.
func (s *Server) activePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	path, err := s.active.Get(sessionID(r))
	if err != nil {
		if errors.Is(err, active.ErrNoActiveFile) {
			writeError(w, codeNoActiveFile, "no active file set for this session; use POST /open/{path} first")
			return "", false
		}
		writeError(w, codeInternal, err.Error())
		return "", false
	}
	return path, true
}

func (s *Server) handleActiveRead(w http.ResponseWriter, r *http.Request) {
	path, ok := s.activePath(w, r)
	if !ok {
		return
	}
	s.serveNote(w, r, path)
}

func (s *Server) handleActiveWrite(w http.ResponseWriter, r *http.Request) {
	path, ok := s.activePath(w, r)
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

func (s *Server) handleActiveAppend(w http.ResponseWriter, r *http.Request) {
	path, ok := s.activePath(w, r)
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

func (s *Server) handleActivePatch(w http.ResponseWriter, r *http.Request) {
	path, ok := s.activePath(w, r)
	if !ok {
		return
	}
	s.patchNote(w, r, path)
}

func (s *Server) handleActiveDelete(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	path, ok := s.activePath(w, r)
	if !ok {
		return
	}

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	if err := s.vault.Delete(r.Context(), path); err != nil {
		s.writeVaultError(w, err)
		return
	}
	s.active.Clear(session)
	w.WriteHeader(http.StatusNoContent)
}
