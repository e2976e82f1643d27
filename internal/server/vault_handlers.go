package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/patch"
	"github.com/mdvault/mdvaultd/pkg/render"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

// Negotiated content types for note reads.
const (
	mediaMarkdown = "text/markdown"
	mediaNoteJSON = "application/vnd.olrapi.note+json"
	mediaHTML     = "text/html"
)

func (s *Server) handleVaultRead(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		files, err := s.vault.List(r.Context(), "", true)
		if err != nil {
			s.writeVaultError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, files)
		return
	}

	s.serveNote(w, r, path)
}

func (s *Server) handleVaultWrite(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
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

func (s *Server) handleVaultAppend(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
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

func (s *Server) handleVaultPatch(w http.ResponseWriter, r *http.Request) {
	s.patchNote(w, r, r.PathValue("path"))
}

func (s *Server) handleVaultDelete(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	if err := s.vault.Delete(r.Context(), path); err != nil {
		s.writeVaultError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serveNote answers a note read with content negotiation: note JSON
// with stat, rendered HTML, or raw markdown (the default).
func (s *Server) serveNote(w http.ResponseWriter, r *http.Request, path string) {
	accept := r.Header.Get("Accept")

	switch {
	case strings.Contains(accept, mediaNoteJSON):
		note, err := s.vault.Read(r.Context(), path)
		if err != nil {
			s.writeVaultError(w, err)
			return
		}
		stat, err := s.vault.Stat(path)
		if err != nil {
			s.writeVaultError(w, err)
			return
		}
		note.Stat = stat
		writeJSON(w, http.StatusOK, note)

	case strings.Contains(accept, mediaHTML):
		note, err := s.vault.Read(r.Context(), path)
		if err != nil {
			s.writeVaultError(w, err)
			return
		}
		html, err := render.HTML(note.Content)
		if err != nil {
			writeError(w, codeInternal, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, html)

	default:
		raw, err := s.vault.ReadRaw(r.Context(), path)
		if err != nil {
			s.writeVaultError(w, err)
			return
		}
		w.Header().Set("Content-Type", mediaMarkdown+"; charset=utf-8")
		_, _ = io.WriteString(w, raw)
	}
}

// patchNote runs the patch engine against one note under its write
// lock. The operation is driven entirely by request headers.
func (s *Server) patchNote(w http.ResponseWriter, r *http.Request, path string) {
	op, err := patch.ParseOperation(strings.ToLower(r.Header.Get("Operation")))
	if err != nil {
		writeError(w, codeInvalidRequest, err.Error())
		return
	}
	targetType, err := patch.ParseTargetType(strings.ToLower(r.Header.Get("Target-Type")))
	if err != nil {
		writeError(w, codeInvalidRequest, err.Error())
		return
	}
	target := r.Header.Get("Target")
	if target == "" {
		writeError(w, codeInvalidRequest, "missing Target header")
		return
	}

	createIfMissing := false
	if raw := r.Header.Get("Create-Target-If-Missing"); raw != "" {
		createIfMissing, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, codeInvalidRequest, "invalid Create-Target-If-Missing header: "+raw)
			return
		}
	}

	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	logging.FromContext(r.Context()).Debug("applying patch",
		logging.FieldOperation, string(op),
		logging.FieldTargetType, string(targetType),
		logging.FieldTarget, target,
	)

	unlock := s.locks.lock(vault.NormalizePath(path))
	defer unlock()

	original, err := s.vault.ReadRaw(r.Context(), path)
	if err != nil {
		s.writeVaultError(w, err)
		return
	}

	updated, err := patch.Apply(original, op, targetType, target, content, createIfMissing)
	if err != nil {
		s.writePatchError(w, err)
		return
	}

	if err := s.vault.Write(r.Context(), path, updated); err != nil {
		s.writeVaultError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody drains the request body, honoring the size limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, codeBodyTooLarge, "request body exceeds maximum file size")
			return "", false
		}
		writeError(w, codeInvalidRequest, "read request body: "+err.Error())
		return "", false
	}
	return string(body), true
}

func (s *Server) writeVaultError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vault.ErrNotFound):
		writeError(w, codeFileNotFound, err.Error())
	case errors.Is(err, vault.ErrInvalidPath):
		writeError(w, codeInvalidPath, err.Error())
	default:
		writeError(w, codeInternal, err.Error())
	}
}

func (s *Server) writePatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, patch.ErrTargetNotFound):
		writeError(w, codeTargetNotFound, err.Error())
	case errors.Is(err, patch.ErrInvalidTarget):
		writeError(w, codeInvalidTarget, err.Error())
	default:
		writeError(w, codeInvalidRequest, err.Error())
	}
}
