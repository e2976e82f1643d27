package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/search"
)

type simpleSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type filterSearchRequest struct {
	Query      map[string]any `json:"query"`
	MaxResults int            `json:"max_results"`
}

type searchResponse struct {
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

func (s *Server) handleSimpleSearch(w http.ResponseWriter, r *http.Request) {
	var req simpleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, codeInvalidRequest, "invalid search request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, codeInvalidRequest, "query string cannot be empty")
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.Search.MaxResults
	}

	results, err := s.search.Simple(r.Context(), req.Query, maxResults)
	if err != nil {
		writeError(w, codeInternal, err.Error())
		return
	}

	s.logger.Info("simple search",
		logging.FieldQuery, req.Query,
		logging.FieldResults, len(results),
	)
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Total: len(results)})
}

func (s *Server) handleFilterSearch(w http.ResponseWriter, r *http.Request) {
	var req filterSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, codeInvalidRequest, "invalid search request: "+err.Error())
		return
	}
	if len(req.Query) == 0 {
		writeError(w, codeInvalidRequest, "query object cannot be empty")
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.Search.MaxResults
	}

	results, err := s.search.Filter(r.Context(), req.Query, maxResults)
	if err != nil {
		writeError(w, codeInternal, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Results: results, Total: len(results)})
}
