package server

import "net/http"

// serverStatus is the unauthenticated status payload.
type serverStatus struct {
	OK            string            `json:"ok"`
	Service       string            `json:"service"`
	Authenticated bool              `json:"authenticated"`
	Versions      map[string]string `json:"versions"`
}

// handleStatus reports availability and whether the request carried a
// valid key. This endpoint never requires authentication.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serverStatus{
		OK:            "OK",
		Service:       "mdvaultd",
		Authenticated: s.authenticated(r),
		Versions: map[string]string{
			"self": s.version,
			"api":  apiVersion,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
