package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdvault/mdvaultd/internal/server"
	"github.com/mdvault/mdvaultd/pkg/config"
)

const testAPIKey = "test-api-key"

func newTestServer(t *testing.T, mutate func(*config.Config)) http.Handler {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Vault.Path = t.TempDir()
	cfg.Server.HTTPS = false
	cfg.Security.APIKey = testAPIKey
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := server.New(cfg, nil, "test")
	require.NoError(t, err)
	return srv.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()

	var payload struct {
		ErrorCode int    `json:"errorCode"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.ErrorCode
}

func TestStatusAndHealth(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)

	t.Run("status without auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var status struct {
			OK            string            `json:"ok"`
			Service       string            `json:"service"`
			Authenticated bool              `json:"authenticated"`
			Versions      map[string]string `json:"versions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "OK", status.OK)
		assert.Equal(t, "mdvaultd", status.Service)
		assert.False(t, status.Authenticated)
		assert.Equal(t, "test", status.Versions["self"])
	})

	t.Run("status reports authentication", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	})

	t.Run("health without auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuth(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/vault/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 40100, decodeError(t, rec))
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/vault/", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bare key without Bearer prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/vault/", nil)
		req.Header.Set("Authorization", testAPIKey)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestVaultCRUD(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)
	note := "---\ntitle: Test\ntags:\n  - journal\n---\n# Hello\n\nBody with #inline tag.\n"

	rec := doRequest(t, handler, http.MethodPut, "/vault/notes/test.md", note, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("read markdown", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/notes/test.md", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
		assert.Equal(t, note, rec.Body.String())
	})

	t.Run("read note JSON", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/notes/test.md", "", map[string]string{
			"Accept": "application/vnd.olrapi.note+json",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Path        string         `json:"path"`
			Content     string         `json:"content"`
			Frontmatter map[string]any `json:"frontmatter"`
			Tags        []string       `json:"tags"`
			Stat        struct {
				MTime int64 `json:"mtime"`
				Size  int64 `json:"size"`
			} `json:"stat"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "notes/test.md", body.Path)
		assert.Equal(t, "Test", body.Frontmatter["title"])
		assert.Contains(t, body.Tags, "journal")
		assert.Contains(t, body.Tags, "#inline")
		assert.Positive(t, body.Stat.Size)
		assert.Contains(t, body.Content, "# Hello")
	})

	t.Run("read HTML", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/notes/test.md", "", map[string]string{
			"Accept": "text/html",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Hello</h1>")
	})

	t.Run("list", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var files []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
		assert.Equal(t, []string{"notes/test.md"}, files)
	})

	t.Run("append", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/vault/notes/test.md", "Appended.\n", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/vault/notes/test.md", "", nil)
		assert.True(t, strings.HasSuffix(rec.Body.String(), "Appended.\n"))
	})

	t.Run("append to missing file", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/vault/missing.md", "x", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 40401, decodeError(t, rec))
	})

	t.Run("read missing file", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/missing.md", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/vault/..%2F..%2Fetc%2Fpasswd", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 40001, decodeError(t, rec))
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/vault/doomed.md", "x", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodDelete, "/vault/doomed.md", "", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodDelete, "/vault/doomed.md", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVaultPatch(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)
	doc := "# Main\n\nIntro.\n\n## Tasks\n\n- one\n"
	rec := doRequest(t, handler, http.MethodPut, "/vault/patch.md", doc, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("append under heading", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/patch.md", "- two", map[string]string{
			"Operation":   "append",
			"Target-Type": "heading",
			"Target":      "Main::Tasks",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/vault/patch.md", "", nil)
		body := rec.Body.String()
		assert.Contains(t, body, "- two")
		assert.Less(t, strings.Index(body, "- one"), strings.Index(body, "- two"))
	})

	t.Run("missing target", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/patch.md", "x", map[string]string{
			"Operation":   "append",
			"Target-Type": "heading",
			"Target":      "Nonexistent",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 40402, decodeError(t, rec))
	})

	t.Run("create missing target", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/patch.md", "Fresh content.", map[string]string{
			"Operation":                "append",
			"Target-Type":              "heading",
			"Target":                   "Notes",
			"Create-Target-If-Missing": "true",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/vault/patch.md", "", nil)
		assert.Contains(t, rec.Body.String(), "# Notes")
		assert.Contains(t, rec.Body.String(), "Fresh content.")
	})

	t.Run("invalid operation", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/patch.md", "x", map[string]string{
			"Operation":   "bogus",
			"Target-Type": "heading",
			"Target":      "Main",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("frontmatter prepend rejected", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/patch.md", "x", map[string]string{
			"Operation":   "prepend",
			"Target-Type": "frontmatter",
			"Target":      "status",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 40002, decodeError(t, rec))
	})

	t.Run("patch missing file", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPatch, "/vault/nothing.md", "x", map[string]string{
			"Operation":   "append",
			"Target-Type": "heading",
			"Target":      "Main",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 40401, decodeError(t, rec))
	})
}

func TestActiveFile(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)
	session := map[string]string{"Mdvault-Session": "session-1"}

	rec := doRequest(t, handler, http.MethodPut, "/vault/current.md", "# Current\n", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("no active file yet", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/active/", "", session)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 40404, decodeError(t, rec))
	})

	t.Run("open missing file", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/open/missing.md", "", session)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	rec = doRequest(t, handler, http.MethodPost, "/open/current.md", "", session)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("read active", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/active/", "", session)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "# Current\n", rec.Body.String())
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/active/", "", map[string]string{
			"Mdvault-Session": "session-2",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("write and append active", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/active/", "# Replaced\n", session)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodPost, "/active/", "More.\n", session)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/active/", "", session)
		assert.Equal(t, "# Replaced\nMore.\n", rec.Body.String())
	})

	t.Run("patch active", func(t *testing.T) {
		headers := map[string]string{
			"Mdvault-Session": "session-1",
			"Operation":       "append",
			"Target-Type":     "heading",
			"Target":          "Replaced",
		}
		rec := doRequest(t, handler, http.MethodPatch, "/active/", "Patched.", headers)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/active/", "", session)
		assert.Contains(t, rec.Body.String(), "Patched.")
	})

	t.Run("delete active clears session", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/active/", "", session)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/active/", "", session)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestActiveDefaultFile(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, func(cfg *config.Config) {
		cfg.ActiveFile.DefaultFile = "inbox.md"
	})

	rec := doRequest(t, handler, http.MethodPut, "/vault/inbox.md", "# Inbox\n", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/active/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Inbox\n", rec.Body.String())
}

func TestPeriodic(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)
	today := time.Now().Format("2006-01-02")

	t.Run("GET auto-creates daily note", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/periodic/daily", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/vault/", "", nil)
		assert.Contains(t, rec.Body.String(), fmt.Sprintf("daily/%s.md", today))
	})

	t.Run("append and read back", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/periodic/daily", "Log entry.\n", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/periodic/daily", "", nil)
		assert.Contains(t, rec.Body.String(), "Log entry.")
	})

	t.Run("offset", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/periodic/daily?offset=-1", "# Yesterday\n", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/periodic/daily?offset=-1", "", nil)
		assert.Equal(t, "# Yesterday\n", rec.Body.String())
	})

	t.Run("invalid offset", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/periodic/daily?offset=next", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid period", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/periodic/hourly", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/periodic/daily?offset=-1", "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPeriodicDisabled(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, func(cfg *config.Config) {
		cfg.PeriodicNotes.Weekly.Enabled = false
	})

	rec := doRequest(t, handler, http.MethodGet, "/periodic/weekly", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 40300, decodeError(t, rec))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)

	put := func(path, content string) {
		rec := doRequest(t, handler, http.MethodPut, "/vault/"+path, content, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	put("a.md", "golang golang golang\n")
	put("b.md", "golang once\n")
	put("c.md", "---\nstatus: draft\npriority: 2\n---\nnothing\n")

	t.Run("simple search sorted by matches", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/simple/", `{"query":"golang"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Results []struct {
				Path    string `json:"path"`
				Matches int    `json:"matches"`
			} `json:"results"`
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, 2, body.Total)
		assert.Equal(t, "a.md", body.Results[0].Path)
		assert.Equal(t, 3, body.Results[0].Matches)
	})

	t.Run("simple search empty query", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/simple/", `{"query":"  "}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("simple search max_results", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/simple/", `{"query":"golang","max_results":1}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":1`)
	})

	t.Run("filter search equality", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/", `{"query":{"status":"draft"}}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "c.md")
	})

	t.Run("filter search numeric equality", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/", `{"query":{"priority":2}}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "c.md")
	})

	t.Run("filter search regex", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/", `{"query":{"status":{"$regex":"^DRA"}}}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "c.md")
	})

	t.Run("filter search empty query", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/search/", `{"query":{}}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCommands(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/commands/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "vault.list")
		assert.Contains(t, rec.Body.String(), "vault.create")
		assert.Contains(t, rec.Body.String(), "vault.search")
	})

	t.Run("execute vault.create", func(t *testing.T) {
		body := `{"params":{"path":"made.md","content":"# Made\n"}}`
		rec := doRequest(t, handler, http.MethodPost, "/commands/vault.create", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"created":true`)

		rec = doRequest(t, handler, http.MethodGet, "/vault/made.md", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("execute unknown command", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/commands/vault.nuke", `{}`, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 40403, decodeError(t, rec))
	})

	t.Run("execute with bad params", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/commands/vault.create", `{"params":{}}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body allowed", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/commands/vault.list", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCommandsDisabled(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Commands.Enabled = false
	})

	rec := doRequest(t, handler, http.MethodGet, "/commands/", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 40301, decodeError(t, rec))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Performance.MaxFileSize = 16
	})

	rec := doRequest(t, handler, http.MethodPut, "/vault/big.md", strings.Repeat("x", 64), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 40003, decodeError(t, rec))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/vault/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestScopedLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cfg := config.NewConfig()
	cfg.Vault.Path = t.TempDir()
	cfg.Server.HTTPS = false
	cfg.Security.APIKey = testAPIKey

	srv, err := server.New(cfg, logger, "test")
	require.NoError(t, err)
	handler := srv.Handler()

	rec := doRequest(t, handler, http.MethodPut, "/vault/log.md", "# Top\n\nBody.\n", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("patch fields reach the request logger", func(t *testing.T) {
		buf.Reset()
		rec := doRequest(t, handler, http.MethodPatch, "/vault/log.md", "- entry\n", map[string]string{
			"Operation":   "append",
			"Target-Type": "heading",
			"Target":      "Top",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		out := buf.String()
		assert.Contains(t, out, "operation=append")
		assert.Contains(t, out, "target_type=heading")
		assert.Contains(t, out, "target=Top")
		assert.Contains(t, out, "method=PATCH")
		assert.Contains(t, out, "path=/vault/log.md")
	})

	t.Run("periodic fields reach the request logger", func(t *testing.T) {
		buf.Reset()
		rec := doRequest(t, handler, http.MethodGet, "/periodic/daily", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		out := buf.String()
		assert.Contains(t, out, "period=daily")
		assert.Contains(t, out, "offset=today")
	})

	t.Run("request line carries the final status", func(t *testing.T) {
		buf.Reset()
		rec := doRequest(t, handler, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Contains(t, buf.String(), "status=200")
	})
}
