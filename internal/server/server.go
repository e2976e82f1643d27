// Package server implements the REST API over the markdown vault:
// file operations, the patch engine, periodic notes, search, active
// file tracking, and the command registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mdvault/mdvaultd/internal/active"
	"github.com/mdvault/mdvaultd/internal/certs"
	"github.com/mdvault/mdvaultd/internal/commands"
	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/config"
	"github.com/mdvault/mdvaultd/pkg/periodic"
	"github.com/mdvault/mdvaultd/pkg/search"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

// apiVersion is the version of the HTTP API contract.
const apiVersion = "1.0"

// shutdownTimeout bounds graceful shutdown after the context ends.
const shutdownTimeout = 10 * time.Second

// Server wires the vault components behind the HTTP API.
type Server struct {
	cfg      *config.Config
	vault    *vault.Manager
	search   *search.Engine
	periodic *periodic.Manager
	active   *active.Tracker
	registry *commands.Registry
	logger   *log.Logger
	locks    *pathLocks
	version  string
	watcher  *vault.Watcher
}

// New builds a Server from the validated configuration. version is the
// build version reported by the status endpoint.
func New(cfg *config.Config, logger *log.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	v, err := vault.New(cfg.Vault.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	logger.Debug("vault opened", logging.FieldVault, cfg.Vault.Path)

	engine := search.New(v, logger)

	s := &Server{
		cfg:      cfg,
		vault:    v,
		search:   engine,
		periodic: periodic.New(v, logger),
		active:   active.NewTracker(cfg.ActiveFile.DefaultFile),
		registry: commands.NewRegistry(v, engine, logger),
		logger:   logger,
		locks:    newPathLocks(),
		version:  version,
	}

	if cfg.Vault.WatchFiles {
		watcher, err := vault.NewWatcher(v, func(path string) {
			logger.Debug("vault file changed", logging.FieldPath, path)
		})
		if err != nil {
			return nil, fmt.Errorf("start watcher: %w", err)
		}
		s.watcher = watcher
	}

	return s, nil
}

// Handler returns the complete HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /vault/{path...}", s.handleVaultRead)
	mux.HandleFunc("PUT /vault/{path...}", s.handleVaultWrite)
	mux.HandleFunc("POST /vault/{path...}", s.handleVaultAppend)
	mux.HandleFunc("PATCH /vault/{path...}", s.handleVaultPatch)
	mux.HandleFunc("DELETE /vault/{path...}", s.handleVaultDelete)

	mux.HandleFunc("POST /open/{path...}", s.handleOpen)
	mux.HandleFunc("GET /active/", s.handleActiveRead)
	mux.HandleFunc("PUT /active/", s.handleActiveWrite)
	mux.HandleFunc("POST /active/", s.handleActiveAppend)
	mux.HandleFunc("PATCH /active/", s.handleActivePatch)
	mux.HandleFunc("DELETE /active/", s.handleActiveDelete)

	mux.HandleFunc("GET /periodic/{period}", s.handlePeriodicRead)
	mux.HandleFunc("PUT /periodic/{period}", s.handlePeriodicWrite)
	mux.HandleFunc("POST /periodic/{period}", s.handlePeriodicAppend)
	mux.HandleFunc("PATCH /periodic/{period}", s.handlePeriodicPatch)
	mux.HandleFunc("DELETE /periodic/{period}", s.handlePeriodicDelete)

	mux.HandleFunc("POST /search/simple/", s.handleSimpleSearch)
	mux.HandleFunc("POST /search/", s.handleFilterSearch)

	mux.HandleFunc("GET /commands/", s.handleCommandList)
	mux.HandleFunc("POST /commands/{id}", s.handleCommandExecute)

	var handler http.Handler = mux
	handler = s.withBodyLimit(handler)
	handler = s.withAuth(handler)
	handler = withCORS(handler)
	handler = s.withRequestLog(handler)
	return handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
// With HTTPS enabled and auto_generate_cert on, missing certificate
// material is generated first.
func (s *Server) Run(ctx context.Context) error {
	if s.watcher != nil {
		go s.watcher.Run(ctx)
		defer s.watcher.Close()
	}

	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if s.cfg.Server.HTTPS {
			sec := s.cfg.Security
			if sec.AutoGenerateCert {
				generated, err := certs.EnsureCertificate(sec.CertPath, sec.KeyPath, s.cfg.Server.Host)
				if err != nil {
					errCh <- err
					return
				}
				if generated {
					s.logger.Info("generated self-signed certificate", logging.FieldPath, sec.CertPath)
				}
			}
			s.logger.Info("listening", "addr", httpServer.Addr, "https", true)
			errCh <- httpServer.ListenAndServeTLS(sec.CertPath, sec.KeyPath)
			return
		}
		s.logger.Info("listening", "addr", httpServer.Addr, "https", false)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
