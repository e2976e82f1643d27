// Package commands implements the command registry exposed through the
// API. Commands are named operations over the vault that clients invoke
// by ID with a parameter map.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mdvault/mdvaultd/internal/logging"
	"github.com/mdvault/mdvaultd/pkg/search"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

var (
	// ErrNotFound is returned when no command has the requested ID.
	ErrNotFound = errors.New("command not found")

	// ErrDuplicate is returned when a command ID is registered twice.
	ErrDuplicate = errors.New("command already registered")

	// ErrBadParams is returned when a command is invoked with missing
	// or invalid parameters.
	ErrBadParams = errors.New("invalid command parameters")
)

// Handler executes a command. params is the decoded request body; the
// returned value is serialized as the result.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Info describes a registered command.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type command struct {
	info    Info
	handler Handler
}

// Registry holds the available commands. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]command
	logger   *log.Logger
}

// NewRegistry returns a registry with the built-in vault commands
// registered against the given vault and search engine.
func NewRegistry(v *vault.Manager, engine *search.Engine, logger *log.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Registry{
		commands: make(map[string]command),
		logger:   logger,
	}

	// Built-ins cannot collide on a fresh registry.
	_ = r.Register("vault.list", "List all files", listHandler(v))
	_ = r.Register("vault.create", "Create new file", createHandler(v))
	_ = r.Register("vault.search", "Search vault", searchHandler(engine))

	return r
}

// Register adds a command. Registering an ID twice fails.
func (r *Registry) Register(id, name string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}

	r.commands[id] = command{info: Info{ID: id, Name: name}, handler: handler}
	r.logger.Debug("registered command", logging.FieldCommand, id)
	return nil
}

// List returns all registered commands sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.commands))
	for _, cmd := range r.commands {
		infos = append(infos, cmd.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Execute runs the command with the given ID.
func (r *Registry) Execute(ctx context.Context, id string, params map[string]any) (any, error) {
	r.mu.RLock()
	cmd, ok := r.commands[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.logger.Info("executing command", logging.FieldCommand, id)
	result, err := cmd.handler(ctx, params)
	if err != nil {
		r.logger.Error("command failed", logging.FieldCommand, id, logging.FieldError, err)
		return nil, err
	}
	return result, nil
}

func listHandler(v *vault.Manager) Handler {
	return func(ctx context.Context, _ map[string]any) (any, error) {
		files, err := v.List(ctx, "", true)
		if err != nil {
			return nil, err
		}
		return map[string]any{"files": files}, nil
	}
}

func createHandler(v *vault.Manager) Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		path, _ := params["path"].(string)
		if path == "" {
			return nil, fmt.Errorf("%w: missing required parameter: path", ErrBadParams)
		}
		content, _ := params["content"].(string)

		if err := v.Write(ctx, path, content); err != nil {
			return nil, err
		}
		return map[string]any{"path": path, "created": true}, nil
	}
}

func searchHandler(engine *search.Engine) Handler {
	return func(ctx context.Context, params map[string]any) (any, error) {
		query, _ := params["query"].(string)
		if query == "" {
			return nil, fmt.Errorf("%w: missing required parameter: query", ErrBadParams)
		}

		maxResults := 0
		if raw, ok := params["max_results"]; ok {
			// JSON numbers decode as float64.
			f, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: max_results must be a number", ErrBadParams)
			}
			maxResults = int(f)
		}

		results, err := engine.Simple(ctx, query, maxResults)
		if err != nil {
			return nil, err
		}
		return map[string]any{"results": results, "total": len(results)}, nil
	}
}
