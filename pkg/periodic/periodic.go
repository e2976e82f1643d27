// Package periodic generates and creates date-based notes: daily,
// weekly, monthly, quarterly, and yearly.
package periodic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mdvault/mdvaultd/pkg/fsutil"
	"github.com/mdvault/mdvaultd/pkg/vault"
)

// Period is a periodic note cadence.
type Period string

// Supported periods.
const (
	Daily     Period = "daily"
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

// ErrInvalidPeriod indicates an unknown period name.
var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod validates a wire-format period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// Config describes one period's note placement.
type Config struct {
	Enabled  bool
	Folder   string
	Template string
}

// Manager resolves periodic note paths and creates missing notes from
// templates.
type Manager struct {
	vault  *vault.Manager
	logger *log.Logger
	now    func() time.Time
}

// New creates a Manager. A nil logger falls back to the package default.
func New(v *vault.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{vault: v, logger: logger, now: time.Now}
}

// NotePath returns the vault-relative path of the periodic note for the
// given offset. A zero base date means now.
func (m *Manager) NotePath(period Period, offset string, cfg Config, base time.Time) (string, error) {
	n, err := ParseOffset(offset)
	if err != nil {
		return "", err
	}
	if base.IsZero() {
		base = m.now()
	}

	target := applyOffset(period, base, n)
	folder := strings.Trim(cfg.Folder, "/")
	name := noteName(period, target) + ".md"

	path := name
	if folder != "" {
		path = folder + "/" + name
	}

	m.logger.Debug("resolved periodic note path", "period", string(period), "offset", offset, "path", path)
	return path, nil
}

// EnsureExists resolves the note path and creates the note when it is
// missing, filling it from the configured template. It returns the
// vault-relative path.
func (m *Manager) EnsureExists(ctx context.Context, period Period, offset string, cfg Config, base time.Time) (string, error) {
	path, err := m.NotePath(period, offset, cfg, base)
	if err != nil {
		return "", err
	}

	exists, err := m.vault.Exists(path)
	if err != nil {
		return "", err
	}
	if exists {
		return path, nil
	}

	content, err := m.renderTemplate(ctx, cfg.Template)
	if err != nil {
		return "", err
	}

	if err := m.vault.Write(ctx, path, content); err != nil {
		return "", fmt.Errorf("create periodic note %s: %w", path, err)
	}

	m.logger.Info("created periodic note", "period", string(period), "path", path)
	return path, nil
}

// renderTemplate loads a template from the vault and substitutes
// {{date}} and {{time}}. No template, or a missing one, yields an empty
// note.
func (m *Manager) renderTemplate(ctx context.Context, template string) (string, error) {
	if template == "" {
		return "", nil
	}

	full, err := m.vault.ResolvePath(template)
	if err != nil {
		return "", err
	}

	raw, _, err := fsutil.ReadFile(ctx, full)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			m.logger.Warn("template file not found", "template", template)
			return "", nil
		}
		return "", fmt.Errorf("read template %s: %w", template, err)
	}

	now := m.now()
	content := strings.ReplaceAll(string(raw), "{{date}}", now.Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{time}}", now.Format("15:04"))
	return content, nil
}
