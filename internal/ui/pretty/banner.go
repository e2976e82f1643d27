package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// maxRuleWidth caps the horizontal rule under the banner.
const maxRuleWidth = 60

// Width returns the terminal width of w, or fallback when w is not a
// terminal.
func Width(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

// Rule renders a dim horizontal rule sized to the writer's terminal.
func Rule(s *Styles, w io.Writer) string {
	width := Width(w, maxRuleWidth)
	if width > maxRuleWidth {
		width = maxRuleWidth
	}
	return s.Dim.Render(strings.Repeat("─", width)) + "\n"
}

// BannerInfo holds the values shown in the startup banner.
type BannerInfo struct {
	Version   string
	Addr      string
	HTTPS     bool
	VaultPath string
	ConfigVia string
}

// Banner renders the startup banner shown when the server begins
// listening.
func Banner(s *Styles, info BannerInfo) string {
	scheme := "http"
	if info.HTTPS {
		scheme = "https"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.Title.Render("mdvaultd"), s.Dim.Render(info.Version))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("listening:"), s.URL.Render(scheme+"://"+info.Addr))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("vault:"), s.Value.Render(info.VaultPath))
	if info.ConfigVia != "" {
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render("config:"), s.Value.Render(info.ConfigVia))
	}
	return b.String()
}

// APIKeyNotice renders a generated API key with instructions to save it.
func APIKeyNotice(s *Styles, key string) string {
	var b strings.Builder
	b.WriteString(s.Warning.Render("No API key configured; generated one for this run.") + "\n")
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("api key:"), s.Key.Render(key))
	b.WriteString(s.Dim.Render("Save it under security.api_key (or MDVAULT_SECURITY__API_KEY) to keep it stable.") + "\n")
	return b.String()
}

// KeygenOutput renders the result of the keygen command.
func KeygenOutput(s *Styles, key string) string {
	var b strings.Builder
	b.WriteString(s.Success.Render("Generated API key") + "\n")
	b.WriteString(s.Key.Render(key) + "\n")
	return b.String()
}
