package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/banksim/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors for the terminal. The layout comes from
// errors.TextFormatter; the renderer only adds color.
type ErrorRenderer struct {
	text *errors.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	var opts []errors.TextFormatterOption
	if source != nil {
		opts = append(opts, errors.WithSource(source))
	}
	return &ErrorRenderer{text: errors.NewTextFormatter(nil, opts...)}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	lines := strings.Split(r.text.Format(err), "\n")

	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = errorStyle.Render(line)
		case strings.TrimSpace(line) == "^":
			lines[i] = strings.TrimSuffix(line, "^") + errCaretStyle.Render("^")
		case strings.HasPrefix(line, "   "):
			lines[i] = "   " + errContextStyle.Render(line[3:])
		}
	}

	return strings.Join(lines, "\n")
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = strings.TrimRight(r.Render(err), "\n")
	}
	return strings.Join(parts, "\n\n")
}
