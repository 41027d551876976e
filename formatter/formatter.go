// Package formatter renders parsed transaction files in canonical form.
//
// Each record is written with single-space separated fields, normalizing
// the numbers (leading zeros and plus signs disappear). With alignment on,
// the fields of all records are padded into columns, measured in terminal
// cells so that names with wide or combining characters still line up.
package formatter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/telemetry"
)

// DefaultSpacing is the number of spaces between columns.
const DefaultSpacing = 1

// Formatter formats transaction files.
type Formatter struct {
	// Align pads fields into columns across the whole file.
	// Default: true
	Align bool

	// Spacing is the minimum number of spaces between two fields.
	Spacing int

	// PreserveBlanks keeps blank lines between records, collapsing runs of
	// them into one.
	// Default: true
	PreserveBlanks bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithAlignment enables or disables column alignment.
func WithAlignment(align bool) Option {
	return func(f *Formatter) {
		f.Align = align
	}
}

// WithSpacing sets the minimum spacing between fields.
func WithSpacing(spacing int) Option {
	return func(f *Formatter) {
		f.Spacing = spacing
	}
}

// WithPreserveBlanks enables or disables blank line preservation.
func WithPreserveBlanks(preserve bool) Option {
	return func(f *Formatter) {
		f.PreserveBlanks = preserve
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Align:          true,
		Spacing:        DefaultSpacing,
		PreserveBlanks: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.Spacing < 1 {
		f.Spacing = 1
	}

	return f
}

// Format writes every command of tree to w.
func (f *Formatter) Format(ctx context.Context, tree *ast.AST, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("formatter.format (%d transactions)", tree.Len()))
	defer timer.End()

	rows := make([][]string, tree.Len())
	for i, cmd := range tree.Commands {
		rows[i] = ast.Fields(cmd)
	}

	var widths []int
	if f.Align {
		widths = columnWidths(rows)
	}

	var buf strings.Builder
	lastLine := 0
	for i, cmd := range tree.Commands {
		line := cmd.Position().Line
		if f.PreserveBlanks && lastLine > 0 && line > lastLine+1 {
			buf.WriteByte('\n')
		}
		lastLine = line

		f.writeRow(&buf, rows[i], widths)
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatCommand renders a single command without alignment.
func (f *Formatter) FormatCommand(cmd ast.Command) string {
	var buf strings.Builder
	f.writeRow(&buf, ast.Fields(cmd), nil)
	return buf.String()
}

// writeRow writes fields separated by Spacing, padding each field but the
// last to its column width when widths is set.
func (f *Formatter) writeRow(buf *strings.Builder, fields []string, widths []int) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(strings.Repeat(" ", f.Spacing))
		}
		buf.WriteString(field)

		if i < len(fields)-1 && i < len(widths) {
			if pad := widths[i] - runewidth.StringWidth(field); pad > 0 {
				buf.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, field := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(field))
		}
	}
	return widths
}
