// Package loader reads a transaction file in full and parses it.
//
// Every record is read and parsed before the simulation applies any of them.
// A file that cannot be read is a fatal error; malformed records are not, and
// come back as a *parser.ParseErrors next to the records that did parse.
//
//	l := loader.New()
//	tree, err := l.Load(ctx, "transactions.txt")
//
//	// Read "-" from stdin, reporting positions against a display name
//	l := loader.New(loader.WithStdin(os.Stdin), loader.WithFilename("<stdin>"))
//	tree, err := l.Load(ctx, "-")
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/logger"
	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/telemetry"
)

// StdinPath is the file argument that selects standard input.
const StdinPath = "-"

// Loader reads and parses transaction files.
//
// Configure it using functional options passed to New:
//
//	loader := New(WithStdin(os.Stdin))
type Loader struct {
	// Stdin is read when the file argument is StdinPath.
	Stdin io.Reader

	// Filename overrides the name positions and errors are reported
	// against. Defaults to the path being loaded.
	Filename string
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithStdin sets the reader used for StdinPath.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.Stdin = r
	}
}

// WithFilename sets the name reported in positions and errors.
func WithFilename(name string) Option {
	return func(l *Loader) {
		l.Filename = name
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Stdin: os.Stdin,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads path in full and parses it. Reading "-" consumes Stdin.
func (l *Loader) Load(ctx context.Context, path string) (*ast.AST, error) {
	timer := telemetry.StartTimer(ctx, "loader.load "+l.displayName(path))
	defer timer.End()

	data, err := l.read(path)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("file", l.displayName(path)).
		Int("bytes", len(data)).
		Msg("transaction file read")

	return parser.ParseBytesWithFilename(telemetry.WithRootTimer(ctx, timer), l.displayName(path), data)
}

// LoadBytes parses data that has already been read.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.AST, error) {
	timer := telemetry.StartTimer(ctx, "loader.load "+l.displayName(filename))
	defer timer.End()

	return parser.ParseBytesWithFilename(telemetry.WithRootTimer(ctx, timer), l.displayName(filename), data)
}

func (l *Loader) read(path string) ([]byte, error) {
	if path == StdinPath {
		if l.Stdin == nil {
			return nil, fmt.Errorf("failed to read stdin: no reader configured")
		}
		data, err := io.ReadAll(l.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) displayName(path string) string {
	if l.Filename != "" {
		return l.Filename
	}
	if path == StdinPath {
		return "<stdin>"
	}
	return path
}
