package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/telemetry"
)

func TestLoadSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "transactions.txt")
	err := os.WriteFile(file, []byte("O Arias Juan 2569\nD 25690 1000\n"), 0644)
	assert.NoError(t, err)

	tree, err := New().Load(context.Background(), file)
	assert.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, file, tree.Filename)

	open, ok := tree.Commands[0].(*ast.Open)
	assert.True(t, ok)
	assert.Equal(t, "Juan Arias", open.ClientName())
	assert.Equal(t, file, open.Position().Filename)
}

func TestLoadMissingFile(t *testing.T) {
	tree, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Zero(t, tree)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadStdin(t *testing.T) {
	ldr := New(WithStdin(strings.NewReader("O Arias Juan 2569\n")))

	tree, err := ldr.Load(context.Background(), StdinPath)
	assert.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, "<stdin>", tree.Filename)
}

func TestLoadStdinWithoutReader(t *testing.T) {
	ldr := New(WithStdin(nil))

	_, err := ldr.Load(context.Background(), StdinPath)
	assert.EqualError(t, err, "failed to read stdin: no reader configured")
}

func TestWithFilename(t *testing.T) {
	ldr := New(WithStdin(strings.NewReader("X 1\n")), WithFilename("piped.txt"))

	tree, err := ldr.Load(context.Background(), StdinPath)
	var perrs *parser.ParseErrors
	assert.True(t, errors.As(err, &perrs))
	assert.Equal(t, "piped.txt", tree.Filename)
	assert.Contains(t, err.Error(), "piped.txt:1:")
}

func TestLoadReturnsPartialTreeOnParseErrors(t *testing.T) {
	data := []byte("O Arias Juan 2569\nD 25690 10.50\nD 25690 1000\n")

	tree, err := New().LoadBytes(context.Background(), "partial.txt", data)

	var perrs *parser.ParseErrors
	assert.True(t, errors.As(err, &perrs))
	assert.Equal(t, 1, len(perrs.Errors))
	assert.Equal(t, 2, tree.Len())
}

func TestLoadRecordsTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	_, err := New().LoadBytes(ctx, "timed.txt", []byte("O Arias Juan 2569\n"))
	assert.NoError(t, err)

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	out := buf.String()
	assert.Contains(t, out, "loader.load timed.txt")
	assert.Contains(t, out, "parser.lexing")
	assert.Contains(t, out, "parser.parsing (6 tokens)")
}
