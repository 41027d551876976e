package cli

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/banksim/formatter"
	"github.com/robinvdvleuten/banksim/loader"
	"github.com/robinvdvleuten/banksim/parser"
)

type FormatCmd struct {
	File    FileOrStdin `help:"Transaction file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Write   bool        `help:"Write the result back to the file instead of stdout." short:"w"`
	Yes     bool        `help:"Do not ask for confirmation before writing." short:"y"`
	NoAlign bool        `help:"Do not align fields into columns."`
	Spacing int         `help:"Spaces between fields." default:"1"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	runCtx, reportTelemetry, err := commandContext(context.Background(), globals, ctx.Stderr, "format "+filepath.Base(cmd.File.Filename))
	if err != nil {
		return err
	}
	defer reportTelemetry()

	tree, err := cmd.File.LoadAST(runCtx, loader.New())
	if err != nil {
		var parseErrors *parser.ParseErrors
		if !stdErrors.As(err, &parseErrors) {
			return err
		}
		// Formatting would silently drop the malformed lines.
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).RenderAll(parseErrors.Errors))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d malformed transaction(s), not formatting", len(parseErrors.Errors)))
		return NewCommandError(1)
	}

	f := formatter.New(
		formatter.WithAlignment(!cmd.NoAlign),
		formatter.WithSpacing(cmd.Spacing),
	)

	if !cmd.Write {
		return f.Format(runCtx, tree, ctx.Stdout)
	}

	var buf bytes.Buffer
	if err := f.Format(runCtx, tree, &buf); err != nil {
		return err
	}

	original, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.Equal(original, buf.Bytes()) {
		printInfof(ctx.Stderr, "%s is already formatted", pathStyle.Render(cmd.File.Filename))
		return nil
	}

	if !cmd.Yes {
		if !isTerminal() {
			return fmt.Errorf("refusing to overwrite %s without a terminal, pass --yes", cmd.File.Filename)
		}
		ok, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
		if err != nil {
			return err
		}
		if !ok {
			printInfof(ctx.Stderr, "Left %s untouched", pathStyle.Render(cmd.File.Filename))
			return nil
		}
	}

	info, err := os.Stat(cmd.File.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.File.Filename, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.File.Filename, err)
	}

	printSuccess(ctx.Stderr, fmt.Sprintf("Formatted %s", pathStyle.Render(cmd.File.GetAbsoluteFilename())))
	return nil
}
