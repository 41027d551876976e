package cli

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/banksim/loader"
	"github.com/robinvdvleuten/banksim/parser"
)

// DoctorCmd provides utilities for debugging transaction files.
type DoctorCmd struct {
	Lex LexCmd `cmd:"" help:"Show lexical tokens from a transaction file."`
	AST ASTCmd `cmd:"" name:"ast" help:"Show the parsed transactions of a file."`
}

// LexCmd shows lexical tokens from a transaction file.
type LexCmd struct {
	File FileOrStdin `help:"Transaction file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens, err := parser.NewLexer(content, cmd.File.Filename).ScanAll()
	if err != nil {
		return fmt.Errorf("lexer error: %w", err)
	}

	// TYPE line:col "content"
	for _, token := range tokens {
		if token.Type == parser.EOF {
			continue
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%-10s %d:%d    %q\n",
			token.Type.String(),
			token.Line,
			token.Column,
			token.String(content))
	}

	return nil
}

// ASTCmd dumps the parsed transactions of a file.
type ASTCmd struct {
	File FileOrStdin `help:"Transaction file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the ast command. Malformed records are reported to stderr and
// left out of the dump.
func (cmd *ASTCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry, err := commandContext(context.Background(), globals, ctx.Stderr, "doctor ast")
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
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).RenderAll(parseErrors.Errors))
		_, _ = fmt.Fprintln(ctx.Stderr)
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(tree)
	return nil
}
