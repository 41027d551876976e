package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/errors"
	"github.com/robinvdvleuten/banksim/loader"
	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/simulation"
)

type CheckCmd struct {
	File   FileOrStdin `help:"Transaction file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format (${enum})." enum:"text,json" default:"text"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry, err := commandContext(context.Background(), globals, ctx.Stderr, "check "+filepath.Base(cmd.File.Filename))
	if err != nil {
		return err
	}
	defer reportTelemetry()

	problems, err := cmd.collect(runCtx)
	if err != nil {
		return err
	}

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(problems))
		if len(problems) > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	if len(problems) > 0 {
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).RenderAll(problems))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d error(s) found", len(problems)))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, "Check passed")
	return nil
}

// collect parses the input and replays it without a report, returning the
// malformed records and refused transactions in file order.
func (cmd *CheckCmd) collect(ctx context.Context) ([]error, error) {
	var problems []error

	tree, err := cmd.File.LoadAST(ctx, loader.New())
	var parseErrors *parser.ParseErrors
	switch {
	case stdErrors.As(err, &parseErrors):
		problems = append(problems, parseErrors.Errors...)
	case err != nil:
		return nil, err
	}

	sim := simulation.New(simulation.WithOutput(io.Discard))
	if _, err := sim.Run(ctx, tree); err != nil {
		var refused *simulation.TransactionErrors
		if !stdErrors.As(err, &refused) {
			return nil, err
		}
		problems = append(problems, refused.Errors...)
	}

	slices.SortStableFunc(problems, func(a, b error) int {
		return errorLine(a) - errorLine(b)
	})

	return problems, nil
}

func errorLine(err error) int {
	if p, ok := err.(interface{ GetPosition() ast.Position }); ok {
		return p.GetPosition().Line
	}
	return 0
}
