package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/banksim/loader"
	"github.com/robinvdvleuten/banksim/logger"
	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/simulation"
)

type RunCmd struct {
	File  FileOrStdin `help:"Transaction file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch bool        `help:"Replay the file again whenever it changes." short:"w"`
}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Watch && cmd.File.IsStdin() {
		return fmt.Errorf("--watch needs a file, not stdin")
	}

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCtx, reportTelemetry, err := commandContext(base, globals, ctx.Stderr, "run "+filepath.Base(cmd.File.Filename))
	if err != nil {
		return err
	}
	defer reportTelemetry()

	sim := simulation.New(simulation.WithOutput(ctx.Stdout))
	if err := cmd.replay(runCtx, sim, ctx.Stderr); err != nil {
		return err
	}

	if !cmd.Watch {
		return nil
	}

	watcher, err := newFileWatcher(cmd.File.Filename)
	if err != nil {
		return err
	}

	printInfof(ctx.Stderr, "Watching %s for changes", pathStyle.Render(cmd.File.Filename))

	return watcher.Run(runCtx, func() {
		_, _ = fmt.Fprintln(ctx.Stdout)
		if err := cmd.replay(runCtx, sim, ctx.Stderr); err != nil {
			printError(ctx.Stderr, err.Error())
		}
	})
}

// replay loads the input and runs it through sim. Malformed records are
// reported to stderr and skipped; refused transactions are part of the
// report. Only unreadable input is an error.
func (cmd *RunCmd) replay(ctx context.Context, sim *simulation.Simulation, stderr io.Writer) error {
	tree, err := cmd.File.LoadAST(ctx, loader.New())

	var parseErrors *parser.ParseErrors
	switch {
	case errors.As(err, &parseErrors):
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprintln(stderr, NewErrorRenderer(source).RenderAll(parseErrors.Errors))
		_, _ = fmt.Fprintln(stderr)
		printError(stderr, fmt.Sprintf("%d malformed transaction(s) skipped", len(parseErrors.Errors)))
	case err != nil:
		return err
	}

	summary, err := sim.Run(ctx, tree)

	var refused *simulation.TransactionErrors
	if err != nil && !errors.As(err, &refused) {
		return err
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("file", cmd.File.Filename).
		Int("applied", summary.Applied).
		Int("failed", summary.Failed).
		Int("rejected", summary.Rejected).
		Msg("replay finished")

	return nil
}
