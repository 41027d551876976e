// Package simulation replays parsed transaction records against a ledger
// store and writes the bank's report.
//
// A run has three phases. The whole file has already been read and parsed
// by the time Run is called. Run then applies every command in file order,
// writing history displays and refusal messages as it goes, and finally
// writes the balances of every account:
//
//	sim := simulation.New(simulation.WithOutput(os.Stdout))
//	summary, err := sim.Run(ctx, tree)
//	if err != nil {
//	    var terrs *simulation.TransactionErrors
//	    if errors.As(err, &terrs) {
//	        // refused transactions are part of the report
//	    }
//	}
package simulation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/ledger"
	"github.com/robinvdvleuten/banksim/logger"
	"github.com/robinvdvleuten/banksim/output"
	"github.com/robinvdvleuten/banksim/telemetry"
)

// ReportBanner heads the final balances.
const ReportBanner = "Processing Done. Final Balances"

// Simulation applies commands to a store of accounts.
type Simulation struct {
	store  *ledger.Store
	out    io.Writer
	styles *output.Styles
	log    *zerolog.Logger
	errors []error
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithOutput sets where the report is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Simulation) {
		s.out = w
	}
}

// WithStyles sets the styles used for refusal messages and the banner.
// Defaults to styles detected from the output writer.
func WithStyles(styles *output.Styles) Option {
	return func(s *Simulation) {
		s.styles = styles
	}
}

// WithLogger sets the diagnostics logger. Defaults to the logger carried in
// the context passed to Run.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Simulation) {
		s.log = &log
	}
}

// New creates a Simulation with an empty store.
func New(opts ...Option) *Simulation {
	s := &Simulation{
		store: ledger.NewStore(),
		out:   os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.styles == nil {
		s.styles = output.NewStyles(s.out)
	}

	return s
}

// Store returns the accounts opened so far.
func (s *Simulation) Store() *ledger.Store {
	return s.store
}

// Errors returns the commands of the last run that did not apply.
func (s *Simulation) Errors() []error {
	return s.errors
}

// Run applies every command of tree in order and writes the final report.
//
// Any accounts left from a previous run are discarded first. Cancellation is
// checked between commands; a cancelled run writes no report. When commands
// were refused the report is still written and the error is a
// *TransactionErrors.
func (s *Simulation) Run(ctx context.Context, tree *ast.AST) (Summary, error) {
	s.store.Clear()
	s.errors = nil

	var summary Summary

	runTimer := telemetry.StartTimer(ctx, fmt.Sprintf("simulation.run (%d transactions)", tree.Len()))
	for _, cmd := range tree.Commands {
		select {
		case <-ctx.Done():
			runTimer.End()
			return summary, ctx.Err()
		default:
		}

		outcome, _ := s.Apply(ctx, cmd)
		summary.add(outcome)
	}
	runTimer.End()

	reportTimer := telemetry.StartTimer(ctx, "simulation.report")
	s.report()
	reportTimer.End()

	s.logger(ctx).Debug().
		Int("applied", summary.Applied).
		Int("failed", summary.Failed).
		Int("rejected", summary.Rejected).
		Msg("simulation finished")

	if len(s.errors) > 0 {
		return summary, &TransactionErrors{Errors: s.errors}
	}
	return summary, nil
}

// report writes the banner and the balances of every account.
func (s *Simulation) report() {
	_, _ = fmt.Fprintln(s.out)
	_, _ = fmt.Fprintln(s.out, s.styles.Banner(ReportBanner))
	s.store.Display(s.out)
}

func (s *Simulation) logger(ctx context.Context) *zerolog.Logger {
	if s.log != nil {
		return s.log
	}
	log := logger.FromContext(ctx)
	return &log
}
