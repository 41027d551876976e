package simulation

import (
	"fmt"

	"github.com/robinvdvleuten/banksim/ast"
)

// TransactionError is a command that failed or was rejected. It unwraps to
// the ledger error that caused it.
type TransactionError struct {
	Command ast.Command
	Outcome Outcome
	Err     error
}

func (e *TransactionError) Error() string {
	pos := e.Command.Position()
	if pos.Line == 0 {
		return e.Err.Error()
	}
	if pos.Filename == "" {
		return fmt.Sprintf("line %d: %s", pos.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", pos.Filename, pos.Line, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// GetCommand returns the command that did not apply.
func (e *TransactionError) GetCommand() ast.Command {
	return e.Command
}

// GetPosition returns where the command was read.
func (e *TransactionError) GetPosition() ast.Position {
	return e.Command.Position()
}

// TransactionErrors collects every command of a run that did not apply.
type TransactionErrors struct {
	Errors []error
}

func (e *TransactionErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d transactions refused", len(e.Errors))
}

// Unwrap returns the underlying errors.
func (e *TransactionErrors) Unwrap() []error {
	return e.Errors
}
