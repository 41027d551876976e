package parser

import (
	"fmt"

	"github.com/robinvdvleuten/banksim/ast"
)

// ParseError is a malformed transaction record.
type ParseError struct {
	Pos     ast.Position
	Message string
	Source  string // text of the offending record
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

// GetPosition returns where the error was found.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func newErrorf(pos ast.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseErrors collects every malformed record of a file. The records that
// did parse are still returned alongside it.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d malformed transactions", len(e.Errors))
}

// Unwrap returns the individual errors.
func (e *ParseErrors) Unwrap() []error {
	return e.Errors
}
