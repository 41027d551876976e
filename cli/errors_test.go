package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/ledger"
	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/simulation"
)

func TestErrorRenderer_RenderParseErrorWithSourceContext(t *testing.T) {
	source := "O Arias Juan 2569\nD 25690 1000\nW 25690 lots\nH 2569\n"

	_, err := parser.ParseBytesWithFilename(context.Background(), "bank.txt", []byte(source))
	var parseErrors *parser.ParseErrors
	assert.True(t, stdErrors.As(err, &parseErrors))

	output := NewErrorRenderer([]byte(source)).Render(parseErrors.Errors[0])
	lines := strings.Split(output, "\n")

	assert.Equal(t, `bank.txt:3: expected amount, got WORD "lots"`, lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "   O Arias Juan 2569", lines[2])
	assert.Equal(t, "   D 25690 1000", lines[3])
	assert.Equal(t, "   W 25690 lots", lines[4])
	assert.Equal(t, "           ^", lines[5])
	assert.Equal(t, "   H 2569", lines[6])
}

func TestErrorRenderer_RenderParseErrorWithoutSourceContext(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos:     ast.Position{Filename: "bank.txt", Line: 3, Column: 9},
		Message: "expected amount, got end of line",
		Source:  "W 25690",
	}

	output := NewErrorRenderer(nil).Render(parseErr)
	assert.Equal(t, "bank.txt:3: expected amount, got end of line\n\n   W 25690\n", output)
}

func TestErrorRenderer_RenderTransactionError(t *testing.T) {
	cmd := ast.WithPosition(ast.NewWithdraw(25690, 1500), ast.Position{Filename: "bank.txt", Line: 3, Column: 1})
	err := &simulation.TransactionError{
		Command: cmd,
		Outcome: simulation.Failed,
		Err: &ledger.InsufficientFundsError{
			Client: "Juan Arias",
			Fund:   ledger.MoneyMarket,
			Amount: 1500,
		},
	}

	output := NewErrorRenderer(nil).Render(err)
	assert.Equal(t, "bank.txt:3: Not enough funds to withdraw 1500 from Juan Arias Money Market\n\n   W 25690 1500\n", output)
}

func TestErrorRenderer_RenderPlainError(t *testing.T) {
	output := NewErrorRenderer(nil).Render(fmt.Errorf("failed to read stdin: closed"))
	assert.Equal(t, "failed to read stdin: closed", output)
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	errs := []error{
		&parser.ParseError{Pos: ast.Position{Line: 1}, Message: "unknown transaction code 'X'", Source: "X 1"},
		fmt.Errorf("something else"),
	}

	output := NewErrorRenderer(nil).RenderAll(errs)
	assert.Equal(t, "line 1: unknown transaction code 'X'\n\n   X 1\n\nsomething else", output)
}
