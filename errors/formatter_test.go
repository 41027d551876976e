package errors

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/banksim/parser"
	"github.com/robinvdvleuten/banksim/simulation"
)

const parseSource = "O Arias Juan 2569\nD 25690 10.50\nH 2569\n"

func parseError(t *testing.T) *parser.ParseError {
	t.Helper()
	_, err := parser.ParseString(context.Background(), parseSource)

	var perr *parser.ParseError
	assert.True(t, stderrors.As(err, &perr))
	return perr
}

func transactionError(t *testing.T) error {
	t.Helper()
	tree, err := parser.ParseString(context.Background(), "O Arias Juan 2569\nW 25690   50\n")
	assert.NoError(t, err)

	sim := simulation.New(simulation.WithOutput(&bytes.Buffer{}))
	_, _ = sim.Run(context.Background(), tree)
	assert.Equal(t, 1, len(sim.Errors()))
	return sim.Errors()[0]
}

func TestTextFormatterTransactionError(t *testing.T) {
	tf := NewTextFormatter(nil)

	want := "line 2: Not enough funds to withdraw 50 from Juan Arias Money Market\n\n" +
		"   W 25690 50\n"
	assert.Equal(t, want, tf.Format(transactionError(t)))
}

func TestTextFormatterParseErrorWithSource(t *testing.T) {
	tf := NewTextFormatter(nil, WithSource([]byte(parseSource)))

	want := "line 2: amount 10.50 must be a whole number\n\n" +
		"   O Arias Juan 2569\n" +
		"   D 25690 10.50\n" +
		"           ^\n" +
		"   H 2569\n"
	assert.Equal(t, want, tf.Format(parseError(t)))
}

func TestTextFormatterParseErrorWithoutSource(t *testing.T) {
	tf := NewTextFormatter(nil)

	want := "line 2: amount 10.50 must be a whole number\n\n   D 25690 10.50\n"
	assert.Equal(t, want, tf.Format(parseError(t)))
}

func TestTextFormatterPlainError(t *testing.T) {
	tf := NewTextFormatter(nil)
	assert.Equal(t, "boom", tf.Format(fmt.Errorf("boom")))
}

func TestTextFormatterFormatAll(t *testing.T) {
	tf := NewTextFormatter(nil)

	assert.Equal(t, "", tf.FormatAll(nil))
	assert.Equal(t, "first\n\nsecond", tf.FormatAll([]error{fmt.Errorf("first"), fmt.Errorf("second")}))

	got := tf.FormatAll([]error{transactionError(t), fmt.Errorf("second")})
	want := "line 2: Not enough funds to withdraw 50 from Juan Arias Money Market\n\n" +
		"   W 25690 50\n\nsecond"
	assert.Equal(t, want, got)
}

func TestJSONFormatterTransactionError(t *testing.T) {
	jf := NewJSONFormatter()

	var got ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.Format(transactionError(t))), &got))

	assert.Equal(t, "*ledger.InsufficientFundsError", got.Type)
	assert.Equal(t, &PositionJSON{Line: 2, Column: 1}, got.Position)
	assert.Equal(t, map[string]any{
		"command": "withdraw",
		"record":  "W 25690 50",
		"client":  "Juan Arias",
		"fund":    "Money Market",
		"amount":  float64(50),
		"balance": float64(0),
	}, got.Details)
}

func TestJSONFormatterFormatAll(t *testing.T) {
	jf := NewJSONFormatter()

	errs := []error{parseError(t), fmt.Errorf("boom")}
	got := jf.FormatAllToSlice(errs)

	assert.Equal(t, 2, len(got))
	assert.Equal(t, "*parser.ParseError", got[0].Type)
	assert.Equal(t, "D 25690 10.50", got[0].Details["record"])
	assert.Equal(t, 9, got[0].Position.Column)
	assert.Zero(t, got[1].Position)

	var decoded []ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.FormatAll(errs)), &decoded))
	assert.Equal(t, 2, len(decoded))
	assert.Equal(t, "boom", decoded[1].Message)
}
