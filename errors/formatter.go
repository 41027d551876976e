// Package errors renders parse and transaction errors for the check command.
// Error types stay in the packages that produce them (parser, ledger,
// simulation); this package only decides how they look.
//
// Two formatters are provided:
//   - TextFormatter: message followed by the offending record, for terminals
//   - JSONFormatter: structured records for tooling
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/formatter"
	"github.com/robinvdvleuten/banksim/ledger"
	"github.com/robinvdvleuten/banksim/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// commandError is implemented by errors tied to an applied command.
type commandError interface {
	error
	GetPosition() ast.Position
	GetCommand() ast.Command
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	formatter     *formatter.Formatter
	sourceContent []byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the file content used to show parse errors in context.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter. A nil f uses the default
// formatter to render commands.
func NewTextFormatter(f *formatter.Formatter, opts ...TextFormatterOption) *TextFormatter {
	if f == nil {
		f = formatter.New()
	}
	tf := &TextFormatter{formatter: f}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(commandError); ok {
		return tf.formatWithCommand(e.Error(), e.GetCommand())
	}

	if e, ok := err.(*parser.ParseError); ok {
		if tf.sourceContent != nil {
			return formatWithSourceContext(e.Pos, e.Error(), tf.sourceContent)
		}
		if e.Source != "" {
			return e.Error() + "\n\n   " + e.Source + "\n"
		}
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	var buf bytes.Buffer
	for i, err := range errs {
		if i > 0 {
			buf.WriteString("\n")
			if !bytes.HasSuffix(buf.Bytes(), []byte("\n\n")) {
				buf.WriteString("\n")
			}
		}
		buf.WriteString(tf.Format(err))
	}
	return buf.String()
}

func (tf *TextFormatter) formatWithCommand(message string, cmd ast.Command) string {
	if cmd == nil {
		return message
	}
	return message + "\n\n   " + tf.formatter.FormatCommand(cmd) + "\n"
}

// formatWithSourceContext shows the lines around pos with a caret under the
// offending column.
func formatWithSourceContext(pos ast.Position, message string, source []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	lines := strings.Split(string(source), "\n")

	// Two lines before, one after.
	start := max(pos.Line-3, 0)
	end := min(pos.Line, len(lines)-1)

	for i := start; i <= end; i++ {
		buf.WriteString("   ")
		buf.WriteString(strings.TrimRight(lines[i], "\r"))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct {
	formatter *formatter.Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{formatter: formatter.New()}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    errorType(err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	if e, ok := err.(commandError); ok && e.GetCommand() != nil {
		errJSON.Details["command"] = e.GetCommand().Command()
		errJSON.Details["record"] = jf.formatter.FormatCommand(e.GetCommand())
	}
	if e, ok := err.(*parser.ParseError); ok && e.Source != "" {
		errJSON.Details["record"] = e.Source
	}

	addLedgerDetails(err, errJSON.Details)

	return errJSON
}

// errorType names the most specific error type in the chain.
func errorType(err error) string {
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

func addLedgerDetails(err error, details map[string]any) {
	var (
		insufficient *ledger.InsufficientFundsError
		invalidFund  *ledger.InvalidFundError
		invalidAmt   *ledger.InvalidAmountError
		notFound     *ledger.AccountNotFoundError
		duplicate    *ledger.DuplicateAccountError
		invalidID    *ledger.InvalidAccountIDError
	)

	switch {
	case stderrors.As(err, &insufficient):
		details["client"] = insufficient.Client
		details["fund"] = insufficient.Fund.String()
		details["amount"] = insufficient.Amount
		details["balance"] = insufficient.Balance
	case stderrors.As(err, &invalidFund):
		details["client"] = invalidFund.Client
		details["fund"] = int(invalidFund.Fund)
	case stderrors.As(err, &invalidAmt):
		details["client"] = invalidAmt.Client
		details["amount"] = invalidAmt.Amount
	case stderrors.As(err, &notFound):
		details["account"] = notFound.ID
	case stderrors.As(err, &duplicate):
		details["account"] = duplicate.ID
	case stderrors.As(err, &invalidID):
		details["account"] = invalidID.ID
	}
}
