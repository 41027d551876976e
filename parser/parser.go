// Package parser turns a bank transaction file into an ast.AST.
//
// The file holds one record per line:
//
//	O <last-name> <first-name> <id>
//	H <account>[<fund>]
//	D <account><fund> <amount>
//	W <account><fund> <amount>
//	T <account><fund> <amount> <account><fund>
//
// Blank lines are skipped. A malformed record does not stop parsing: it is
// reported in a *ParseErrors returned next to the records that did parse.
package parser

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/telemetry"
)

var (
	minAmount = decimal.NewFromInt(math.MinInt32)
	maxAmount = decimal.NewFromInt(math.MaxInt32)
)

// Parser builds commands from the token stream of a single file.
type Parser struct {
	source   []byte
	filename string
	tokens   []Token
	pos      int
	interner *Interner
	errors   []error
}

// ParseString parses a transaction file held in a string.
func ParseString(ctx context.Context, source string) (*ast.AST, error) {
	return ParseBytesWithFilename(ctx, "", []byte(source))
}

// ParseBytes parses a transaction file held in memory.
func ParseBytes(ctx context.Context, data []byte) (*ast.AST, error) {
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseBytesWithFilename parses data and attributes positions to filename.
//
// When some records are malformed the returned AST holds the valid ones and
// the error is a *ParseErrors. Any other error means nothing was parsed.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (*ast.AST, error) {
	lexTimer := telemetry.StartTimer(ctx, "parser.lexing")
	tokens, err := NewLexer(data, filename).ScanAll()
	lexTimer.End()
	if err != nil {
		return nil, err
	}

	p := &Parser{
		source:   data,
		filename: filename,
		tokens:   tokens,
		interner: NewInterner(64),
	}

	parseTimer := telemetry.StartTimer(ctx, fmt.Sprintf("parser.parsing (%d tokens)", len(tokens)))
	tree, err := p.parse(ctx)
	parseTimer.End()
	if err != nil {
		return nil, err
	}

	if len(p.errors) > 0 {
		return tree, &ParseErrors{Errors: p.errors}
	}
	return tree, nil
}

func (p *Parser) parse(ctx context.Context) (*ast.AST, error) {
	tree := &ast.AST{Filename: p.filename}

	for !p.isAtEnd() {
		if p.match(NEWLINE) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cmd, err := p.parseRecord()
		if err != nil {
			p.errors = append(p.errors, err)
			p.skipLine()
			continue
		}
		tree.Commands = append(tree.Commands, cmd)
	}

	return tree, nil
}

// parseRecord parses one line. On success the parser is left on the
// line's NEWLINE (or EOF).
func (p *Parser) parseRecord() (ast.Command, error) {
	first := p.peek()
	text := p.recordText()
	pos := tokenPosition(first, p.filename)

	cmd, err := p.parseCommand(first)
	if err == nil && !p.check(NEWLINE) && !p.isAtEnd() {
		extra := p.peek()
		err = p.errorAtToken(extra, "unexpected %q after %s record", extra.String(p.source), cmd.Command())
	}
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Source = text
		}
		return nil, err
	}

	setRecord(cmd, pos, text)
	return cmd, nil
}

func (p *Parser) parseCommand(first Token) (ast.Command, error) {
	if first.Type != CODE {
		return nil, p.errorAtToken(first, "expected transaction code, got %s %q", first.Type, first.String(p.source))
	}
	p.advance()

	switch code := first.Bytes(p.source)[0]; code {
	case ast.CodeOpen:
		return p.parseOpen()
	case ast.CodeHistory:
		return p.parseHistory()
	case ast.CodeDeposit:
		return p.parseDeposit()
	case ast.CodeWithdraw:
		return p.parseWithdraw()
	case ast.CodeTransfer:
		return p.parseTransfer()
	default:
		return nil, p.errorAtToken(first, "unknown transaction code %q", code)
	}
}

// O <last-name> <first-name> <id>
func (p *Parser) parseOpen() (*ast.Open, error) {
	last, err := p.parseName("last name")
	if err != nil {
		return nil, err
	}
	first, err := p.parseName("first name")
	if err != nil {
		return nil, err
	}
	id, err := p.parseInteger("account ID")
	if err != nil {
		return nil, err
	}
	return &ast.Open{LastName: last, FirstName: first, ID: id}, nil
}

// H <ref>
func (p *Parser) parseHistory() (*ast.History, error) {
	ref, err := p.parseRef("account")
	if err != nil {
		return nil, err
	}
	return &ast.History{Ref: ref}, nil
}

// D <ref> <amount>
func (p *Parser) parseDeposit() (*ast.Deposit, error) {
	ref, amount, err := p.parseRefAmount()
	if err != nil {
		return nil, err
	}
	return &ast.Deposit{Ref: ref, Amount: amount}, nil
}

// W <ref> <amount>
func (p *Parser) parseWithdraw() (*ast.Withdraw, error) {
	ref, amount, err := p.parseRefAmount()
	if err != nil {
		return nil, err
	}
	return &ast.Withdraw{Ref: ref, Amount: amount}, nil
}

// T <ref> <amount> <ref>
func (p *Parser) parseTransfer() (*ast.Transfer, error) {
	from, amount, err := p.parseRefAmount()
	if err != nil {
		return nil, err
	}
	to, err := p.parseTargetRef("target account")
	if err != nil {
		return nil, err
	}
	return &ast.Transfer{From: from, Amount: amount, To: to}, nil
}

func (p *Parser) parseRefAmount() (ast.FundRef, int, error) {
	ref, err := p.parseRef("account")
	if err != nil {
		return ast.FundRef{}, 0, err
	}
	amount, err := p.parseInteger("amount")
	if err != nil {
		return ast.FundRef{}, 0, err
	}
	return ref, amount, nil
}

func setRecord(cmd ast.Command, pos ast.Position, text string) {
	switch c := cmd.(type) {
	case *ast.Open:
		c.Pos, c.Text = pos, text
	case *ast.History:
		c.Pos, c.Text = pos, text
	case *ast.Deposit:
		c.Pos, c.Text = pos, text
	case *ast.Withdraw:
		c.Pos, c.Text = pos, text
	case *ast.Transfer:
		c.Pos, c.Text = pos, text
	}
}
