package parser

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/banksim/ast"
)

// parseName consumes a name operand of an open record. Any word is a name,
// including ones that lex as numbers such as "3rd".
func (p *Parser) parseName(what string) (string, error) {
	tok := p.peek()
	switch tok.Type {
	case WORD, NUMBER, ILLEGAL:
	default:
		return "", p.unexpected(tok, what)
	}
	p.advance()
	return p.interner.InternBytes(tok.Bytes(p.source)), nil
}

// parseInteger consumes a whole number. Numbers are read as decimals first
// so that "12.50" is reported as a fraction rather than as garbage.
func (p *Parser) parseInteger(what string) (int, error) {
	tok := p.peek()
	if tok.Type != NUMBER {
		return 0, p.unexpected(tok, what)
	}
	p.advance()

	text := tok.String(p.source)
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, p.errorAtToken(tok, "invalid %s %q", what, text)
	}
	if !d.IsInteger() {
		return 0, p.errorAtToken(tok, "%s %s must be a whole number", what, text)
	}
	if d.LessThan(minAmount) || d.GreaterThan(maxAmount) {
		return 0, p.errorAtToken(tok, "%s %s is out of range", what, text)
	}
	return int(d.IntPart()), nil
}

// parseRef consumes an encoded account reference.
func (p *Parser) parseRef(what string) (ast.FundRef, error) {
	tok := p.peek()
	n, err := p.parseInteger(what)
	if err != nil {
		return ast.FundRef{}, err
	}
	if n < 0 {
		return ast.FundRef{}, p.errorAtToken(tok, "%s %d must not be negative", what, n)
	}
	return ast.DecodeFundRef(n), nil
}

// parseTargetRef consumes the target reference of a transfer.
func (p *Parser) parseTargetRef(what string) (ast.FundRef, error) {
	ref, err := p.parseRef(what)
	if err != nil {
		return ast.FundRef{}, err
	}
	return ast.DecodeTargetRef(ref.Encoded), nil
}

func (p *Parser) unexpected(tok Token, what string) *ParseError {
	switch tok.Type {
	case NEWLINE, EOF:
		return p.errorAtToken(tok, "expected %s, got end of line", what)
	default:
		return p.errorAtToken(tok, "expected %s, got %s %q", what, tok.Type, tok.String(p.source))
	}
}

// recordText returns the text of the current line from the current token up
// to the last token before the line break.
func (p *Parser) recordText() string {
	first := p.peek()
	last := first
	for i := p.pos; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if tok.Type == NEWLINE || tok.Type == EOF {
			break
		}
		last = tok
	}
	return string(p.source[first.Start:last.End])
}

// skipLine discards tokens up to and including the next line break.
func (p *Parser) skipLine() {
	for !p.isAtEnd() {
		if p.advance().Type == NEWLINE {
			return
		}
	}
}

func (p *Parser) errorAtToken(tok Token, format string, args ...any) *ParseError {
	return newErrorf(tokenPosition(tok, p.filename), format, args...)
}

func tokenPosition(tok Token, filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// Helper methods

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) match(typ TokenType) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}
