package parser

import (
	"fmt"
	"unicode/utf8"
)

// Lexer tokenizes transaction files.
//
// Tokens store byte offsets into the source, not string values. Records are
// line-oriented, so line breaks are tokens too.
type Lexer struct {
	source    []byte
	filename  string
	pos       int
	line      int
	column    int
	lineStart bool // no token emitted yet on the current line
	tokens    []Token
}

// InvalidUTF8Error is returned when the source is not valid UTF-8.
type InvalidUTF8Error struct {
	Filename string
	Offset   int
	Line     int
}

func (e *InvalidUTF8Error) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("line %d: invalid UTF-8 at byte offset %d", e.Line, e.Offset)
	}
	return fmt.Sprintf("%s:%d: invalid UTF-8 at byte offset %d", e.Filename, e.Line, e.Offset)
}

// NewLexer creates a lexer for source.
func NewLexer(source []byte, filename string) *Lexer {
	// A record is four tokens at most plus its line break, and rarely
	// shorter than a dozen bytes.
	estimatedTokens := len(source)/3 + 16

	return &Lexer{
		source:    source,
		filename:  filename,
		line:      1,
		column:    1,
		lineStart: true,
		tokens:    make([]Token, 0, estimatedTokens),
	}
}

// ScanAll lexes the whole source in a single pass and returns the tokens,
// terminated by an EOF token.
func (l *Lexer) ScanAll() ([]Token, error) {
	if !utf8.Valid(l.source) {
		return nil, l.invalidUTF8()
	}

	for l.pos < len(l.source) {
		l.skipBlanks()
		if l.pos >= len(l.source) {
			break
		}

		l.tokens = append(l.tokens, l.scanToken())
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	first := l.lineStart
	l.lineStart = false

	ch := l.advance()

	switch {
	case ch == '\n':
		l.lineStart = true
		return Token{NEWLINE, start, l.pos, startLine, startCol}

	case isDigit(ch), (ch == '-' || ch == '+') && l.peekIsDigit():
		return l.scanNumber(start, startLine, startCol)

	case first && isLetter(ch) && l.atSeparator():
		return Token{CODE, start, l.pos, startLine, startCol}

	default:
		// Rescan from the start so multi-byte runes count as one column.
		l.pos, l.column = start, startCol
		l.skipWord()
		return Token{WORD, start, l.pos, startLine, startCol}
	}
}

// scanNumber scans [-+]?[0-9]+(\.[0-9]+)?. Anything glued to the number is
// swallowed into a single ILLEGAL token.
func (l *Lexer) scanNumber(start, line, col int) Token {
	for l.peekIsDigit() {
		l.advance()
	}

	if l.peek() == '.' && l.peekAheadIsDigit(1) {
		l.advance()
		for l.peekIsDigit() {
			l.advance()
		}
	}

	if !l.atSeparator() {
		l.skipWord()
		return Token{ILLEGAL, start, l.pos, line, col}
	}

	return Token{NUMBER, start, l.pos, line, col}
}

// skipBlanks skips spaces, tabs and carriage returns. Line feeds are tokens.
func (l *Lexer) skipBlanks() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\r' {
			return
		}
		l.pos++
		l.column++
	}
}

// skipWord advances to the next separator.
func (l *Lexer) skipWord() {
	for !l.atSeparator() {
		_, size := utf8.DecodeRune(l.source[l.pos:])
		l.pos += size
		l.column++
	}
}

func (l *Lexer) invalidUTF8() error {
	line := 1
	for i := 0; i < len(l.source); {
		r, size := utf8.DecodeRune(l.source[i:])
		if r == utf8.RuneError && size <= 1 {
			return &InvalidUTF8Error{Filename: l.filename, Offset: i, Line: line}
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return &InvalidUTF8Error{Filename: l.filename, Line: line}
}

// Helper methods

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekIsDigit() bool {
	return l.peekAheadIsDigit(0)
}

func (l *Lexer) peekAheadIsDigit(n int) bool {
	if l.pos+n >= len(l.source) {
		return false
	}
	return isDigit(l.source[l.pos+n])
}

func (l *Lexer) atSeparator() bool {
	if l.pos >= len(l.source) {
		return true
	}
	switch l.source[l.pos] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}
