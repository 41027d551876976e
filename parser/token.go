package parser

// TokenType is the type of a token scanned from a transaction file.
type TokenType uint8

const (
	EOF TokenType = iota
	ILLEGAL

	NEWLINE // end of a record
	CODE    // single-letter command code at the start of a line: O H D W T
	WORD    // client name
	NUMBER  // 123, -50, 10.25
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",
	CODE:    "CODE",
	WORD:    "WORD",
	NUMBER:  "NUMBER",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a lexical token. It stores byte offsets into the source rather
// than the token text.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // 1-indexed
	Column int // 1-indexed
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a view of the token text without copying.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
