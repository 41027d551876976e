package ast

import "fmt"

// Position is a location in a transaction file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // 1-indexed
	Column   int // 1-indexed
}

// String renders the position as filename:line:column, dropping the
// filename when it is unknown.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
