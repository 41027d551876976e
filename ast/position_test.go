package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPositionString(t *testing.T) {
	assert.Equal(t, "trans.txt:3:7", Position{Filename: "trans.txt", Line: 3, Column: 7}.String())
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
}
