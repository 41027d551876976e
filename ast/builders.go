package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The constructors below build commands programmatically, filling in the
// record text the same way the formatter would render it. They are used by
// tests and by the transaction generator.

// NewOpen creates an Open command.
func NewOpen(lastName, firstName string, id int) *Open {
	return &Open{
		record:    record{Text: fmt.Sprintf("%c %s %s %d", CodeOpen, lastName, firstName, id)},
		LastName:  lastName,
		FirstName: firstName,
		ID:        id,
	}
}

// NewHistory creates a History command for an encoded reference.
func NewHistory(ref int) *History {
	return &History{
		record: record{Text: fmt.Sprintf("%c %d", CodeHistory, ref)},
		Ref:    DecodeFundRef(ref),
	}
}

// NewDeposit creates a Deposit command.
func NewDeposit(ref, amount int) *Deposit {
	return &Deposit{
		record: record{Text: fmt.Sprintf("%c %d %d", CodeDeposit, ref, amount)},
		Ref:    DecodeFundRef(ref),
		Amount: amount,
	}
}

// NewWithdraw creates a Withdraw command.
func NewWithdraw(ref, amount int) *Withdraw {
	return &Withdraw{
		record: record{Text: fmt.Sprintf("%c %d %d", CodeWithdraw, ref, amount)},
		Ref:    DecodeFundRef(ref),
		Amount: amount,
	}
}

// NewTransfer creates a Transfer command.
func NewTransfer(from, amount, to int) *Transfer {
	return &Transfer{
		record: record{Text: fmt.Sprintf("%c %d %d %d", CodeTransfer, from, amount, to)},
		From:   DecodeFundRef(from),
		Amount: amount,
		To:     DecodeTargetRef(to),
	}
}

// WithPosition sets the source position of a command built by one of the
// constructors above.
func WithPosition[C Command](cmd C, pos Position) C {
	if r, ok := any(cmd).(interface{ setPosition(Position) }); ok {
		r.setPosition(pos)
	}
	return cmd
}

func (r *record) setPosition(pos Position) { r.Pos = pos }

// Fields returns the canonical fields of a command, code first. The
// formatter aligns these into columns.
func Fields(cmd Command) []string {
	code := string(cmd.Code())
	switch c := cmd.(type) {
	case *Open:
		return []string{code, c.LastName, c.FirstName, strconv.Itoa(c.ID)}
	case *History:
		return []string{code, c.Ref.String()}
	case *Deposit:
		return []string{code, c.Ref.String(), strconv.Itoa(c.Amount)}
	case *Withdraw:
		return []string{code, c.Ref.String(), strconv.Itoa(c.Amount)}
	case *Transfer:
		return []string{code, c.From.String(), strconv.Itoa(c.Amount), c.To.String()}
	default:
		return strings.Fields(cmd.Source())
	}
}
