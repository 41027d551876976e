// Package ast declares the typed transaction records produced by parsing a
// bank transaction file.
//
// Every record in the file starts with a one-character code and becomes one
// Command value:
//
//	O Arias Juan 2569      -> *Open
//	H 25690                -> *History
//	D 25690 1000           -> *Deposit
//	W 25690 1500           -> *Withdraw
//	T 25690 100 25691      -> *Transfer
//
// Records that refer to an existing account pack the account ID and the fund
// index into a single integer; see DecodeFundRef.
package ast

import "strconv"

// Command codes as they appear at the start of a transaction record.
const (
	CodeOpen     = 'O'
	CodeHistory  = 'H'
	CodeDeposit  = 'D'
	CodeWithdraw = 'W'
	CodeTransfer = 'T'
)

// AST is a parsed transaction file. Commands are kept in file order, which
// is also the order they are applied in.
type AST struct {
	Filename string
	Commands []Command
}

// Len returns the number of commands.
func (a *AST) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Commands)
}

// Command is implemented by every transaction record type.
type Command interface {
	Position() Position

	// Source returns the record text as it appeared in the file. This is the
	// text recorded in fund histories.
	Source() string

	// Code returns the one-character command code.
	Code() byte

	// Command returns a lowercase name for the command kind.
	Command() string
}

// record carries the fields shared by every command.
type record struct {
	Pos  Position
	Text string
}

func (r *record) Position() Position { return r.Pos }
func (r *record) Source() string     { return r.Text }

// Open opens a new client account.
//
//	O <last-name> <first-name> <id>
type Open struct {
	record

	LastName  string
	FirstName string
	ID        int
}

var _ Command = &Open{}

func (o *Open) Code() byte      { return CodeOpen }
func (o *Open) Command() string { return "open" }

// ClientName returns the name the account is opened under: first name, then
// last name.
func (o *Open) ClientName() string {
	return o.FirstName + " " + o.LastName
}

// History displays the transaction history of an account, or of a single
// fund when the reference carries one.
//
//	H <account>     all funds
//	H <account><fund>
type History struct {
	record

	Ref FundRef
}

var _ Command = &History{}

func (h *History) Code() byte      { return CodeHistory }
func (h *History) Command() string { return "history" }

// Deposit adds an amount to a fund.
//
//	D <account><fund> <amount>
type Deposit struct {
	record

	Ref    FundRef
	Amount int
}

var _ Command = &Deposit{}

func (d *Deposit) Code() byte      { return CodeDeposit }
func (d *Deposit) Command() string { return "deposit" }

// Withdraw removes an amount from a fund, covering from the linked fund when
// the balance runs short.
//
//	W <account><fund> <amount>
type Withdraw struct {
	record

	Ref    FundRef
	Amount int
}

var _ Command = &Withdraw{}

func (w *Withdraw) Code() byte      { return CodeWithdraw }
func (w *Withdraw) Command() string { return "withdraw" }

// Transfer moves an amount between two funds, in the same or another
// account.
//
//	T <account><fund> <amount> <account><fund>
type Transfer struct {
	record

	From   FundRef
	Amount int
	To     FundRef
}

var _ Command = &Transfer{}

func (t *Transfer) Code() byte      { return CodeTransfer }
func (t *Transfer) Command() string { return "transfer" }

// NoFund marks a FundRef that names an account without a fund.
const NoFund = -1

// MaxAccountID is the largest plain account ID. Encoded references are
// always larger.
const MaxAccountID = 9999

// FundRef is a decoded account+fund reference.
type FundRef struct {
	Account int
	Fund    int
	Encoded int // value as written in the file
}

// DecodeFundRef splits an encoded reference: fund = n mod 10 and
// account = n div 10. Values that fit a plain account ID (n <= 9999) name the
// whole account and carry NoFund.
func DecodeFundRef(n int) FundRef {
	if n <= MaxAccountID {
		return FundRef{Account: n, Fund: NoFund, Encoded: n}
	}
	return FundRef{Account: n / 10, Fund: n % 10, Encoded: n}
}

// DecodeTargetRef splits the target of a transfer. Unlike DecodeFundRef it
// always splits, so a target always names a single fund.
func DecodeTargetRef(n int) FundRef {
	return FundRef{Account: n / 10, Fund: n % 10, Encoded: n}
}

// HasFund reports whether the reference selects a single fund.
func (r FundRef) HasFund() bool {
	return r.Fund != NoFund
}

// String returns the reference in its wire form.
func (r FundRef) String() string {
	return strconv.Itoa(r.Encoded)
}
