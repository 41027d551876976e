// Package ledger holds client accounts and the rules for moving money
// between their funds.
//
// Every Account owns ten funds (see FundID). Each fund has an integer balance
// and an append-only list of transaction descriptions. The money market pair
// (MoneyMarket, PrimeMoneyMarket) and the bond pair (LongTermBond,
// ShortTermBond) are linked: a withdrawal that would overdraw one of them is
// covered by moving the shortfall from its partner, provided the partner can
// pay it in full.
//
// Operations never leave a fund negative. A rejected operation returns one of
// the error types in errors.go and leaves every balance as it was.
//
// Accounts are kept in a Store, ordered by ID:
//
//	store := ledger.NewStore()
//	acct, err := ledger.NewAccount("Juan Arias", 2569)
//	if err != nil {
//	    return err
//	}
//	_ = store.Insert(acct)
//	_ = acct.Deposit(ledger.MoneyMarket, 1000)
//	store.Display(os.Stdout)
package ledger

import (
	"fmt"
	"io"
	"strconv"
)

// Account ID bounds.
const (
	MinAccountID = 1000
	MaxAccountID = 9999
)

// failedSuffix is appended to the history entry of a rejected transaction.
const failedSuffix = " (Failed)"

// Account is a client account with ten funds.
type Account struct {
	name  string
	id    int
	funds [NumFunds]fund
}

// NewAccount creates an empty account for the given client.
func NewAccount(name string, id int) (*Account, error) {
	if id < MinAccountID || id > MaxAccountID {
		return nil, &InvalidAccountIDError{ID: id}
	}
	return &Account{name: name, id: id}, nil
}

// Name returns the client name.
func (a *Account) Name() string { return a.name }

// ID returns the account ID.
func (a *Account) ID() int { return a.id }

// Balance returns the balance of a fund, or 0 for an invalid fund.
func (a *Account) Balance(f FundID) int {
	if !f.Valid() {
		return 0
	}
	return a.funds[f].balance
}

// History returns a copy of the transaction history of a fund.
func (a *Account) History(f FundID) []string {
	if !f.Valid() {
		return nil
	}
	out := make([]string, len(a.funds[f].transactions))
	copy(out, a.funds[f].transactions)
	return out
}

// Deposit adds amount to a fund.
func (a *Account) Deposit(f FundID, amount int) error {
	if err := a.check(f, amount); err != nil {
		return err
	}
	a.funds[f].adjust(amount)
	return nil
}

// Withdraw removes amount from a fund. When the fund alone cannot pay,
// the shortfall is moved in from its linked fund first; if there is no
// linked fund or it cannot cover the whole shortfall, nothing changes.
func (a *Account) Withdraw(f FundID, amount int) error {
	if err := a.check(f, amount); err != nil {
		return err
	}

	overdraft := a.funds[f].balance - amount
	if overdraft >= 0 {
		a.funds[f].adjust(-amount)
		return nil
	}

	partner, linked := f.Partner()
	if !linked || a.funds[partner].balance+overdraft < 0 {
		return &InsufficientFundsError{
			Client:  a.name,
			Fund:    f,
			Amount:  amount,
			Balance: a.funds[f].balance,
		}
	}

	a.cover(f, partner, -overdraft)
	a.funds[f].adjust(-amount)
	return nil
}

// cover moves shortfall from partner into f and records the move on both.
// The caller has already checked that partner can pay.
func (a *Account) cover(f, partner FundID, shortfall int) {
	a.funds[partner].adjust(-shortfall)
	a.funds[f].adjust(shortfall)

	moved := "Transferred " + strconv.Itoa(shortfall)
	a.funds[f].record(moved + " from " + partner.Name())
	a.funds[partner].record(moved + " to " + f.Name())
}

// Transfer moves amount from fund from of a to fund to of target. target
// may be a itself. The target fund is validated before anything is
// withdrawn, so the deposit half cannot fail.
func (a *Account) Transfer(target *Account, from, to FundID, amount int) error {
	if target == nil {
		return fmt.Errorf("transfer from account %d: no target account", a.id)
	}
	if !to.Valid() {
		return &InvalidFundError{Client: target.name, Fund: to}
	}
	if err := a.Withdraw(from, amount); err != nil {
		return err
	}
	target.funds[to].adjust(amount)
	return nil
}

// RecordTransaction appends text to the history of a fund. Invalid funds
// are ignored.
func (a *Account) RecordTransaction(text string, f FundID) {
	if f.Valid() {
		a.funds[f].record(text)
	}
}

// RecordFailedTransaction appends text marked as failed to the history of a
// fund. Invalid funds are ignored.
func (a *Account) RecordFailedTransaction(text string, f FundID) {
	a.RecordTransaction(text+failedSuffix, f)
}

// DisplayHistory writes the history of a single fund, or of every fund when
// f is not a valid fund.
func (a *Account) DisplayHistory(w io.Writer, f FundID) {
	_, _ = fmt.Fprintf(w, "Transaction history for %s ", a.name)

	if f.Valid() {
		a.displayFundHistory(w, f)
		return
	}

	_, _ = fmt.Fprintln(w, "by fund.")
	for _, f := range Funds() {
		a.displayFundHistory(w, f)
	}
}

func (a *Account) displayFundHistory(w io.Writer, f FundID) {
	_, _ = fmt.Fprintln(w, a.fundInfo(f))
	for _, txn := range a.funds[f].transactions {
		_, _ = fmt.Fprintf(w, "  %s\n", txn)
	}
}

// DisplayBalances writes the client name, account ID and the balance of
// every fund, followed by a blank line.
func (a *Account) DisplayBalances(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s Account ID: %d\n", a.name, a.id)
	for _, f := range Funds() {
		_, _ = fmt.Fprintf(w, "    %s\n", a.fundInfo(f))
	}
	_, _ = fmt.Fprintln(w)
}

func (a *Account) fundInfo(f FundID) string {
	return f.Name() + ": $" + strconv.Itoa(a.funds[f].balance)
}

// check validates a fund index and amount.
func (a *Account) check(f FundID, amount int) error {
	if !f.Valid() {
		return &InvalidFundError{Client: a.name, Fund: f}
	}
	if amount <= 0 {
		return &InvalidAmountError{Client: a.name, Amount: amount}
	}
	return nil
}
