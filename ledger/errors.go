package ledger

import (
	"fmt"
	"strconv"
)

// Error types for rejected account operations. Every operation that returns
// one of these has left all balances untouched.

// InvalidFundError is returned when a fund index is outside 0..9.
type InvalidFundError struct {
	Client string
	Fund   FundID
}

func (e *InvalidFundError) Error() string {
	fund := strconv.Itoa(int(e.Fund))
	if e.Fund == NoFund {
		fund = "(none given)"
	}
	if e.Client == "" {
		return fmt.Sprintf("Invalid fund %s. Transaction refused.", fund)
	}
	return fmt.Sprintf("Invalid fund %s for %s. Transaction refused.", fund, e.Client)
}

// InvalidAmountError is returned when an amount is zero or negative.
type InvalidAmountError struct {
	Client string
	Amount int
}

func (e *InvalidAmountError) Error() string {
	if e.Client == "" {
		return fmt.Sprintf("Invalid amount %d. Transaction refused.", e.Amount)
	}
	return fmt.Sprintf("Invalid amount %d for %s. Transaction refused.", e.Amount, e.Client)
}

// InsufficientFundsError is returned when a withdrawal cannot be met from the
// fund, even after trying to cover from its linked fund.
type InsufficientFundsError struct {
	Client  string
	Fund    FundID
	Amount  int
	Balance int // balance of the fund at the time of the attempt
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Not enough funds to withdraw %d from %s %s", e.Amount, e.Client, e.Fund.Name())
}

// AccountNotFoundError is returned when no account has the requested ID.
type AccountNotFoundError struct {
	ID int
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("Account %d not found. Transaction refused.", e.ID)
}

// DuplicateAccountError is returned when opening an account whose ID is
// already in use.
type DuplicateAccountError struct {
	ID int
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("Account %d is already open. Transaction refused.", e.ID)
}

// InvalidAccountIDError is returned when an account ID is outside
// [MinAccountID, MaxAccountID].
type InvalidAccountIDError struct {
	ID int
}

func (e *InvalidAccountIDError) Error() string {
	return fmt.Sprintf("Invalid ID number %d. Transaction refused.", e.ID)
}
