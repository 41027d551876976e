package ledger

import (
	"io"

	"golang.org/x/exp/slices"
)

// Store owns the open accounts, keyed and ordered by account ID.
//
// Accounts are kept in a slice sorted by ID. Lookups are a binary search;
// inserts shift the tail of the slice, so inserting n accounts is O(n²) in
// the worst case regardless of the order the IDs arrive in.
type Store struct {
	accounts []*Account
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func compareID(a *Account, id int) int {
	switch {
	case a.id < id:
		return -1
	case a.id > id:
		return 1
	default:
		return 0
	}
}

// Insert adds an account. It fails without changing the store when an
// account with the same ID is already present.
func (s *Store) Insert(acct *Account) error {
	i, found := slices.BinarySearchFunc(s.accounts, acct.id, compareID)
	if found {
		return &DuplicateAccountError{ID: acct.id}
	}
	s.accounts = slices.Insert(s.accounts, i, acct)
	return nil
}

// Retrieve returns the account with exactly the given ID. The account stays
// owned by the store.
func (s *Store) Retrieve(id int) (*Account, bool) {
	i, found := slices.BinarySearchFunc(s.accounts, id, compareID)
	if !found {
		return nil, false
	}
	return s.accounts[i], true
}

// Walk calls fn for every account in ascending ID order until fn returns
// false.
func (s *Store) Walk(fn func(*Account) bool) {
	for _, acct := range s.accounts {
		if !fn(acct) {
			return
		}
	}
}

// Display writes the balances of every account in ascending ID order.
func (s *Store) Display(w io.Writer) {
	s.Walk(func(acct *Account) bool {
		acct.DisplayBalances(w)
		return true
	})
}

// Clear releases every account.
func (s *Store) Clear() {
	clear(s.accounts)
	s.accounts = s.accounts[:0]
}

// IsEmpty reports whether the store holds no accounts.
func (s *Store) IsEmpty() bool {
	return len(s.accounts) == 0
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	return len(s.accounts)
}
