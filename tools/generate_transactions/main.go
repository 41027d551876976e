// Transaction File Generator
//
// This tool generates a large transaction file for performance testing and
// profiling. It opens a set of clients and then mixes deposits, withdrawals,
// transfers and history requests, including some that the bank will refuse.
//
// Usage:
//
//	go run main.go > large.txt
//	go run main.go 2000000 > large.txt  # Specify number of transactions
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/formatter"
	"github.com/robinvdvleuten/banksim/ledger"
)

const (
	defaultTransactions = 100_000
	clients             = 500
)

var (
	firstNames = []string{
		"Juan", "Yusuf", "Ana", "Mei", "Olu", "Sofia", "Lars", "Priya",
		"Kenji", "Amara", "Mateo", "Ingrid", "Tariq", "Chloe", "Ravi",
	}

	lastNames = []string{
		"Arias", "Pisan", "Kowalski", "Nakamura", "Okafor", "Rossi",
		"Lindqvist", "Sharma", "Haddad", "Moreau", "Silva", "Novak",
	}
)

func main() {
	count := defaultTransactions
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			count = n
		}
	}

	tree := &ast.AST{}
	line := 1
	add := func(cmd ast.Command) {
		tree.Commands = append(tree.Commands, ast.WithPosition(cmd, ast.Position{Line: line, Column: 1}))
		line++
	}

	ids := rand.Perm(ledger.MaxAccountID - ledger.MinAccountID + 1)[:clients]
	for i := range ids {
		ids[i] += ledger.MinAccountID
		add(ast.NewOpen(pick(lastNames), pick(firstNames), ids[i]))
	}
	line++ // blank line between the clients and their activity

	refused := 0
	for range count {
		cmd, valid := generateTransaction(ids)
		if !valid {
			refused++
		}
		add(cmd)
	}

	if err := formatter.New().Format(context.Background(), tree, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d clients and %d transactions (%d likely refused)\n", clients, count, refused)
}

// generateTransaction returns a random transaction and whether it refers to
// an account that exists.
func generateTransaction(ids []int) (ast.Command, bool) {
	from := ref(pick(ids))

	switch rand.Intn(20) {
	case 0, 1, 2, 3, 4, 5, 6: // 35% - Deposit
		return ast.NewDeposit(from, randAmount(10, 5000)), true

	case 7, 8, 9, 10, 11: // 25% - Withdrawal, overdrafts included
		return ast.NewWithdraw(from, randAmount(10, 3000)), true

	case 12, 13, 14, 15, 16: // 25% - Transfer
		return ast.NewTransfer(from, randAmount(10, 2000), ref(pick(ids))), true

	case 17: // 5% - History of a single fund or the whole account
		if rand.Intn(2) == 0 {
			return ast.NewHistory(from), true
		}
		return ast.NewHistory(pick(ids)), true

	default: // 10% - Unknown account
		unknown := ledger.MinAccountID + rand.Intn(ledger.MaxAccountID-ledger.MinAccountID+1)
		return ast.NewDeposit(ref(unknown), randAmount(10, 500)), false
	}
}

func ref(account int) int {
	return account*10 + rand.Intn(ledger.NumFunds)
}

func randAmount(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

func pick[T any](values []T) T {
	return values[rand.Intn(len(values))]
}
