package errors_test

import (
	"fmt"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/errors"
	"github.com/robinvdvleuten/banksim/ledger"
	"github.com/robinvdvleuten/banksim/simulation"
)

func ExampleTextFormatter() {
	err := &simulation.TransactionError{
		Command: ast.WithPosition(ast.NewDeposit(25690, 100), ast.Position{Filename: "bank.txt", Line: 12, Column: 1}),
		Outcome: simulation.Rejected,
		Err:     &ledger.AccountNotFoundError{ID: 2569},
	}

	fmt.Print(errors.NewTextFormatter(nil).Format(err))
	// Output:
	// bank.txt:12: Account 2569 not found. Transaction refused.
	//
	//    D 25690 100
}

func ExampleJSONFormatter() {
	errs := []error{
		&ledger.InvalidAccountIDError{ID: 99999},
	}

	fmt.Println(errors.NewJSONFormatter().FormatAll(errs))
	// Output:
	// [
	//   {
	//     "type": "*ledger.InvalidAccountIDError",
	//     "message": "Invalid ID number 99999. Transaction refused.",
	//     "details": {
	//       "account": 99999
	//     }
	//   }
	// ]
}
