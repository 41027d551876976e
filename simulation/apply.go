package simulation

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/banksim/ast"
	"github.com/robinvdvleuten/banksim/ledger"
)

// Apply applies a single command. A refused command writes an ERROR line to
// the output and is remembered in Errors; the returned error is the ledger
// error behind it.
func (s *Simulation) Apply(ctx context.Context, cmd ast.Command) (Outcome, error) {
	outcome, err := s.dispatch(cmd)

	account, fund := commandRef(cmd)
	s.logger(ctx).Debug().
		Err(err).
		Int("line", cmd.Position().Line).
		Str("kind", cmd.Command()).
		Int("account", account).
		Int("fund", fund).
		Stringer("outcome", outcome).
		Msg("transaction processed")

	if err != nil {
		_, _ = fmt.Fprintln(s.out, s.styles.Error("ERROR: "+err.Error()))
		s.errors = append(s.errors, &TransactionError{Command: cmd, Outcome: outcome, Err: err})
	}

	return outcome, err
}

func (s *Simulation) dispatch(cmd ast.Command) (Outcome, error) {
	switch c := cmd.(type) {
	case *ast.Open:
		return s.applyOpen(c)
	case *ast.History:
		return s.applyHistory(c)
	case *ast.Deposit:
		return s.applyDeposit(c)
	case *ast.Withdraw:
		return s.applyWithdraw(c)
	case *ast.Transfer:
		return s.applyTransfer(c)
	default:
		return Rejected, fmt.Errorf("unsupported command %q", cmd.Source())
	}
}

func (s *Simulation) applyOpen(open *ast.Open) (Outcome, error) {
	acct, err := ledger.NewAccount(open.ClientName(), open.ID)
	if err != nil {
		return Rejected, err
	}
	if err := s.store.Insert(acct); err != nil {
		return Rejected, err
	}
	return Applied, nil
}

// applyHistory displays the history, then records the request itself in
// the displayed fund. Whole-account requests are not recorded.
func (s *Simulation) applyHistory(history *ast.History) (Outcome, error) {
	acct, err := s.resolve(history.Ref)
	if err != nil {
		return Rejected, err
	}

	fund := ledger.FundID(history.Ref.Fund)
	acct.DisplayHistory(s.out, fund)
	acct.RecordTransaction(history.Source(), fund)
	return Applied, nil
}

func (s *Simulation) applyDeposit(deposit *ast.Deposit) (Outcome, error) {
	acct, err := s.resolve(deposit.Ref)
	if err != nil {
		return Rejected, err
	}

	fund := ledger.FundID(deposit.Ref.Fund)
	err = acct.Deposit(fund, deposit.Amount)
	return record(acct, fund, deposit.Source(), err)
}

func (s *Simulation) applyWithdraw(withdraw *ast.Withdraw) (Outcome, error) {
	acct, err := s.resolve(withdraw.Ref)
	if err != nil {
		return Rejected, err
	}

	fund := ledger.FundID(withdraw.Ref.Fund)
	err = acct.Withdraw(fund, withdraw.Amount)
	return record(acct, fund, withdraw.Source(), err)
}

// applyTransfer records the outcome on both legs, the target leg first.
func (s *Simulation) applyTransfer(transfer *ast.Transfer) (Outcome, error) {
	source, err := s.resolve(transfer.From)
	if err != nil {
		return Rejected, err
	}
	target, err := s.resolve(transfer.To)
	if err != nil {
		return Rejected, err
	}

	from := ledger.FundID(transfer.From.Fund)
	to := ledger.FundID(transfer.To.Fund)
	err = source.Transfer(target, from, to, transfer.Amount)

	_, _ = record(target, to, transfer.Source(), err)
	return record(source, from, transfer.Source(), err)
}

func (s *Simulation) resolve(ref ast.FundRef) (*ledger.Account, error) {
	acct, ok := s.store.Retrieve(ref.Account)
	if !ok {
		return nil, &ledger.AccountNotFoundError{ID: ref.Account}
	}
	return acct, nil
}

// record appends text to the fund history, marked as failed when err is
// set, and maps err to an outcome.
func record(acct *ledger.Account, fund ledger.FundID, text string, err error) (Outcome, error) {
	if err != nil {
		acct.RecordFailedTransaction(text, fund)
		return Failed, err
	}
	acct.RecordTransaction(text, fund)
	return Applied, nil
}

// commandRef returns the primary account and fund a command acts on, for
// logging.
func commandRef(cmd ast.Command) (account, fund int) {
	switch c := cmd.(type) {
	case *ast.Open:
		return c.ID, ast.NoFund
	case *ast.History:
		return c.Ref.Account, c.Ref.Fund
	case *ast.Deposit:
		return c.Ref.Account, c.Ref.Fund
	case *ast.Withdraw:
		return c.Ref.Account, c.Ref.Fund
	case *ast.Transfer:
		return c.From.Account, c.From.Fund
	default:
		return 0, ast.NoFund
	}
}
