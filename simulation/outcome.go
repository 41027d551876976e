package simulation

import "fmt"

// Outcome is the result of applying one command.
type Outcome int

const (
	// Applied means the command took effect.
	Applied Outcome = iota

	// Failed means the account was found but the ledger refused the
	// operation. The record is kept in the fund history marked as failed.
	Failed

	// Rejected means the command never reached an account: the account
	// does not exist, or it could not be opened.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Summary counts the outcomes of a run.
type Summary struct {
	Applied  int
	Failed   int
	Rejected int
}

// Total returns the number of commands processed.
func (s Summary) Total() int {
	return s.Applied + s.Failed + s.Rejected
}

func (s *Summary) add(o Outcome) {
	switch o {
	case Applied:
		s.Applied++
	case Failed:
		s.Failed++
	case Rejected:
		s.Rejected++
	}
}
