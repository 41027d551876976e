package ledger

import "strconv"

// FundID indexes one of the ten funds held by every account.
type FundID int

const (
	NoFund FundID = iota - 1
	MoneyMarket
	PrimeMoneyMarket
	LongTermBond
	ShortTermBond
	IndexFund500
	CapitalValueFund
	GrowthEquityFund
	GrowthIndexFund
	ValueFund
	ValueStockIndex
)

// NumFunds is the number of fund slots in an account.
const NumFunds = 10

var fundNames = [NumFunds]string{
	MoneyMarket:      "Money Market",
	PrimeMoneyMarket: "Prime Money Market",
	LongTermBond:     "Long-Term Bond",
	ShortTermBond:    "Short-Term Bond",
	IndexFund500:     "500 Index Fund",
	CapitalValueFund: "Capital Value Fund",
	GrowthEquityFund: "Growth Equity Fund",
	GrowthIndexFund:  "Growth Index Fund",
	ValueFund:        "Value Fund",
	ValueStockIndex:  "Value Stock Index",
}

// Valid reports whether f indexes an existing fund slot.
func (f FundID) Valid() bool {
	return f >= MoneyMarket && f < NumFunds
}

// Name returns the display name of the fund, or "" for an invalid index.
func (f FundID) Name() string {
	if !f.Valid() {
		return ""
	}
	return fundNames[f]
}

// String returns the fund name, falling back to the raw index.
func (f FundID) String() string {
	if !f.Valid() {
		return "fund " + strconv.Itoa(int(f))
	}
	return fundNames[f]
}

// Partner returns the fund linked to f for overdraft cover. Only the two
// money market funds and the two bond funds are linked.
func (f FundID) Partner() (FundID, bool) {
	switch f {
	case MoneyMarket:
		return PrimeMoneyMarket, true
	case PrimeMoneyMarket:
		return MoneyMarket, true
	case LongTermBond:
		return ShortTermBond, true
	case ShortTermBond:
		return LongTermBond, true
	default:
		return NoFund, false
	}
}

// Funds returns every fund in index order.
func Funds() []FundID {
	funds := make([]FundID, NumFunds)
	for i := range funds {
		funds[i] = FundID(i)
	}
	return funds
}

// fund is the balance and append-only history of a single fund slot.
type fund struct {
	balance      int
	transactions []string
}

func (f *fund) adjust(delta int) {
	f.balance += delta
}

func (f *fund) record(text string) {
	f.transactions = append(f.transactions, text)
}
