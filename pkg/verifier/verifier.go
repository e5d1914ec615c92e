package verifier

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
)

// NoTransactionsMessage is returned as the status when there is nothing
// to verify. It is a status, not an error.
const NoTransactionsMessage = "No transactions to verify."

// relTolerance is the relative tolerance for balance comparison, wide
// enough to absorb formatting noise in the source messages.
var relTolerance = decimal.NewFromFloat(1e-5)

// Verifier replays a running balance per account and annotates each
// record with a note when the accumulated total disagrees with the
// balance the bank reported.
type Verifier struct {
	logger *log.Logger
}

// New returns a verifier that reports discrepancies to the given logger.
func New(logger *log.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify partitions records by account number, replays each account's
// balance chronologically and fills Note and RunningBalance. It returns
// annotated copies in the input order; callers keep their records
// untouched. The string is a human-readable status, empty on a normal
// run.
//
// Balance checks only fire on the last record of each calendar day:
// messages within one day arrive in time order but are not individually
// reconciled. On a mismatch against a reported balance the accumulator
// is resynchronized to the reported value so one gap does not flag every
// later transaction; the cost is that a single genuinely wrong record is
// reported once and then forgiven.
func (v *Verifier) Verify(records []*models.Transaction) ([]*models.Transaction, string) {
	if len(records) == 0 {
		return nil, NoTransactionsMessage
	}

	out := make([]*models.Transaction, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}

	// Partition by account, preserving first-seen account order so runs
	// are deterministic.
	byAccount := make(map[string][]*models.Transaction)
	var accounts []string
	for _, r := range out {
		if _, ok := byAccount[r.AccountNumber]; !ok {
			accounts = append(accounts, r.AccountNumber)
		}
		byAccount[r.AccountNumber] = append(byAccount[r.AccountNumber], r)
	}

	for _, account := range accounts {
		v.replay(account, byAccount[account])
	}
	return out, ""
}

// replay walks one account's records in date order, carrying two
// accumulators: running resynchronizes to the reported balance after a
// logged discrepancy, runningOnly never does and is what RunningBalance
// exposes.
func (v *Verifier) replay(account string, records []*models.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	seed := records[0]
	running := seed.Balance.Value
	runningOnly := seed.Balance.Value
	seed.Note = ""
	seed.RunningBalance = runningOnly

	for i := 1; i < len(records); i++ {
		r := records[i]
		running = running.Add(r.Amount)
		runningOnly = runningOnly.Add(r.Amount)
		r.RunningBalance = runningOnly

		// Only the last record of a day is reconciled.
		if i < len(records)-1 && records[i+1].Date.Equal(r.Date) {
			continue
		}

		if isClose(running, r.Balance.Value) {
			r.Note = ""
			continue
		}

		if !r.Balance.Reported {
			// Nothing to compare against: the accumulator is
			// authoritative, record the computed balance.
			r.Balance = models.Balance{Value: running, Reported: false}
			r.Note = fmt.Sprintf("没有余额信息,计算应为: %s", running.StringFixed(2))
			continue
		}

		reported := r.Balance.Value
		v.logger.Warn("balance discrepancy",
			"account", account,
			"date", r.ISODate(),
			"expected", running.StringFixed(2),
			"reported", reported.StringFixed(2))
		r.Note = fmt.Sprintf("阶段性余额不一致,预计应为%s 该阶段内差额为 %s",
			running.StringFixed(2), reported.Sub(running).StringFixed(2))
		running = reported
	}
}

// isClose mirrors a relative-tolerance float comparison: |a-b| is
// measured against the larger magnitude of the two values.
func isClose(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	scale := decimal.Max(a.Abs(), b.Abs())
	return diff.LessThanOrEqual(relTolerance.Mul(scale))
}
