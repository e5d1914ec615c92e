package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
)

// MonthTotal is the aggregated income and outcome of one account in one
// calendar month. Outcome is stored as a positive magnitude.
type MonthTotal struct {
	Account string
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Outcome decimal.Decimal
}

// MonthlyTotals aggregates signed amounts per account and month. Rows
// come back sorted by account, then month.
func MonthlyTotals(records []*models.Transaction) []MonthTotal {
	type key struct {
		account string
		month   string
	}
	totals := make(map[key]*MonthTotal)

	for _, r := range records {
		k := key{account: r.AccountNumber, month: r.Date.Format("2006-01")}
		t, ok := totals[k]
		if !ok {
			t = &MonthTotal{Account: k.account, Month: k.month}
			totals[k] = t
		}
		if r.Amount.IsPositive() {
			t.Income = t.Income.Add(r.Amount)
		} else {
			t.Outcome = t.Outcome.Add(r.Amount.Abs())
		}
	}

	rows := make([]MonthTotal, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Account != rows[j].Account {
			return rows[i].Account < rows[j].Account
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}
