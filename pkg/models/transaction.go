package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction as money coming in or going out.
type Direction string

const (
	Income  Direction = "income"
	Outcome Direction = "outcome"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// IsValid reports whether the direction is one of the known values.
func (d Direction) IsValid() bool {
	return d == Income || d == Outcome
}

// DatedMessage is a raw notification line paired with its resolved year.
// The year is inferred by the resolver; the text itself only carries a
// month/day fragment.
type DatedMessage struct {
	Text string
	Year int
}

// Balance is a reported account balance. Notifications from some banks
// omit the balance entirely, so absence is tracked explicitly instead of
// overloading a zero value.
type Balance struct {
	Value    decimal.Decimal
	Reported bool
}

// String formats the balance for report output. An unreported balance
// prints as 0.00, matching the source notification logs.
func (b Balance) String() string {
	return b.Value.StringFixed(2)
}

// Transaction is one parsed bank notification. Note and RunningBalance
// are empty until the record has been through the verifier.
type Transaction struct {
	Date          time.Time
	From          string
	To            string
	AccountNumber string
	Direction     Direction
	Amount        decimal.Decimal
	Balance       Balance
	BankName      string

	// Annotations added by the verifier.
	Note           string
	RunningBalance decimal.Decimal
}

// ISODate returns the transaction date in YYYY-MM-DD form.
func (t *Transaction) ISODate() string {
	return t.Date.Format("2006-01-02")
}

// Clone returns a copy of the transaction. The verifier annotates copies
// so that caller-owned records stay untouched.
func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}
