package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/vocab"
)

// ErrAmountNotFound means none of the amount pattern families matched.
var ErrAmountNotFound = errors.New("no amount pattern matched")

var (
	accountRegex     = regexp.MustCompile(`(\d+账户|账户\d+|\d+公司账户|\d+个人账户)`)
	accountTailRegex = regexp.MustCompile(`尾号(\d+)`)
	digitsRegex      = regexp.MustCompile(`\d+`)

	fromRegex = regexp.MustCompile(`(.+?)于`)
	toRegex   = regexp.MustCompile(`向(.+?)完成`)

	// Amount pattern families, tried in order. First match wins.
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:收入|支出|人民币|金额为)(-?\d+\.\d{2})(?:元|人民币)?`),
		regexp.MustCompile(`金额为(-?\d+\.\d{2})`),
		regexp.MustCompile(`(?:收入|支出)(-?\d+\.\d{2})(?:人民币|元)`),
	}

	balanceRegex = regexp.MustCompile(`余额(\d+\.\d{2})`)
	bankRegex    = regexp.MustCompile(`【(.*?)】|\[(.*?银行)\]`)
)

// Extractor turns one notification message into a structured transaction.
// It holds no mutable state; the vocabulary is fixed at construction.
type Extractor struct {
	vocab *vocab.Vocab
}

// New returns an extractor using the given vocabulary, or the default
// vocabulary when nil.
func New(v *vocab.Vocab) *Extractor {
	if v == nil {
		v = vocab.Default()
	}
	return &Extractor{vocab: v}
}

// Extract parses a single message into a transaction record. The year
// comes from the resolver since messages only carry a month/day fragment.
//
// Field extraction is a chain of fallback patterns per field; a field
// whose chains all miss either gets a placeholder (account, balance,
// bank) or fails the message (date, amount).
func (e *Extractor) Extract(message string, year int) (*models.Transaction, error) {
	date, err := models.ParseMessageDate(message, year)
	if err != nil {
		return nil, fmt.Errorf("message %q: %w", message, err)
	}

	account := extractAccount(message)

	from := fmt.Sprintf("您尾号%s账户", account)
	if m := fromRegex.FindStringSubmatch(message); m != nil {
		from = m[1]
	}

	to := " "
	if m := toRegex.FindStringSubmatch(message); m != nil {
		to = m[1]
	}

	magnitude, err := extractAmount(message)
	if err != nil {
		return nil, fmt.Errorf("message %q: %w", message, err)
	}

	balance := models.Balance{Value: decimal.Zero}
	if m := balanceRegex.FindStringSubmatch(message); m != nil {
		value, err := decimal.NewFromString(m[1])
		if err != nil {
			return nil, fmt.Errorf("message %q: bad balance %q: %w", message, m[1], err)
		}
		balance = models.Balance{Value: value, Reported: true}
	}

	direction := e.classify(message, magnitude)

	amount, err := decimal.NewFromString(magnitude)
	if err != nil {
		return nil, fmt.Errorf("message %q: bad amount %q: %w", message, magnitude, err)
	}
	// Outcome flips the sign unless the magnitude already carried one;
	// re-applying would double-negate.
	if direction == models.Outcome && !strings.Contains(magnitude, "-") {
		amount = amount.Neg()
	}

	return &models.Transaction{
		Date:          date,
		From:          from,
		To:            to,
		AccountNumber: account,
		Direction:     direction,
		Amount:        amount,
		Balance:       balance,
		BankName:      extractBank(message),
	}, nil
}

// extractAccount pulls the account identifier. Messages that name the
// account pair digits with 账户 in either order; masked card messages
// only give the 尾号 trailing digits. Some variants omit the account
// entirely, which maps to a single-space placeholder rather than an
// error so downstream grouping still works.
func extractAccount(message string) string {
	if m := accountRegex.FindString(message); m != "" {
		return digitsRegex.FindString(m)
	}
	if m := accountTailRegex.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return " "
}

func extractAmount(message string) (string, error) {
	for _, pattern := range amountPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			return m[1], nil
		}
	}
	return "", ErrAmountNotFound
}

// classify decides the direction from the vocabulary. Income keywords
// win over outcome keywords; a signed magnitude forces outcome; a
// message matching neither defaults to income, which callers must not
// read as certainty.
func (e *Extractor) classify(message, magnitude string) models.Direction {
	for _, kw := range e.vocab.Income {
		if strings.Contains(message, kw) {
			return models.Income
		}
	}
	for _, kw := range e.vocab.Outcome {
		if strings.Contains(message, kw) {
			return models.Outcome
		}
	}
	if strings.Contains(magnitude, "-") {
		return models.Outcome
	}
	return models.Income
}

func extractBank(message string) string {
	m := bankRegex.FindStringSubmatch(message)
	if m == nil {
		return "Unknown"
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
