package resolver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
)

var (
	anchorRegex = regexp.MustCompile(`(\d{4})-`)
	monthRegex  = regexp.MustCompile(`(\d+)月`)
)

// YearResolver assigns a calendar year to month-only date fragments.
// Notification exports are chronological within a file but almost never
// state the year; a drop in the month number signals a year boundary, and
// the occasional explicit "YYYY-" stamp calibrates the cursor.
//
// A resolver holds per-file state. Construct one per file and discard it.
type YearResolver struct {
	currentYear int
	lastMonth   int
	stdYear     int
	anchored    bool
}

// New returns a resolver seeded with the year the file is assumed to
// start in.
func New(initialYear int) *YearResolver {
	return &YearResolver{currentYear: initialYear}
}

// Resolve walks the file's lines in order and pairs every line that
// carries a N月 fragment with its inferred year. Lines without a month
// fragment carry no date at all and are dropped, mirroring the exports:
// such lines are continuation noise, not messages.
//
// A known limitation: a single out-of-order month in the middle of a file
// bumps the year cursor for the rest of the file unless a later anchor
// clamps it back. That is accepted rather than masked.
func (r *YearResolver) Resolve(lines []string) []models.DatedMessage {
	var out []models.DatedMessage
	for _, line := range lines {
		// An explicit year stamp is a calibration signal, not an
		// immediate correction.
		if m := anchorRegex.FindStringSubmatch(line); m != nil {
			r.stdYear, _ = strconv.Atoi(m[1])
			r.anchored = true
		}

		m := monthRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		if month < r.lastMonth {
			r.currentYear++
			// The anchor is authoritative once available: it caps the
			// drift the rollover heuristic can accumulate.
			if r.anchored && r.currentYear > r.stdYear {
				r.currentYear = r.stdYear
			}
		}
		r.lastMonth = month
		out = append(out, models.DatedMessage{Text: line, Year: r.currentYear})
	}
	return out
}

// SortByDate orders resolved messages from all files into one
// chronological sequence. Ties keep their input order. A message without
// a parsable month/day fragment at this stage is an upstream contract
// violation and fails the whole merge.
func SortByDate(msgs []models.DatedMessage) ([]models.DatedMessage, error) {
	type keyed struct {
		msg  models.DatedMessage
		date int64
	}
	keys := make([]keyed, 0, len(msgs))
	for _, msg := range msgs {
		date, err := models.ParseMessageDate(msg.Text, msg.Year)
		if err != nil {
			return nil, fmt.Errorf("unsortable message %q: %w", msg.Text, err)
		}
		keys = append(keys, keyed{msg: msg, date: date.Unix()})
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].date < keys[j].date
	})

	sorted := make([]models.DatedMessage, len(keys))
	for i, k := range keys {
		sorted[i] = k.msg
	}
	return sorted, nil
}
