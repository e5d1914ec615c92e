package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrDateNotFound means a message carries no N月N日 fragment.
	ErrDateNotFound = errors.New("no month/day fragment in message")
	// ErrInvalidDate means the fragment names an impossible calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

var monthDayRegex = regexp.MustCompile(`(\d+)月(\d+)日`)

// ParseMessageDate combines the first N月N日 fragment of a message with a
// resolved year. The fragment never carries the year itself.
func ParseMessageDate(text string, year int) (time.Time, error) {
	m := monthDayRegex.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, ErrDateNotFound
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values (e.g. 6月31日 becomes July
	// 1st), so round-trip the components to reject impossible dates.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d月%d日 in %d", ErrInvalidDate, month, day, year)
	}
	return date, nil
}
