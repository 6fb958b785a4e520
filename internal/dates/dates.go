// Package dates provides canonical date parsing and formatting helpers.
//
// Every component that needs a date key goes through this package:
//   - log documents (header rendering, chronological comparison)
//   - the log store (monthly document selection)
//   - the capture session (manual date correction)
//   - the CLI (date arguments)
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical date key layout.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return time.Parse(Layout, s)
}

// Format formats a time as a YYYY-MM-DD key.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Weekday returns the English weekday name used in section headers.
func Weekday(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// MonthKey returns the YYYY-MM key that selects a monthly document.
func MonthKey(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}

// FromParts builds a date key from numeric parts, rejecting values that
// time.Date would silently normalize (e.g. 2/30).
func FromParts(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return Format(t), true
}

// ParseDateArg parses a user supplied date which can be:
//   - empty (defaults to now)
//   - a relative keyword: today/yesterday/tomorrow, 오늘/어제/내일
//   - "YYYY-MM-DD"
//   - "M/D" in the year of now
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return startOfDay(now), nil
	}

	if res, ok := ResolveRelativeDateKeyword(arg, now); ok {
		return res.Date, nil
	}

	if parsed, err := ParseDate(arg); err == nil {
		return parsed, nil
	}

	if m, d, ok := strings.Cut(arg, "/"); ok {
		month, mErr := strconv.Atoi(strings.TrimSpace(m))
		day, dErr := strconv.Atoi(strings.TrimSpace(d))
		if mErr == nil && dErr == nil {
			if key, ok := FromParts(now.Year(), month, day); ok {
				return time.Parse(Layout, key)
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: '%s', use YYYY-MM-DD, M/D or today/yesterday", ErrInvalidDate, arg)
}

// NormalizeDateArg is ParseDateArg followed by Format.
func NormalizeDateArg(arg string, now time.Time) (string, error) {
	t, err := ParseDateArg(arg, now)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}
