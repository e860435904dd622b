// Package dateutils provides the date layouts and window arithmetic used by
// the loaders and aggregators.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts found in bank exports and on the command line.
const (
	DateLayoutISO          = "2006-01-02"
	DateLayoutEuropean     = "02.01.2006"
	DateTimeLayoutEuropean = "02.01.2006 15:04:05"
	DateLayoutDashed       = "02-01-2006"
)

// PaymentDateFormats lists the layouts accepted for a payment date cell.
var PaymentDateFormats = []string{
	DateLayoutEuropean,
	DateTimeLayoutEuropean,
	DateLayoutDashed,
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the value and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespace.ReplaceAllString(dateStr, " ")
}

// ParseInLocation parses dateStr with a single layout after cleaning it.
func ParseInLocation(layout, dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(layout, CleanDateString(dateStr), loc)
}

// ParseAny tries each layout in order and returns the first successful parse.
func ParseAny(dateStr string, layouts []string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// StartOfDay returns midnight of the given date.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// Within reports whether t lies in [start, end], both ends inclusive.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ToEuropeanFormat formats a time.Time as DD.MM.YYYY
func ToEuropeanFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutEuropean)
}
