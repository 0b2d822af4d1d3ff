package calendar

import (
	"regexp"
	"strconv"

	"github.com/username/weekend-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// dateRegex is the only accepted input shape: DD/MM/YYYY
var dateRegex = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// Reason explains why a query failed validation
type Reason int

const (
	ReasonNone Reason = iota
	BadFormat
	BadYear
	BadMonth
	BadDay
)

func (r Reason) String() string {
	switch r {
	case BadFormat:
		return "bad-format"
	case BadYear:
		return "bad-year"
	case BadMonth:
		return "bad-month"
	case BadDay:
		return "bad-day"
	default:
		return "none"
	}
}

// ParsedDate is a calendar date that passed validation
type ParsedDate struct {
	Day   int
	Month int
	Year  int
}

// ValidationResult is either Valid (Date, IsFutureYear) or Invalid (Reason)
type ValidationResult struct {
	Valid        bool
	Date         ParsedDate
	IsFutureYear bool
	Reason       Reason
}

func valid(date ParsedDate, future bool) ValidationResult {
	return ValidationResult{Valid: true, Date: date, IsFutureYear: future}
}

func invalid(reason Reason) ValidationResult {
	return ValidationResult{Reason: reason}
}

// Validate checks raw against the DD/MM/YYYY shape and the reference year calendar
func (c *Calendar) Validate(raw string) ValidationResult {
	result := c.validate(raw)
	if !result.Valid {
		c.logger.Debug("Date query rejected",
			zap.String("query", raw),
			zap.Stringer("reason", result.Reason))
	}
	return result
}

func (c *Calendar) validate(raw string) ValidationResult {
	date, ok := parseLexical(raw)
	if !ok {
		return invalid(BadFormat)
	}

	future := date.Year > c.policy.ReferenceYear

	// Later years are a day off by decree, so their day and month are never checked
	if future && c.policy.FutureYearIsDayOff {
		return valid(date, true)
	}

	if !future && date.Year != c.policy.ReferenceYear {
		return invalid(BadYear)
	}

	if date.Month < 1 || date.Month > 12 {
		return invalid(BadMonth)
	}

	if date.Day < 1 || date.Day > dateutil.DaysInMonth(date.Year, date.Month) {
		return invalid(BadDay)
	}

	return valid(date, future)
}

// parseLexical splits DD/MM/YYYY into numbers without range checks
func parseLexical(raw string) (ParsedDate, bool) {
	match := dateRegex.FindStringSubmatch(raw)
	if match == nil {
		return ParsedDate{}, false
	}

	// The regex guarantees digits only, so Atoi cannot fail
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	return ParsedDate{Day: day, Month: month, Year: year}, true
}
