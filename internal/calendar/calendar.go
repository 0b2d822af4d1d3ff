package calendar

import (
	"go.uber.org/zap"
)

// DefaultReferenceYear is the year the built-in holiday table covers
const DefaultReferenceYear = 2026

// Classification is the verdict for a single date
type Classification int

const (
	WorkDay Classification = iota + 1
	DayOff
)

func (c Classification) String() string {
	switch c {
	case WorkDay:
		return "workday"
	case DayOff:
		return "day-off"
	default:
		return "unknown"
	}
}

// Rule names the check that made a date a day off
type Rule int

const (
	RuleNone Rule = iota
	RuleWeekend
	RuleHoliday
	RuleFutureYear
)

func (r Rule) String() string {
	switch r {
	case RuleWeekend:
		return "weekend"
	case RuleHoliday:
		return "holiday"
	case RuleFutureYear:
		return "future-year"
	default:
		return "none"
	}
}

// Verdict is a classification together with the rule that produced it
type Verdict struct {
	Classification Classification
	Rule           Rule
}

// Policy holds the named knobs of the classifier
type Policy struct {
	// ReferenceYear is the only year with full validation and holiday data
	ReferenceYear int

	// FutureYearIsDayOff makes any year after ReferenceYear a day off
	// without looking at the calendar.
	FutureYearIsDayOff bool
}

// DefaultPolicy returns the policy the widget has always shipped with
func DefaultPolicy() Policy {
	return Policy{
		ReferenceYear:      DefaultReferenceYear,
		FutureYearIsDayOff: true,
	}
}

// Calendar validates and classifies date queries for one reference year
type Calendar struct {
	policy   Policy
	holidays *HolidaySet
	logger   *zap.Logger
}

// New creates a Calendar. A nil holiday set means no holidays at all.
func New(policy Policy, holidays *HolidaySet, logger *zap.Logger) *Calendar {
	if holidays == nil {
		holidays = NewHolidaySet(policy.ReferenceYear)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Calendar{
		policy:   policy,
		holidays: holidays,
		logger:   logger,
	}
}

// Policy returns the active policy
func (c *Calendar) Policy() Policy {
	return c.policy
}

// Holidays returns the holiday set used for lookups
func (c *Calendar) Holidays() *HolidaySet {
	return c.holidays
}
