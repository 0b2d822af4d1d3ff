package calendar

import (
	"time"

	"github.com/username/weekend-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// Classify returns DayOff when the date falls on a weekend or when raw is
// literally listed in the holiday set.
func (c *Calendar) Classify(date ParsedDate, raw string) Classification {
	return c.classify(date, raw).Classification
}

// Decide turns a validation result into a verdict.
// ok is false when the result is not Valid.
func (c *Calendar) Decide(result ValidationResult, raw string) (verdict Verdict, ok bool) {
	if !result.Valid {
		return Verdict{}, false
	}

	if result.IsFutureYear && c.policy.FutureYearIsDayOff {
		verdict = Verdict{Classification: DayOff, Rule: RuleFutureYear}
	} else {
		verdict = c.classify(result.Date, raw)
	}

	c.logger.Debug("Date classified",
		zap.String("query", raw),
		zap.Stringer("classification", verdict.Classification),
		zap.Stringer("rule", verdict.Rule))

	return verdict, true
}

// IsWeekend reports whether the date is a Saturday or Sunday
func IsWeekend(date ParsedDate) bool {
	return dateutil.IsWeekend(date.Time())
}

func (c *Calendar) classify(date ParsedDate, raw string) Verdict {
	if IsWeekend(date) {
		return Verdict{Classification: DayOff, Rule: RuleWeekend}
	}
	if c.holidays.Contains(raw) {
		return Verdict{Classification: DayOff, Rule: RuleHoliday}
	}
	return Verdict{Classification: WorkDay, Rule: RuleNone}
}

// Time returns the date at midnight UTC
func (d ParsedDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
