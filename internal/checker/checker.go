package checker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/history"
	"go.uber.org/zap"
)

// Popup texts shown for a valid date
const (
	MessageDayOff  = "Ура, выходной!"
	MessageWorkDay = "Увы, работать"
)

// Result is what the user sees after pressing "check"
type Result struct {
	// Query is the trimmed input as it was recorded
	Query string

	// Empty is set when nothing was typed; such submits are not recorded
	Empty bool

	Validation calendar.ValidationResult
	Verdict    calendar.Verdict

	// HolidayNote names the holiday when the holiday rule fired
	HolidayNote string

	// InputError highlights the input field; no popup is shown
	InputError bool
	ErrorText  string

	// Message is the popup text, empty when InputError is set
	Message string

	// History is the log after this submit, most-recent-first
	History []history.Entry
}

// ShowPopup reports whether the result is displayed in the popup
func (r Result) ShowPopup() bool {
	return !r.InputError
}

// Checker runs the submit pipeline: record, validate, classify
type Checker struct {
	calendar *calendar.Calendar
	recorder *history.Recorder
	logger   *zap.Logger
}

// New creates a checker
func New(cal *calendar.Calendar, recorder *history.Recorder, logger *zap.Logger) *Checker {
	return &Checker{
		calendar: cal,
		recorder: recorder,
		logger:   logger,
	}
}

// History returns the recorder
func (c *Checker) History() *history.Recorder {
	return c.recorder
}

// Check submits one query. Only storage failures are returned as errors.
func (c *Checker) Check(raw string) (Result, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		c.logger.Debug("Empty query ignored")
		return Result{Empty: true, InputError: true}, nil
	}

	// Every attempt is logged before we know whether it is valid
	entries, err := c.recorder.Record(query)
	if err != nil {
		return Result{}, fmt.Errorf("failed to record query: %w", err)
	}

	result := Result{
		Query:      query,
		History:    entries,
		Validation: c.calendar.Validate(query),
	}

	verdict, ok := c.calendar.Decide(result.Validation, query)
	if !ok {
		result.InputError = true
		result.ErrorText = c.errorText(result.Validation.Reason)

		c.logger.Info("Query rejected",
			zap.String("query", query),
			zap.Stringer("reason", result.Validation.Reason))
		return result, nil
	}

	result.Verdict = verdict
	result.Message = MessageWorkDay
	if verdict.Classification == calendar.DayOff {
		result.Message = MessageDayOff
	}
	if verdict.Rule == calendar.RuleHoliday {
		if h, ok := c.calendar.Holidays().Lookup(query); ok {
			result.HolidayNote = h.Note
		}
	}

	c.logger.Info("Query checked",
		zap.String("query", query),
		zap.Stringer("classification", verdict.Classification),
		zap.Stringer("rule", verdict.Rule))

	return result, nil
}

func (c *Checker) errorText(reason calendar.Reason) string {
	switch reason {
	case calendar.BadFormat:
		return "Неверный формат ввода"
	case calendar.BadYear:
		return "Год должен быть " + strconv.Itoa(c.calendar.Policy().ReferenceYear)
	case calendar.BadMonth:
		return "Неверный месяц"
	case calendar.BadDay:
		return "Неверный день"
	default:
		return ""
	}
}
