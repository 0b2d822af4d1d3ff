package checker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/history"
	"go.uber.org/zap/zaptest"
)

func newTestChecker(t *testing.T) *Checker {
	logger := zaptest.NewLogger(t)
	clock := func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	cal := calendar.New(calendar.DefaultPolicy(), calendar.DefaultHolidays(), logger)
	rec := history.NewRecorder(history.NewMemoryStore(), logger, history.WithClock(clock))
	return New(cal, rec, logger)
}

func historyLen(t *testing.T, c *Checker) int {
	n, err := c.History().Len()
	require.NoError(t, err)
	return n
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantError   bool
		wantReason  calendar.Reason
		wantMessage string
		wantErrText string
	}{
		{"saturday", "03/01/2026", false, calendar.ReasonNone, MessageDayOff, ""},
		{"monday after holidays", "12/01/2026", false, calendar.ReasonNone, MessageWorkDay, ""},
		{"monday in holiday list", "05/01/2026", false, calendar.ReasonNone, MessageDayOff, ""},
		{"new year", "01/01/2026", false, calendar.ReasonNone, MessageDayOff, ""},
		{"christmas", "25/12/2026", false, calendar.ReasonNone, MessageWorkDay, ""},
		{"future year", "15/06/2031", false, calendar.ReasonNone, MessageDayOff, ""},
		{"bad format", "1/1/2026", true, calendar.BadFormat, "", "Неверный формат ввода"},
		{"bad year", "01/01/2025", true, calendar.BadYear, "", "Год должен быть 2026"},
		{"bad month", "13/13/2026", true, calendar.BadMonth, "", "Неверный месяц"},
		{"bad day", "29/02/2026", true, calendar.BadDay, "", "Неверный день"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChecker(t)

			result, err := c.Check(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantError, result.InputError)
			assert.Equal(t, !tt.wantError, result.ShowPopup())
			assert.Equal(t, tt.wantReason, result.Validation.Reason)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.wantErrText, result.ErrorText)

			// Valid or not, exactly one entry with the raw text
			require.Len(t, result.History, 1)
			assert.Equal(t, tt.input, result.History[0].Value)
			assert.Equal(t, "18.10.2026, 12:00:00", result.History[0].Timestamp)
			assert.Equal(t, 1, historyLen(t, c))
		})
	}
}

func TestChecker_ChristmasScenario(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.Check("25/12/2026")
	require.NoError(t, err)

	assert.Equal(t, calendar.WorkDay, result.Verdict.Classification)
	assert.Equal(t, MessageWorkDay, result.Message)
	require.Len(t, result.History, 1)
	assert.Equal(t, "25/12/2026", result.History[0].Value)
}

func TestChecker_HolidayNote(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.Check("07/01/2026")
	require.NoError(t, err)
	assert.Equal(t, calendar.RuleHoliday, result.Verdict.Rule)
	assert.Equal(t, "Рождество Христово", result.HolidayNote)

	// Weekend wins over the holiday rule, so no note
	result, err = c.Check("03/01/2026")
	require.NoError(t, err)
	assert.Equal(t, calendar.RuleWeekend, result.Verdict.Rule)
	assert.Empty(t, result.HolidayNote)
}

func TestChecker_BadMonthScenario(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.Check("13/13/2026")
	require.NoError(t, err)

	assert.False(t, result.Validation.Valid)
	assert.Equal(t, calendar.BadMonth, result.Validation.Reason)
	assert.True(t, result.InputError)
	assert.False(t, result.ShowPopup())
	assert.Empty(t, result.Message)
	assert.Equal(t, 1, historyLen(t, c))
}

func TestChecker_EmptyInputNotRecorded(t *testing.T) {
	c := newTestChecker(t)

	for _, input := range []string{"", "   ", "\t\n"} {
		result, err := c.Check(input)
		require.NoError(t, err)
		assert.True(t, result.Empty)
		assert.True(t, result.InputError)
		assert.False(t, result.ShowPopup())
	}

	assert.Equal(t, 0, historyLen(t, c))
}

func TestChecker_InputIsTrimmedBeforeRecording(t *testing.T) {
	c := newTestChecker(t)

	result, err := c.Check("  03/01/2026 ")
	require.NoError(t, err)

	assert.Equal(t, "03/01/2026", result.Query)
	assert.Equal(t, MessageDayOff, result.Message)
	assert.Equal(t, "03/01/2026", result.History[0].Value)
}

func TestChecker_HistoryAccumulates(t *testing.T) {
	c := newTestChecker(t)

	inputs := []string{"01/01/2026", "oops", "25/12/2026", "13/13/2026"}
	var last Result
	for _, in := range inputs {
		var err error
		last, err = c.Check(in)
		require.NoError(t, err)
	}

	require.Len(t, last.History, len(inputs))
	for i, e := range last.History {
		assert.Equal(t, inputs[len(inputs)-1-i], e.Value)
	}

	require.NoError(t, c.History().Clear())
	assert.Equal(t, 0, historyLen(t, c))
}

type failingStore struct {
	history.Store
}

func (failingStore) Get(string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestChecker_StorageFailure(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cal := calendar.New(calendar.DefaultPolicy(), calendar.DefaultHolidays(), logger)
	c := New(cal, history.NewRecorder(failingStore{}, logger), logger)

	_, err := c.Check("01/01/2026")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
