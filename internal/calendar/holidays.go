package calendar

import (
	"slices"

	"github.com/samber/lo"
)

// Holiday is a single non-working date written as DD/MM/YYYY
type Holiday struct {
	Date string `yaml:"date"`
	Note string `yaml:"note,omitempty"`
}

// HolidaySet is an immutable set of holiday strings for one year.
// Lookups compare the literal string, so "1/1/2026" never matches "01/01/2026".
type HolidaySet struct {
	year int
	days map[string]Holiday
}

// defaultHolidays2026 is the production calendar shipped with the widget
var defaultHolidays2026 = []Holiday{
	{Date: "01/01/2026", Note: "Новогодние каникулы"},
	{Date: "02/01/2026", Note: "Новогодние каникулы"},
	{Date: "03/01/2026", Note: "Новогодние каникулы"},
	{Date: "04/01/2026", Note: "Новогодние каникулы"},
	{Date: "05/01/2026", Note: "Новогодние каникулы"},
	{Date: "06/01/2026", Note: "Новогодние каникулы"},
	{Date: "07/01/2026", Note: "Рождество Христово"},
	{Date: "08/01/2026", Note: "Новогодние каникулы"},
	{Date: "23/02/2026", Note: "День защитника Отечества"},
	{Date: "08/03/2026", Note: "Международный женский день"},
	{Date: "09/03/2026", Note: "Перенос выходного"},
	{Date: "01/05/2026", Note: "Праздник Весны и Труда"},
	{Date: "04/05/2026", Note: "Перенос выходного"},
	{Date: "09/05/2026", Note: "День Победы"},
	{Date: "11/05/2026", Note: "Перенос выходного"},
	{Date: "12/06/2026", Note: "День России"},
	{Date: "04/11/2026", Note: "День народного единства"},
}

// DefaultHolidays returns the built-in 2026 holiday set
func DefaultHolidays() *HolidaySet {
	return NewHolidaySetFrom(DefaultReferenceYear, defaultHolidays2026)
}

// NewHolidaySet builds a set from bare date strings. Duplicates collapse.
func NewHolidaySet(year int, dates ...string) *HolidaySet {
	holidays := lo.Map(dates, func(d string, _ int) Holiday {
		return Holiday{Date: d}
	})
	return NewHolidaySetFrom(year, holidays)
}

// NewHolidaySetFrom builds a set from holidays with notes. Later duplicates win.
func NewHolidaySetFrom(year int, holidays []Holiday) *HolidaySet {
	return &HolidaySet{
		year: year,
		days: lo.SliceToMap(holidays, func(h Holiday) (string, Holiday) {
			return h.Date, h
		}),
	}
}

// Year returns the year the set was built for
func (s *HolidaySet) Year() int {
	return s.year
}

// Contains reports whether raw is literally one of the holiday strings
func (s *HolidaySet) Contains(raw string) bool {
	_, ok := s.days[raw]
	return ok
}

// Lookup returns the holiday stored under raw
func (s *HolidaySet) Lookup(raw string) (Holiday, bool) {
	h, ok := s.days[raw]
	return h, ok
}

// Len returns the number of holidays
func (s *HolidaySet) Len() int {
	return len(s.days)
}

// List returns holidays in calendar order
func (s *HolidaySet) List() []Holiday {
	list := lo.Values(s.days)
	slices.SortFunc(list, func(a, b Holiday) int {
		return sortKey(a.Date) - sortKey(b.Date)
	})
	return list
}

// sortKey turns DD/MM/YYYY into YYYYMMDD. Malformed strings sort first.
func sortKey(date string) int {
	parsed, ok := parseLexical(date)
	if !ok {
		return 0
	}
	return parsed.Year*10000 + parsed.Month*100 + parsed.Day
}
