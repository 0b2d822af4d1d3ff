package dateutil

import "time"

// localeRU mirrors Date.toLocaleString('ru-RU'): "18.10.2026, 14:05:03"
const localeRU = "02.01.2006, 15:04:05"

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear applies the Gregorian rule
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year.
// Out-of-range months return 0.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// FormatLocaleRU formats a timestamp the way the ru-RU locale prints it
// Example: 18.10.2026, 14:05:03
func FormatLocaleRU(t time.Time) string {
	return t.Format(localeRU)
}
