// Package dates provides the calendar-month arithmetic used to partition the
// trend window: month boundaries and month offsets with day-of-month clamping.
package dates

import "time"

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthBounds returns the first day of t's month and the first day of the
// following month. The end bound is exclusive.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// AddMonths shifts t by n months (n may be negative), clamping the day of
// month to the last valid day of the target month. Unlike time.AddDate, the
// result never spills into the following month: Jan 31 plus one month is
// Feb 28 (or Feb 29 in a leap year).
func AddMonths(t time.Time, n int) time.Time {
	idx := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(idx, 12)
	month := floorMod(idx, 12) + 1

	day := t.Day()
	if last := LastDay(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

// LastDay returns the number of days in the given month.
func LastDay(year int, month time.Month) int {
	if month == time.February && isLeap(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

// Label formats a month for chart axes, e.g. "Mar 2025".
func Label(t time.Time) string {
	return t.Format("Jan 2006")
}

// isLeap applies the Gregorian rule: divisible by 4, except centuries not
// divisible by 400.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// floorDiv and floorMod implement floored division so negative month offsets
// land in the correct year.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
