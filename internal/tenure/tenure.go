// Package tenure computes how long an employee has been with the company.
package tenure

import "time"

// Tenure is the elapsed calendar time between a hire date and a reference date.
type Tenure struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Since returns the tenure between hire and the current local date.
func Since(hire time.Time) Tenure {
	return Between(hire, time.Now())
}

// Between returns the calendar difference between hire and ref.
//
// Whole years are taken first, then whole months from the advanced date and
// finally the remaining days. Month arithmetic clamps to the last day of the
// month, so Jan 31 plus one month is Feb 28 (or 29). The day remainder is
// reported modulo 30, which means a 30-day remainder in a 31-day month comes
// back as 0. A hire date after ref yields the zero Tenure.
func Between(hire, ref time.Time) Tenure {
	start := DateOf(hire)
	end := DateOf(ref)
	if end.Before(start) {
		return Tenure{}
	}

	cursor := start

	years := end.Year() - cursor.Year()
	next := addMonths(cursor, years*12)
	if next.After(end) {
		years--
		next = addMonths(cursor, years*12)
	}
	cursor = next

	months := (end.Year()-cursor.Year())*12 + int(end.Month()) - int(cursor.Month())
	next = addMonths(cursor, months)
	if next.After(end) {
		months--
		next = addMonths(cursor, months)
	}
	cursor = next

	days := int(end.Sub(cursor).Hours() / 24)

	return Tenure{
		Years:  years,
		Months: months % 12,
		Days:   days % 30,
	}
}

// DateOf strips the time of day from t, keeping the calendar date as seen in
// t's own location, and returns it as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the server's local calendar date as midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
