package dates

import (
	"fmt"
	"time"

	"github.com/roach88/subsel/internal/queryir"
)

// Today is the SQL anchor for relative dates.
var Today = queryir.Lit{SQL: "TRUNC(SYSDATE)"}

// Expr is a resolved date.
type Expr interface {
	// Operand renders the date; birth is the date-of-birth column.
	Operand(birth queryir.Column) queryir.Operand
	// Evaluate computes the date for a given current day and birth date.
	Evaluate(now, birth time.Time) time.Time
	String() string
}

// Absolute is a calendar date bound as a parameter.
type Absolute struct {
	Date time.Time
}

// Operand implements Expr.
func (a Absolute) Operand(queryir.Column) queryir.Operand {
	return queryir.Expr{
		Template: "TO_DATE(?, 'yyyy-mm-dd')",
		Args:     []queryir.Operand{queryir.Bind{Value: a.Date.Format(time.DateOnly)}},
	}
}

// Evaluate implements Expr.
func (a Absolute) Evaluate(time.Time, time.Time) time.Time {
	return a.Date
}

func (a Absolute) String() string {
	return a.Date.Format(time.DateOnly)
}

// Relative is an offset from today.
type Relative struct {
	Months int
	Days   int
}

// Operand implements Expr.
func (r Relative) Operand(queryir.Column) queryir.Operand {
	var base queryir.Operand = Today
	if r.Months != 0 {
		base = queryir.Expr{Template: "ADD_MONTHS(?, ?)", Args: []queryir.Operand{Today, queryir.Int(r.Months)}}
	}
	switch {
	case r.Days > 0:
		return queryir.Expr{Template: "? + ?", Args: []queryir.Operand{base, queryir.Int(r.Days)}}
	case r.Days < 0:
		return queryir.Expr{Template: "? - ?", Args: []queryir.Operand{base, queryir.Int(-r.Days)}}
	default:
		return base
	}
}

// Evaluate implements Expr.
func (r Relative) Evaluate(now, _ time.Time) time.Time {
	return addMonths(truncate(now), r.Months).AddDate(0, 0, r.Days)
}

func (r Relative) String() string {
	return fmt.Sprintf("today%+dm%+dd", r.Months, r.Days)
}

// Birthday is the subject's n-th birthday.
type Birthday struct {
	Years int
}

// Operand implements Expr.
func (b Birthday) Operand(birth queryir.Column) queryir.Operand {
	return queryir.Expr{Template: "ADD_MONTHS(?, ?)", Args: []queryir.Operand{birth, queryir.Int(12 * b.Years)}}
}

// Evaluate implements Expr.
func (b Birthday) Evaluate(_ time.Time, birth time.Time) time.Time {
	return addMonths(truncate(birth), 12*b.Years)
}

func (b Birthday) String() string {
	return fmt.Sprintf("birthday %d", b.Years)
}

// LastBirthday is the most recent anniversary of birth on or before today.
type LastBirthday struct{}

// Operand implements Expr.
func (LastBirthday) Operand(birth queryir.Column) queryir.Operand {
	return queryir.Expr{
		Template: "ADD_MONTHS(?, 12 * TRUNC(MONTHS_BETWEEN(?, ?) / 12))",
		Args:     []queryir.Operand{birth, Today, birth},
	}
}

// Evaluate implements Expr.
func (LastBirthday) Evaluate(now, birth time.Time) time.Time {
	now, birth = truncate(now), truncate(birth)
	years := now.Year() - birth.Year()
	if addMonths(birth, 12*years).After(now) {
		years--
	}
	return addMonths(birth, 12*years)
}

func (LastBirthday) String() string {
	return "last birthday"
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonths follows Oracle ADD_MONTHS: a day past the end of the target
// month is clamped to its last day, and a last-of-month input stays on the
// last day.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last || d == daysIn(y, m) {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
