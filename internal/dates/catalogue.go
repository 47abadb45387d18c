package dates

import (
	"time"

	"github.com/roach88/subsel/internal/ir"
)

// Symbol is a named date in the symbolic catalogue.
type Symbol struct {
	Name string
	// Sentinel, when set, is returned instead of a date.
	Sentinel ir.ResolvedValue
	// Months and Days offset today when Fixed is zero.
	Months int
	Days   int
	// Fixed is a calendar date for milestones that do not move.
	Fixed time.Time
}

func (s Symbol) value() ir.ResolvedValue {
	switch {
	case s.Sentinel != nil:
		return s.Sentinel
	case !s.Fixed.IsZero():
		return ir.NewConcrete[Expr](Absolute{Date: s.Fixed})
	default:
		return ir.NewConcrete[Expr](Relative{Months: s.Months, Days: s.Days})
	}
}

func fixed(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Catalogue returns the built-in symbolic dates.
func Catalogue() []Symbol {
	return []Symbol{
		{Name: "today"},
		{Name: "yesterday", Days: -1},
		{Name: "tomorrow", Days: 1},
		{Name: "null", Sentinel: ir.Null{}},
		{Name: "not null", Sentinel: ir.NotNull{}},
		{Name: "unchanged", Sentinel: ir.Unchanged{}},

		// Screening round and surveillance intervals.
		{Name: "last fobt round", Months: -24},
		{Name: "next fobt round", Months: 24},
		{Name: "surveillance interval", Months: 36},
		{Name: "last surveillance interval", Months: -36},
		{Name: "lynch surveillance interval", Months: 24},
		{Name: "last lynch surveillance interval", Months: -24},
		{Name: "one year ago", Months: -12},
		{Name: "referral window", Days: -28},

		// Programme milestones.
		{Name: "programme start", Fixed: fixed(2006, time.April, 1)},
		{Name: "bowel scope start", Fixed: fixed(2013, time.March, 1)},
		{Name: "fit introduction", Fixed: fixed(2019, time.June, 17)},
		{Name: "age extension start", Fixed: fixed(2021, time.April, 1)},
		{Name: "lynch programme start", Fixed: fixed(2023, time.July, 1)},
	}
}
