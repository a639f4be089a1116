// Package recurrence calculates the dates on which recurring bills,
// incomes and todos fall.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/backend/internal/types"
)

type Period string

const (
	Monthly      Period = "monthly"
	BiWeekly     Period = "bi_weekly"
	Weekly       Period = "weekly"
	SemiAnnually Period = "semi_annually"
)

// LastWeek is the week of month value that selects the last
// occurrence of a weekday in a month.
const LastWeek = 5

var (
	ErrInvalidPeriod        = errors.New("the billing period must be one of monthly, bi_weekly, weekly, semi_annually")
	ErrMonthlyModeRequired  = errors.New("monthly recurrence needs either a day of month or a week of month and weekday")
	ErrMonthlyModeAmbiguous = errors.New("monthly recurrence can use either a day of month or a week of month and weekday, not both")
	ErrDayOfMonthInvalid    = errors.New("the day of month must be between 1 and 31")
	ErrWeekOfMonthInvalid   = errors.New("the recurrence week must be between 1 and 5, where 5 is the last week")
	ErrWeekdayInvalid       = errors.New("the recurrence day must be between 0 (Sunday) and 6 (Saturday)")
	ErrStartDateRequired    = errors.New("a start date is required for weekly, bi-weekly and semi-annual recurrence")
)

// Valid reports whether the period is known.
func (p Period) Valid() bool {
	switch p {
	case Monthly, BiWeekly, Weekly, SemiAnnually:
		return true
	}
	return false
}

// PerYear returns how often the period occurs in a year. Monthly periods
// count 12 times, weekly ones 52 and bi-weekly ones 26.
func (p Period) PerYear() int64 {
	switch p {
	case Weekly:
		return 52
	case BiWeekly:
		return 26
	case SemiAnnually:
		return 2
	}
	return 12
}

// Rule describes when something recurs.
//
// Monthly rules use either DayOfMonth or WeekOfMonth together with Weekday.
// All other periods count from StartDate.
type Rule struct {
	Period      Period      `json:"billingPeriod" example:"monthly"`           // One of monthly, bi_weekly, weekly, semi_annually
	DayOfMonth  *int        `json:"dayOfMonth" example:"15"`                   // Day of month for monthly rules, clamped to the month's length
	WeekOfMonth *int        `json:"recurrenceWeek" example:"2"`                // Week of month for monthly rules, 5 is the last week
	Weekday     *int        `json:"recurrenceDay" example:"2"`                 // Weekday for monthly rules, 0 is Sunday
	StartDate   *types.Date `json:"startDate" swaggertype:"primitive,string"` // First occurrence for non-monthly rules, optional lower bound for monthly ones
}

// Validate checks that the rule is complete and consistent.
func (r Rule) Validate() error {
	if !r.Period.Valid() {
		return ErrInvalidPeriod
	}

	if r.Period != Monthly {
		if r.StartDate == nil || r.StartDate.IsZero() {
			return ErrStartDateRequired
		}
		return nil
	}

	byDay := r.DayOfMonth != nil
	byWeekday := r.WeekOfMonth != nil || r.Weekday != nil

	if byDay && byWeekday {
		return ErrMonthlyModeAmbiguous
	}

	if byDay {
		if *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return ErrDayOfMonthInvalid
		}
		return nil
	}

	if r.WeekOfMonth == nil || r.Weekday == nil {
		return ErrMonthlyModeRequired
	}

	if *r.WeekOfMonth < 1 || *r.WeekOfMonth > LastWeek {
		return ErrWeekOfMonthInvalid
	}

	if *r.Weekday < 0 || *r.Weekday > 6 {
		return ErrWeekdayInvalid
	}

	return nil
}

// Occurrences returns all dates in the month on which the rule falls,
// in ascending order. An invalid rule has no occurrences.
func (r Rule) Occurrences(month types.Month) []types.Date {
	if r.Validate() != nil {
		return nil
	}

	var dates []types.Date
	switch r.Period {
	case Monthly:
		dates = r.monthly(month)
	case Weekly:
		dates = r.every(month, 7)
	case BiWeekly:
		dates = r.every(month, 14)
	case SemiAnnually:
		dates = r.semiAnnually(month)
	}

	return dates
}

// Next returns the first occurrence on or after the date. The search
// covers thirteen months, which includes at least one occurrence for
// every valid rule that has started.
func (r Rule) Next(from types.Date) (types.Date, bool) {
	month := from.Month()
	for i := 0; i <= 13; i++ {
		for _, d := range r.Occurrences(month.AddDate(0, i)) {
			if !d.Before(from) {
				return d, true
			}
		}
	}

	return types.Date{}, false
}

// String returns a short description of the rule.
func (r Rule) String() string {
	if r.Validate() != nil {
		return "invalid recurrence"
	}

	switch r.Period {
	case Weekly:
		return fmt.Sprintf("every %s", r.StartDate.Weekday())
	case BiWeekly:
		return fmt.Sprintf("every other %s from %s", r.StartDate.Weekday(), r.StartDate)
	case SemiAnnually:
		return fmt.Sprintf("every six months from %s", r.StartDate)
	}

	if r.DayOfMonth != nil {
		return fmt.Sprintf("monthly on day %d", *r.DayOfMonth)
	}

	weeks := []string{"", "first", "second", "third", "fourth", "last"}
	return fmt.Sprintf("monthly on the %s %s", weeks[*r.WeekOfMonth], time.Weekday(*r.Weekday))
}

func (r Rule) monthly(month types.Month) []types.Date {
	var d types.Date
	if r.DayOfMonth != nil {
		d = month.Day(*r.DayOfMonth)
	} else {
		d = nthWeekday(month, *r.WeekOfMonth, time.Weekday(*r.Weekday))
	}

	if r.StartDate != nil && d.Before(*r.StartDate) {
		return nil
	}

	return []types.Date{d}
}

func (r Rule) every(month types.Month, step int) []types.Date {
	start := *r.StartDate
	first := month.FirstDay()
	last := month.LastDay()

	if start.After(last) {
		return nil
	}

	d := start
	if start.Before(first) {
		k := (start.DaysUntil(first) + step - 1) / step
		d = start.AddDays(k * step)
	}

	var dates []types.Date
	for !d.After(last) {
		dates = append(dates, d)
		d = d.AddDays(step)
	}

	return dates
}

func (r Rule) semiAnnually(month types.Month) []types.Date {
	start := *r.StartDate
	startMonth := start.Month()

	diff := monthsBetween(startMonth, month)
	if diff < 0 || diff%6 != 0 {
		return nil
	}

	return []types.Date{start.AddMonths(diff)}
}

// nthWeekday returns the nth weekday of the month. Week 5 selects the
// last one, even in months that only have four of them.
func nthWeekday(month types.Month, n int, weekday time.Weekday) types.Date {
	if n == LastWeek {
		last := month.LastDay()
		back := (int(last.Weekday()) - int(weekday) + 7) % 7
		return last.AddDays(-back)
	}

	first := month.FirstDay()
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDays(offset + (n-1)*7)
}

func monthsBetween(from, to types.Month) int {
	f := time.Time(from)
	t := time.Time(to)
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}
