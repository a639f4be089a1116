// Package savings calculates payment schedules for savings goals.
package savings

import (
	"errors"

	"github.com/ledgerline/backend/internal/money"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
)

type Frequency string

const (
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi_weekly"
	Monthly  Frequency = "monthly"
)

var (
	ErrInvalidFrequency  = errors.New("the frequency must be one of weekly, bi_weekly, monthly")
	ErrTargetNotPositive = errors.New("the target amount must be larger than zero")
	ErrTargetBeforeStart = errors.New("the target date must not be before the start date")
	ErrAmountNotPositive = errors.New("the payment amount must be larger than zero")
)

// Valid reports whether the frequency is known.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly:
		return true
	}
	return false
}

// Period returns the billing period used for bills that pay into a goal
// with this frequency.
func (f Frequency) Period() recurrence.Period {
	switch f {
	case Weekly:
		return recurrence.Weekly
	case BiWeekly:
		return recurrence.BiWeekly
	}
	return recurrence.Monthly
}

// paymentDate returns the date of the payment with index k, counting
// from zero at start.
func (f Frequency) paymentDate(start types.Date, k int) types.Date {
	switch f {
	case Weekly:
		return start.AddDays(7 * k)
	case BiWeekly:
		return start.AddDays(14 * k)
	}
	return start.AddMonths(k)
}

// Input holds everything needed to calculate a schedule. Amounts are in cents.
type Input struct {
	Target     int64
	Saved      int64
	Start      types.Date
	TargetDate types.Date
	Frequency  Frequency
}

// Schedule is a calculated payment plan. Amounts are in cents.
type Schedule struct {
	Remaining        int64       `json:"remaining" example:"95000"`                       // Amount still to save
	Periods          int         `json:"periods" example:"12"`                            // Payment dates between start and target date
	PaymentAmount    int64       `json:"paymentAmount" example:"7917"`                    // Amount to pay on each payment date
	Payments         int         `json:"payments" example:"12"`                           // Payments needed at PaymentAmount
	NextPaymentDate  *types.Date `json:"nextPaymentDate" swaggertype:"primitive,string"`  // Date of the first payment, null if nothing is left to save
	FinalPaymentDate *types.Date `json:"finalPaymentDate" swaggertype:"primitive,string"` // Date of the last payment, null if nothing is left to save
}

// Calculate returns the payment schedule that reaches the target on or
// before the target date.
//
// Payment dates are the start date and every period after it up to the
// target date. The remaining amount is divided by their count and rounded
// up to whole cents, so the last payment may be due earlier than the
// target date.
func Calculate(in Input) (Schedule, error) {
	if !in.Frequency.Valid() {
		return Schedule{}, ErrInvalidFrequency
	}

	if in.Target <= 0 {
		return Schedule{}, ErrTargetNotPositive
	}

	if in.TargetDate.Before(in.Start) {
		return Schedule{}, ErrTargetBeforeStart
	}

	periods := 0
	for !in.Frequency.paymentDate(in.Start, periods).After(in.TargetDate) {
		periods++
	}

	s := Schedule{
		Remaining: max(in.Target-in.Saved, 0),
		Periods:   periods,
	}

	if s.Remaining == 0 {
		return s, nil
	}

	s.PaymentAmount = money.CeilDiv(s.Remaining, int64(periods))
	return project(s, in.Start, in.Frequency), nil
}

// ProjectFromAmount returns the schedule for paying a fixed amount per
// period until the remaining amount is saved.
func ProjectFromAmount(remaining, amount int64, start types.Date, frequency Frequency) (Schedule, error) {
	if !frequency.Valid() {
		return Schedule{}, ErrInvalidFrequency
	}

	if amount <= 0 {
		return Schedule{}, ErrAmountNotPositive
	}

	s := Schedule{
		Remaining:     max(remaining, 0),
		PaymentAmount: amount,
	}

	if s.Remaining == 0 {
		s.PaymentAmount = 0
		return s, nil
	}

	s = project(s, start, frequency)
	s.Periods = s.Payments
	return s, nil
}

func project(s Schedule, start types.Date, frequency Frequency) Schedule {
	s.Payments = int(money.CeilDiv(s.Remaining, s.PaymentAmount))

	next := start
	final := frequency.paymentDate(start, s.Payments-1)
	s.NextPaymentDate = &next
	s.FinalPaymentDate = &final

	return s
}
