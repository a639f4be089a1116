package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/savings"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

func (s GoalStatus) valid() bool {
	return s == GoalStatusActive || s == GoalStatusPaused || s == GoalStatusCompleted
}

// SavingsGoal is an amount to save until a target date.
type SavingsGoal struct {
	DefaultModel
	Name            string
	TargetAmount    int64 // in cents
	SavedAmount     int64 // in cents
	StartDate       types.Date
	TargetDate      types.Date
	Frequency       savings.Frequency `gorm:"default:monthly"`
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category  `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	AutoCreateBill  bool
	Status          GoalStatus `gorm:"default:active"`
	Note            string
}

func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if g.StartDate.IsZero() {
		g.StartDate = types.Today()
	}

	return nil
}

func (g *SavingsGoal) AfterSave(tx *gorm.DB) error {
	if err := g.validate(); err != nil {
		return err
	}

	if err := checkCategory(tx, g.CategoryID, CategoryTypeBill); err != nil {
		return err
	}

	return g.syncBill(tx)
}

func (g SavingsGoal) validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrNameRequired
	}

	if !g.Status.valid() {
		return ErrGoalStatusInvalid
	}

	if g.SavedAmount < 0 {
		return ErrSavedAmountNegative
	}

	if g.TargetDate.IsZero() {
		return ErrTargetDateRequired
	}

	_, err := g.Schedule(g.StartDate)
	return err
}

// Remaining returns the amount still to save in cents.
func (g SavingsGoal) Remaining() int64 {
	return max(g.TargetAmount-g.SavedAmount, 0)
}

// Schedule returns the payment schedule from the later of the start
// date and the given date.
func (g SavingsGoal) Schedule(today types.Date) (savings.Schedule, error) {
	from := g.StartDate
	if today.After(from) {
		from = today
	}

	// A goal that is past its target date is paid off with one payment
	target := g.TargetDate
	if target.Before(from) && !g.TargetDate.Before(g.StartDate) {
		target = from
	}

	return savings.Calculate(savings.Input{
		Target:     g.TargetAmount,
		Saved:      g.SavedAmount,
		Start:      from,
		TargetDate: target,
		Frequency:  g.Frequency,
	})
}

// Bill returns the bill generated for the goal, if any.
func (g SavingsGoal) Bill(tx *gorm.DB) (*Bill, error) {
	var bills []Bill
	err := tx.Where(&Bill{SavingsGoalID: &g.ID}).Limit(1).Find(&bills).Error
	if err != nil {
		return nil, err
	}

	if len(bills) == 0 {
		return nil, nil
	}
	return &bills[0], nil
}

// syncBill creates, updates or archives the bill that pays into the goal.
func (g SavingsGoal) syncBill(tx *gorm.DB) error {
	existing, err := g.Bill(tx)
	if err != nil {
		return err
	}

	schedule, err := g.Schedule(types.Today())
	if err != nil {
		return err
	}

	wanted := g.AutoCreateBill && g.Status == GoalStatusActive && schedule.PaymentAmount > 0
	if !wanted {
		if existing == nil || existing.Archived {
			return nil
		}
		return tx.Model(existing).Update("archived", true).Error
	}

	bill := Bill{
		Name:            g.Name,
		Amount:          schedule.PaymentAmount,
		Rule:            g.rule(*schedule.NextPaymentDate),
		PaymentSourceID: g.PaymentSourceID,
		CategoryID:      g.CategoryID,
		Note:            "Savings goal payment",
		SavingsGoalID:   &g.ID,
	}

	if existing == nil {
		return tx.Create(&bill).Error
	}

	return tx.Model(existing).
		Select("Name", "Amount", "Period", "DayOfMonth", "WeekOfMonth", "Weekday", "StartDate", "PaymentSourceID", "CategoryID", "Archived").
		Updates(bill).Error
}

// rule returns the recurrence for the generated bill. Monthly goals are
// due on the day of month of the start date.
func (g SavingsGoal) rule(next types.Date) recurrence.Rule {
	if g.Frequency == savings.Monthly {
		day := g.StartDate.Time().Day()
		return recurrence.Rule{Period: recurrence.Monthly, DayOfMonth: &day}
	}

	return recurrence.Rule{Period: g.Frequency.Period(), StartDate: &next}
}

// Contribute records a contribution and adds it to the saved amount.
// The goal is completed once the target is reached.
func (g *SavingsGoal) Contribute(db *gorm.DB, amount int64, date types.Date, note string) (SavingsContribution, error) {
	if amount <= 0 {
		return SavingsContribution{}, ErrContributionNotPositive
	}

	if date.IsZero() {
		date = types.Today()
	}

	contribution := SavingsContribution{
		SavingsGoalID: g.ID,
		Amount:        amount,
		Date:          date,
		Note:          note,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&contribution).Error
		if err != nil {
			return err
		}

		err = tx.Model(&SavingsGoal{}).
			Where("id = ?", g.ID).
			UpdateColumn("saved_amount", gorm.Expr("saved_amount + ?", amount)).Error
		if err != nil {
			return err
		}

		// Other contributions may have been added since g was loaded
		err = tx.First(g, g.ID).Error
		if err != nil {
			return err
		}

		status := g.Status
		if g.SavedAmount >= g.TargetAmount {
			status = GoalStatusCompleted
		}

		return tx.Model(g).Select("Status").Updates(SavingsGoal{Status: status}).Error
	})
	if err != nil {
		return SavingsContribution{}, err
	}

	return contribution, nil
}

func (SavingsGoal) Export() (json.RawMessage, error) {
	return exportAll[SavingsGoal]()
}

func (SavingsGoal) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[SavingsGoal](tx, data)
}
