package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// MonthBill is one occurrence of a bill in a month snapshot.
type MonthBill struct {
	DefaultModel
	BudgetMonthID   uuid.UUID
	BudgetMonth     BudgetMonth `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BillID          *uuid.UUID
	Bill            *Bill `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Name            string
	Amount          int64 // in cents
	DueDate         types.Date
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Paid            bool
	PaidDate        *types.Date
	ActualAmount    *int64 // in cents, set when the paid amount differs
	Note            string
}

func (b *MonthBill) BeforeSave(tx *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	_, err := checkUnlocked(tx, b.BudgetMonthID)
	return err
}

func (b *MonthBill) BeforeDelete(tx *gorm.DB) error {
	_, err := checkUnlocked(tx, b.BudgetMonthID)
	return err
}

func (b *MonthBill) AfterSave(_ *gorm.DB) error {
	if b.ActualAmount != nil && *b.ActualAmount < 0 {
		return ErrActualAmountNegative
	}
	return nil
}

func (MonthBill) Export() (json.RawMessage, error) {
	return exportAll[MonthBill]()
}

func (MonthBill) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[MonthBill](tx, data)
}

// MonthIncome is one occurrence of an income in a month snapshot.
type MonthIncome struct {
	DefaultModel
	BudgetMonthID   uuid.UUID
	BudgetMonth     BudgetMonth `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	IncomeID        *uuid.UUID
	Income          *Income `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Name            string
	Amount          int64 // in cents
	PayDate         types.Date
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Received        bool
	ReceivedDate    *types.Date
	ActualAmount    *int64 // in cents, set when the received amount differs
	Note            string
}

func (i *MonthIncome) BeforeSave(tx *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Note = strings.TrimSpace(i.Note)

	_, err := checkUnlocked(tx, i.BudgetMonthID)
	return err
}

func (i *MonthIncome) BeforeDelete(tx *gorm.DB) error {
	_, err := checkUnlocked(tx, i.BudgetMonthID)
	return err
}

func (i *MonthIncome) AfterSave(_ *gorm.DB) error {
	if i.ActualAmount != nil && *i.ActualAmount < 0 {
		return ErrActualAmountNegative
	}
	return nil
}

func (MonthIncome) Export() (json.RawMessage, error) {
	return exportAll[MonthIncome]()
}

func (MonthIncome) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[MonthIncome](tx, data)
}

// MonthExpense is a one-off expense in a month snapshot.
type MonthExpense struct {
	DefaultModel
	BudgetMonthID   uuid.UUID
	BudgetMonth     BudgetMonth `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name            string
	Amount          int64 // in cents
	Date            types.Date
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Note            string
}

func (e *MonthExpense) BeforeSave(tx *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Note = strings.TrimSpace(e.Note)

	_, err := checkUnlocked(tx, e.BudgetMonthID)
	return err
}

func (e *MonthExpense) BeforeDelete(tx *gorm.DB) error {
	_, err := checkUnlocked(tx, e.BudgetMonthID)
	return err
}

func (e *MonthExpense) AfterSave(tx *gorm.DB) error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrNameRequired
	}

	if e.Amount <= 0 {
		return ErrAmountNotPositive
	}

	var m BudgetMonth
	err := tx.First(&m, e.BudgetMonthID).Error
	if err != nil {
		return err
	}

	if !m.Month.Contains(e.Date.Time()) {
		return ErrExpenseDateNotInMonth
	}

	return checkCategory(tx, e.CategoryID, CategoryTypeBill)
}

func (MonthExpense) Export() (json.RawMessage, error) {
	return exportAll[MonthExpense]()
}

func (MonthExpense) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[MonthExpense](tx, data)
}

// MonthTodo is one occurrence of a todo in a month snapshot.
type MonthTodo struct {
	DefaultModel
	BudgetMonthID uuid.UUID
	BudgetMonth   BudgetMonth `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TodoID        *uuid.UUID
	Todo          *Todo `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Title         string
	DueDate       types.Date
	Completed     bool
	CompletedAt   *time.Time
	Note          string
}

func (t *MonthTodo) BeforeSave(tx *gorm.DB) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)

	_, err := checkUnlocked(tx, t.BudgetMonthID)
	return err
}

func (t *MonthTodo) BeforeDelete(tx *gorm.DB) error {
	_, err := checkUnlocked(tx, t.BudgetMonthID)
	return err
}

func (MonthTodo) Export() (json.RawMessage, error) {
	return exportAll[MonthTodo]()
}

func (MonthTodo) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[MonthTodo](tx, data)
}
