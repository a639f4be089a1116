package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// BillMetadata holds optional details about a bill.
type BillMetadata struct {
	Website       string `json:"website,omitempty" example:"https://power.example.com"` // Website to pay the bill
	AccountNumber string `json:"accountNumber,omitempty" example:"0042-1337"`           // Customer or account number with the payee
	Autopay       bool   `json:"autopay" example:"true"`                                // The bill is paid automatically
}

// Bill is a recurring payment.
type Bill struct {
	DefaultModel
	Name            string
	Amount          int64 // in cents
	recurrence.Rule `gorm:"embedded"`
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Metadata        BillMetadata `gorm:"serializer:json;type:text"`
	Note            string
	Archived        bool
	SavingsGoalID   *uuid.UUID   `gorm:"uniqueIndex"` // Set for bills that pay into a savings goal
	SavingsGoal     *SavingsGoal `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (b *Bill) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)
	b.Metadata.Website = strings.TrimSpace(b.Metadata.Website)
	b.Metadata.AccountNumber = strings.TrimSpace(b.Metadata.AccountNumber)

	return nil
}

func (b *Bill) AfterSave(tx *gorm.DB) error {
	return validateRecurring(tx, b.Name, b.Amount, b.Rule, b.CategoryID, CategoryTypeBill)
}

// NextDueDate returns the next date the bill is due on or after the date.
func (b Bill) NextDueDate(from types.Date) *types.Date {
	if b.Archived {
		return nil
	}

	next, ok := b.Next(from)
	if !ok {
		return nil
	}
	return &next
}

func (Bill) Export() (json.RawMessage, error) {
	return exportAll[Bill]()
}

func (Bill) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[Bill](tx, data)
}

// validateRecurring checks the fields that bills and incomes share.
func validateRecurring(tx *gorm.DB, name string, amount int64, rule recurrence.Rule, categoryID *uuid.UUID, categoryType CategoryType) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	if amount <= 0 {
		return ErrAmountNotPositive
	}

	if err := rule.Validate(); err != nil {
		return err
	}

	return checkCategory(tx, categoryID, categoryType)
}
