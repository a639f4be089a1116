package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// IncomeMetadata holds optional details about an income.
type IncomeMetadata struct {
	Employer string `json:"employer,omitempty" example:"ACME Corp"` // Who pays the income
}

// Income is recurring money coming in.
type Income struct {
	DefaultModel
	Name            string
	Amount          int64 // in cents
	recurrence.Rule `gorm:"embedded"`
	PaymentSourceID *uuid.UUID
	PaymentSource   *PaymentSource `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID      *uuid.UUID
	Category        *Category      `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Metadata        IncomeMetadata `gorm:"serializer:json;type:text"`
	Note            string
	Archived        bool
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.Note = strings.TrimSpace(i.Note)
	i.Metadata.Employer = strings.TrimSpace(i.Metadata.Employer)

	return nil
}

func (i *Income) AfterSave(tx *gorm.DB) error {
	return validateRecurring(tx, i.Name, i.Amount, i.Rule, i.CategoryID, CategoryTypeIncome)
}

// NextPayDate returns the next date the income arrives on or after the date.
func (i Income) NextPayDate(from types.Date) *types.Date {
	if i.Archived {
		return nil
	}

	next, ok := i.Next(from)
	if !ok {
		return nil
	}
	return &next
}

func (Income) Export() (json.RawMessage, error) {
	return exportAll[Income]()
}

func (Income) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[Income](tx, data)
}
