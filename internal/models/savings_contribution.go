package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// SavingsContribution is money put towards a savings goal.
type SavingsContribution struct {
	DefaultModel
	SavingsGoalID uuid.UUID
	SavingsGoal   SavingsGoal `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Amount        int64       // in cents
	Date          types.Date
	Note          string
}

func (c *SavingsContribution) BeforeSave(_ *gorm.DB) error {
	c.Note = strings.TrimSpace(c.Note)
	return nil
}

func (c *SavingsContribution) AfterSave(_ *gorm.DB) error {
	if c.Amount <= 0 {
		return ErrContributionNotPositive
	}
	return nil
}

func (SavingsContribution) Export() (json.RawMessage, error) {
	return exportAll[SavingsContribution]()
}

func (SavingsContribution) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[SavingsContribution](tx, data)
}
