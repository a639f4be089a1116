package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

type ClaimStatus string

const (
	ClaimStatusDraft     ClaimStatus = "draft"
	ClaimStatusSubmitted ClaimStatus = "submitted"
	ClaimStatusInReview  ClaimStatus = "in_review"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusDenied    ClaimStatus = "denied"
	ClaimStatusPaid      ClaimStatus = "paid"
)

func (s ClaimStatus) valid() bool {
	switch s {
	case ClaimStatusDraft, ClaimStatusSubmitted, ClaimStatusInReview, ClaimStatusApproved, ClaimStatusDenied, ClaimStatusPaid:
		return true
	}
	return false
}

// InsuranceClaim is a claim filed with an insurance plan.
type InsuranceClaim struct {
	DefaultModel
	InsurancePlanID uuid.UUID
	InsurancePlan   InsurancePlan `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FamilyMemberID  *uuid.UUID
	FamilyMember    *FamilyMember `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Description     string
	ProviderName    string
	ServiceDate     types.Date
	AmountBilled    int64       // in cents
	AmountCovered   int64       // in cents
	Status          ClaimStatus `gorm:"default:draft"`
	SubmittedDate   *types.Date
	Note            string
}

func (c *InsuranceClaim) BeforeSave(_ *gorm.DB) error {
	c.Description = strings.TrimSpace(c.Description)
	c.ProviderName = strings.TrimSpace(c.ProviderName)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

func (c *InsuranceClaim) AfterSave(tx *gorm.DB) error {
	if err := c.validate(types.Today()); err != nil {
		return err
	}

	var plan InsurancePlan
	err := tx.First(&plan, c.InsurancePlanID).Error
	if err != nil {
		return err
	}

	if c.FamilyMemberID != nil && !plan.Covers(*c.FamilyMemberID) {
		return ErrMemberNotCovered
	}

	return nil
}

func (c InsuranceClaim) validate(today types.Date) error {
	if strings.TrimSpace(c.Description) == "" {
		return ErrClaimDescriptionRequired
	}

	if !c.Status.valid() {
		return ErrClaimStatusInvalid
	}

	if c.ServiceDate.IsZero() {
		return ErrServiceDateRequired
	}

	if c.ServiceDate.After(today) {
		return ErrServiceDateInFuture
	}

	if c.AmountBilled < 0 || c.AmountCovered < 0 {
		return ErrInsuranceAmountNegative
	}

	if c.AmountCovered > c.AmountBilled {
		return ErrCoveredAboveBilled
	}

	if c.Status == ClaimStatusDraft {
		return nil
	}

	if c.SubmittedDate == nil || c.SubmittedDate.IsZero() {
		return ErrSubmittedDateRequired
	}

	if c.SubmittedDate.Before(c.ServiceDate) {
		return ErrSubmittedBeforeService
	}

	return nil
}

// PatientResponsibility returns the part of the billed amount the
// insurance does not cover, in cents.
func (c InsuranceClaim) PatientResponsibility() int64 {
	if c.Status == ClaimStatusDenied {
		return c.AmountBilled
	}
	return c.AmountBilled - c.AmountCovered
}

func (InsuranceClaim) Export() (json.RawMessage, error) {
	return exportAll[InsuranceClaim]()
}

func (InsuranceClaim) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[InsuranceClaim](tx, data)
}
