package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type PlanType string

const (
	PlanTypeHealth PlanType = "health"
	PlanTypeDental PlanType = "dental"
	PlanTypeVision PlanType = "vision"
	PlanTypeLife   PlanType = "life"
	PlanTypeAuto   PlanType = "auto"
	PlanTypeHome   PlanType = "home"
	PlanTypeOther  PlanType = "other"
)

func (t PlanType) valid() bool {
	switch t {
	case PlanTypeHealth, PlanTypeDental, PlanTypeVision, PlanTypeLife, PlanTypeAuto, PlanTypeHome, PlanTypeOther:
		return true
	}
	return false
}

// InsurancePlan is an insurance policy of the household.
type InsurancePlan struct {
	DefaultModel
	Name             string
	Provider         string
	PlanType         PlanType `gorm:"default:health"`
	PolicyNumber     string
	Premium          int64             // in cents
	PremiumPeriod    recurrence.Period `gorm:"default:monthly"`
	Deductible       int64             // in cents
	OutOfPocketMax   int64             // in cents
	CoveredMemberIDs []uuid.UUID       `gorm:"serializer:json;type:text"`
	Note             string
	Archived         bool
}

func (p *InsurancePlan) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Provider = strings.TrimSpace(p.Provider)
	p.PolicyNumber = strings.TrimSpace(p.PolicyNumber)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

func (p *InsurancePlan) AfterSave(tx *gorm.DB) error {
	if err := p.validate(); err != nil {
		return err
	}

	if len(p.CoveredMemberIDs) == 0 {
		return nil
	}

	var count int64
	err := tx.Model(&FamilyMember{}).Where("id IN ?", p.CoveredMemberIDs).Count(&count).Error
	if err != nil {
		return err
	}

	if int(count) != len(p.CoveredMemberIDs) {
		return ErrCoveredMemberInvalid
	}

	return nil
}

func (p InsurancePlan) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}

	if !p.PlanType.valid() {
		return ErrPlanTypeInvalid
	}

	if !p.PremiumPeriod.Valid() {
		return ErrPremiumPeriodInvalid
	}

	if p.Premium < 0 || p.Deductible < 0 || p.OutOfPocketMax < 0 {
		return ErrInsuranceAmountNegative
	}

	if p.Deductible > 0 && p.OutOfPocketMax > 0 && p.Deductible > p.OutOfPocketMax {
		return ErrDeductibleAboveMax
	}

	for i, id := range p.CoveredMemberIDs {
		if slices.Contains(p.CoveredMemberIDs[i+1:], id) {
			return ErrCoveredMemberInvalid
		}
	}

	return nil
}

// Covers reports whether the family member is covered by the plan.
// Plans without covered members cover everyone.
func (p InsurancePlan) Covers(id uuid.UUID) bool {
	return len(p.CoveredMemberIDs) == 0 || slices.Contains(p.CoveredMemberIDs, id)
}

// AnnualPremium returns the premium for a whole year in cents.
func (p InsurancePlan) AnnualPremium() int64 {
	return p.Premium * p.PremiumPeriod.PerYear()
}

// InsuranceUsage sums up the claims of a plan for a calendar year.
type InsuranceUsage struct {
	Year                  int   `json:"year" example:"2024"`                   // Calendar year of the service dates
	Claims                int   `json:"claims" example:"3"`                    // Number of claims that are not denied
	TotalBilled           int64 `json:"totalBilled" example:"125000"`          // Sum of billed amounts in cents
	TotalCovered          int64 `json:"totalCovered" example:"90000"`          // Sum of covered amounts in cents
	PatientResponsibility int64 `json:"patientResponsibility" example:"35000"` // Billed minus covered in cents
	DeductibleRemaining   int64 `json:"deductibleRemaining" example:"15000"`   // Deductible not yet met in cents
	OutOfPocketRemaining  int64 `json:"outOfPocketRemaining" example:"65000"`  // Out of pocket maximum not yet reached in cents
}

// Usage returns the usage of the plan for the year. Denied claims are ignored.
func (p InsurancePlan) Usage(tx *gorm.DB, year int) (InsuranceUsage, error) {
	var claims []InsuranceClaim
	err := tx.
		Where(&InsuranceClaim{InsurancePlanID: p.ID}).
		Where("status != ?", ClaimStatusDenied).
		Where("service_date >= ? AND service_date < ?", types.NewDate(year, 1, 1), types.NewDate(year+1, 1, 1)).
		Find(&claims).Error
	if err != nil {
		return InsuranceUsage{}, err
	}

	u := InsuranceUsage{Year: year, Claims: len(claims)}
	for _, c := range claims {
		u.TotalBilled += c.AmountBilled
		u.TotalCovered += c.AmountCovered
	}
	u.PatientResponsibility = u.TotalBilled - u.TotalCovered
	u.DeductibleRemaining = max(p.Deductible-u.PatientResponsibility, 0)
	u.OutOfPocketRemaining = max(p.OutOfPocketMax-u.PatientResponsibility, 0)

	return u, nil
}

func (InsurancePlan) Export() (json.RawMessage, error) {
	return exportAll[InsurancePlan]()
}

func (InsurancePlan) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[InsurancePlan](tx, data)
}
