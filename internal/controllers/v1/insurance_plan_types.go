package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// InsurancePlanEditable represents all user configurable parameters
type InsurancePlanEditable struct {
	Name             string            `json:"name" example:"Family Health" default:""`       // Name of the plan
	Provider         string            `json:"provider" example:"Blue Shield" default:""`     // Insurance company
	PlanType         models.PlanType   `json:"planType" example:"health" default:"health"`    // One of health, dental, vision, life, auto, home, other
	PolicyNumber     string            `json:"policyNumber" example:"XG-77812" default:""`    // Policy number
	Premium          int64             `json:"premium" example:"45000" default:"0"`           // Premium in cents per premium period
	PremiumPeriod    recurrence.Period `json:"premiumPeriod" example:"monthly" default:"monthly"` // How often the premium is due
	Deductible       int64             `json:"deductible" example:"150000" default:"0"`       // Deductible per calendar year in cents
	OutOfPocketMax   int64             `json:"outOfPocketMax" example:"600000" default:"0"`   // Out of pocket maximum per calendar year in cents
	CoveredMemberIDs []uuid.UUID       `json:"coveredMemberIds"`                              // IDs of covered family members. Empty covers everyone
	Note             string            `json:"note" example:"Employer sponsored" default:""`  // A note
	Archived         bool              `json:"archived" example:"false" default:"false"`      // Is the plan archived?
}

func (editable InsurancePlanEditable) model() models.InsurancePlan {
	return models.InsurancePlan{
		Name:             editable.Name,
		Provider:         editable.Provider,
		PlanType:         editable.PlanType,
		PolicyNumber:     editable.PolicyNumber,
		Premium:          editable.Premium,
		PremiumPeriod:    editable.PremiumPeriod,
		Deductible:       editable.Deductible,
		OutOfPocketMax:   editable.OutOfPocketMax,
		CoveredMemberIDs: editable.CoveredMemberIDs,
		Note:             editable.Note,
		Archived:         editable.Archived,
	}
}

type InsurancePlanLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/insurance-plans/9f5a3c1e-2b8e-4d7a-b1c4-6e0d2a7f8b33"`                           // The plan itself
	Claims string `json:"claims" example:"https://example.com/api/v1/insurance-claims?insurancePlan=9f5a3c1e-2b8e-4d7a-b1c4-6e0d2a7f8b33"` // Claims filed with the plan
}

type InsurancePlan struct {
	models.DefaultModel
	InsurancePlanEditable
	Links InsurancePlanLinks `json:"links"`

	// These fields are computed
	AnnualPremium          int64                 `json:"annualPremium" example:"540000"`               // Premium for a whole year in cents
	AnnualPremiumFormatted string                `json:"annualPremiumFormatted" example:"$5,400.00"` // Annual premium formatted for display
	Usage                  models.InsuranceUsage `json:"usage"`                                        // Usage for the current calendar year
}

func newInsurancePlan(c *gin.Context, db *gorm.DB, model models.InsurancePlan) (InsurancePlan, error) {
	usage, err := model.Usage(db, types.Today().Time().Year())
	if err != nil {
		return InsurancePlan{}, err
	}

	coveredMemberIDs := model.CoveredMemberIDs
	if coveredMemberIDs == nil {
		coveredMemberIDs = []uuid.UUID{}
	}

	return InsurancePlan{
		DefaultModel: model.DefaultModel,
		InsurancePlanEditable: InsurancePlanEditable{
			Name:             model.Name,
			Provider:         model.Provider,
			PlanType:         model.PlanType,
			PolicyNumber:     model.PolicyNumber,
			Premium:          model.Premium,
			PremiumPeriod:    model.PremiumPeriod,
			Deductible:       model.Deductible,
			OutOfPocketMax:   model.OutOfPocketMax,
			CoveredMemberIDs: coveredMemberIDs,
			Note:             model.Note,
			Archived:         model.Archived,
		},
		Links: InsurancePlanLinks{
			Self:   fmt.Sprintf("%s/v1/insurance-plans/%s", baseURL(c), model.ID),
			Claims: fmt.Sprintf("%s/v1/insurance-claims?insurancePlan=%s", baseURL(c), model.ID),
		},
		AnnualPremium:          model.AnnualPremium(),
		AnnualPremiumFormatted: formatter(c).Format(model.AnnualPremium()),
		Usage:                  usage,
	}, nil
}

type InsurancePlanListResponse struct {
	Data       []InsurancePlan `json:"data"`                                                          // List of insurance plans
	Error      *string         `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type InsurancePlanCreateResponse struct {
	Data  []InsurancePlanResponse `json:"data"`                                                          // List of the created insurance plans or their respective error
	Error *string                 `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *InsurancePlanCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, InsurancePlanResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type InsurancePlanResponse struct {
	Data  *InsurancePlan `json:"data"`                                                          // Data for the insurance plan
	Error *string        `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type InsurancePlanQueryFilter struct {
	Name     string          `form:"name" filterField:"false"`   // By name
	Note     string          `form:"note" filterField:"false"`   // By note
	PlanType models.PlanType `form:"planType"`                   // By plan type
	Archived bool            `form:"archived"`                   // Is the plan archived?
	Search   string          `form:"search" filterField:"false"` // By string in name, note or provider
	Offset   uint            `form:"offset" filterField:"false"` // The offset of the first plan returned. Defaults to 0.
	Limit    int             `form:"limit" filterField:"false"`  // Maximum number of plans to return. Defaults to 50.
}

func (f InsurancePlanQueryFilter) model() models.InsurancePlan {
	return models.InsurancePlan{
		PlanType: f.PlanType,
		Archived: f.Archived,
	}
}
