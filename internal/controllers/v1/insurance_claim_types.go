package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/types"
	ez_uuid "github.com/ledgerline/backend/internal/uuid"
)

// InsuranceClaimEditable represents all user configurable parameters
type InsuranceClaimEditable struct {
	InsurancePlanID uuid.UUID          `json:"insurancePlanId" example:"9f5a3c1e-2b8e-4d7a-b1c4-6e0d2a7f8b33"`              // ID of the insurance plan
	FamilyMemberID  *uuid.UUID         `json:"familyMemberId" example:"4e2d5bd0-5c8b-4a83-9c2e-2b5e3f6f9d11"`               // ID of the family member who received the service
	Description     string             `json:"description" example:"Annual checkup" default:""`                            // What the claim is for
	ProviderName    string             `json:"providerName" example:"Dr. Rivera" default:""`                               // Who provided the service
	ServiceDate     types.Date         `json:"serviceDate" example:"2024-04-02" swaggertype:"primitive,string"`            // Date of the service, must not be in the future
	AmountBilled    int64              `json:"amountBilled" example:"32000" default:"0"`                                   // Billed amount in cents
	AmountCovered   int64              `json:"amountCovered" example:"25000" default:"0"`                                  // Amount covered by the insurance in cents
	Status          models.ClaimStatus `json:"status" example:"submitted" default:"draft"`                                 // One of draft, submitted, in_review, approved, denied, paid
	SubmittedDate   *types.Date        `json:"submittedDate" example:"2024-04-05" swaggertype:"primitive,string"`          // Date the claim was submitted, required unless the claim is a draft
	Note            string             `json:"note" example:"Reference 55-1092" default:""`                                // A note
}

func (editable InsuranceClaimEditable) model() models.InsuranceClaim {
	return models.InsuranceClaim{
		InsurancePlanID: editable.InsurancePlanID,
		FamilyMemberID:  editable.FamilyMemberID,
		Description:     editable.Description,
		ProviderName:    editable.ProviderName,
		ServiceDate:     editable.ServiceDate,
		AmountBilled:    editable.AmountBilled,
		AmountCovered:   editable.AmountCovered,
		Status:          editable.Status,
		SubmittedDate:   editable.SubmittedDate,
		Note:            editable.Note,
	}
}

type InsuranceClaimLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/insurance-claims/2a7c3e55-8d1f-4f0e-9b6a-3c5d7e9f1a20"`       // The claim itself
	InsurancePlan string `json:"insurancePlan" example:"https://example.com/api/v1/insurance-plans/9f5a3c1e-2b8e-4d7a-b1c4-6e0d2a7f8b33"` // The plan the claim is filed with
}

type InsuranceClaim struct {
	models.DefaultModel
	InsuranceClaimEditable
	Links InsuranceClaimLinks `json:"links"`

	// These fields are computed
	PatientResponsibility          int64  `json:"patientResponsibility" example:"7000"`            // Amount not covered by the insurance in cents
	PatientResponsibilityFormatted string `json:"patientResponsibilityFormatted" example:"$70.00"` // Patient responsibility formatted for display
}

func newInsuranceClaim(c *gin.Context, model models.InsuranceClaim) InsuranceClaim {
	return InsuranceClaim{
		DefaultModel: model.DefaultModel,
		InsuranceClaimEditable: InsuranceClaimEditable{
			InsurancePlanID: model.InsurancePlanID,
			FamilyMemberID:  model.FamilyMemberID,
			Description:     model.Description,
			ProviderName:    model.ProviderName,
			ServiceDate:     model.ServiceDate,
			AmountBilled:    model.AmountBilled,
			AmountCovered:   model.AmountCovered,
			Status:          model.Status,
			SubmittedDate:   model.SubmittedDate,
			Note:            model.Note,
		},
		Links: InsuranceClaimLinks{
			Self:          fmt.Sprintf("%s/v1/insurance-claims/%s", baseURL(c), model.ID),
			InsurancePlan: fmt.Sprintf("%s/v1/insurance-plans/%s", baseURL(c), model.InsurancePlanID),
		},
		PatientResponsibility:          model.PatientResponsibility(),
		PatientResponsibilityFormatted: formatter(c).Format(model.PatientResponsibility()),
	}
}

type InsuranceClaimListResponse struct {
	Data       []InsuranceClaim `json:"data"`                                                          // List of insurance claims
	Error      *string          `json:"error" example:"the claim description must not be empty"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type InsuranceClaimCreateResponse struct {
	Data  []InsuranceClaimResponse `json:"data"`                                                          // List of the created insurance claims or their respective error
	Error *string                  `json:"error" example:"the claim description must not be empty"` // The error, if any occurred
}

func (r *InsuranceClaimCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, InsuranceClaimResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type InsuranceClaimResponse struct {
	Data  *InsuranceClaim `json:"data"`                                                          // Data for the insurance claim
	Error *string         `json:"error" example:"the claim description must not be empty"` // The error, if any occurred
}

type InsuranceClaimQueryFilter struct {
	InsurancePlanID ez_uuid.UUID       `form:"insurancePlan"`                    // By ID of the insurance plan
	FamilyMemberID  ez_uuid.UUID       `form:"familyMember"`                     // By ID of the family member
	Status          models.ClaimStatus `form:"status"`                           // By status
	Description     string             `form:"description" filterField:"false"`  // By description
	ProviderName    string             `form:"providerName" filterField:"false"` // By provider name
	Note            string             `form:"note" filterField:"false"`         // By note
	Search          string             `form:"search" filterField:"false"`       // By string in description, provider name or note
	Offset          uint               `form:"offset" filterField:"false"`       // The offset of the first claim returned. Defaults to 0.
	Limit           int                `form:"limit" filterField:"false"`        // Maximum number of claims to return. Defaults to 50.
}

func (f InsuranceClaimQueryFilter) model() models.InsuranceClaim {
	return models.InsuranceClaim{
		InsurancePlanID: f.InsurancePlanID.UUID,
		FamilyMemberID:  f.FamilyMemberID.Ptr(),
		Status:          f.Status,
	}
}
