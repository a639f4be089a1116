package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/types"
)

// FamilyMemberEditable represents all user configurable parameters
type FamilyMemberEditable struct {
	Name         string              `json:"name" example:"Alex" default:""`                                            // Name of the family member
	Relationship models.Relationship `json:"relationship" example:"child" default:"other"`                             // One of self, spouse, partner, child, parent, other
	DateOfBirth  *types.Date         `json:"dateOfBirth" example:"2015-03-14" swaggertype:"primitive,string"` // Date of birth, must not be in the future
	Color        string              `json:"color" example:"#4f46e5" default:""`                                        // Color used to display the family member
	PIN          string              `json:"pin,omitempty" example:"1234"`                                             // PIN of 4 to 8 digits. Write only, an empty PIN removes it
}

func (editable FamilyMemberEditable) model() (models.FamilyMember, error) {
	m := models.FamilyMember{
		Name:         editable.Name,
		Relationship: editable.Relationship,
		DateOfBirth:  editable.DateOfBirth,
		Color:        editable.Color,
	}

	err := m.SetPIN(editable.PIN)
	return m, err
}

type FamilyMemberLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/family-members/4e2d5bd0-5c8b-4a83-9c2e-2b5e3f6f9d11"`                                  // The family member itself
	Claims    string `json:"claims" example:"https://example.com/api/v1/insurance-claims?familyMember=4e2d5bd0-5c8b-4a83-9c2e-2b5e3f6f9d11"`           // Insurance claims for the family member
	VerifyPIN string `json:"verifyPin" example:"https://example.com/api/v1/family-members/4e2d5bd0-5c8b-4a83-9c2e-2b5e3f6f9d11/verify-pin"` // Endpoint to check the PIN
}

type FamilyMember struct {
	models.DefaultModel
	Name         string              `json:"name" example:"Alex"`
	Relationship models.Relationship `json:"relationship" example:"child"`
	DateOfBirth  *types.Date         `json:"dateOfBirth" example:"2015-03-14" swaggertype:"primitive,string"`
	Color        string              `json:"color" example:"#4f46e5"`
	HasPIN       bool                `json:"hasPin" example:"true"` // Is a PIN set for the family member?
	Links        FamilyMemberLinks   `json:"links"`
}

func newFamilyMember(c *gin.Context, model models.FamilyMember) FamilyMember {
	url := fmt.Sprintf("%s/v1/family-members/%s", baseURL(c), model.ID)

	return FamilyMember{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Relationship: model.Relationship,
		DateOfBirth:  model.DateOfBirth,
		Color:        model.Color,
		HasPIN:       model.HasPIN(),
		Links: FamilyMemberLinks{
			Self:      url,
			Claims:    fmt.Sprintf("%s/v1/insurance-claims?familyMember=%s", baseURL(c), model.ID),
			VerifyPIN: url + "/verify-pin",
		},
	}
}

type FamilyMemberListResponse struct {
	Data       []FamilyMember `json:"data"`                                                          // List of family members
	Error      *string        `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type FamilyMemberCreateResponse struct {
	Data  []FamilyMemberResponse `json:"data"`                                                          // List of the created family members or their respective error
	Error *string                `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *FamilyMemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, FamilyMemberResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FamilyMemberResponse struct {
	Data  *FamilyMember `json:"data"`                                                          // Data for the family member
	Error *string       `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type FamilyMemberQueryFilter struct {
	Name         string              `form:"name" filterField:"false"`   // By name
	Relationship models.Relationship `form:"relationship"`               // By relationship
	Search       string              `form:"search" filterField:"false"` // By string in name
	Offset       uint                `form:"offset" filterField:"false"` // The offset of the first family member returned. Defaults to 0.
	Limit        int                 `form:"limit" filterField:"false"`  // Maximum number of family members to return. Defaults to 50.
}

func (f FamilyMemberQueryFilter) model() models.FamilyMember {
	return models.FamilyMember{
		Relationship: f.Relationship,
	}
}

// FamilyMemberPIN is the PIN to check for a family member.
type FamilyMemberPIN struct {
	PIN string `json:"pin" example:"1234" binding:"required"` // The PIN to verify
}
