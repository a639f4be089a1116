package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	ez_uuid "github.com/ledgerline/backend/internal/uuid"
)

// BillEditable represents all user configurable parameters
type BillEditable struct {
	Name            string     `json:"name" example:"Electricity" default:""`                             // Name of the bill
	Amount          int64      `json:"amount" example:"8500" default:"0"`                                 // Amount in cents
	recurrence.Rule            // When the bill is due
	PaymentSourceID *uuid.UUID `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source the bill is paid from
	CategoryID      *uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the category, must be of type bill

	Metadata models.BillMetadata `json:"metadata"`                                           // Optional details
	Note     string              `json:"note" example:"Paid online, no paper bill" default:""` // A note
	Archived bool                `json:"archived" example:"false" default:"false"`           // Is the bill archived? Archived bills are not added to months
}

func (editable BillEditable) model() models.Bill {
	return models.Bill{
		Name:            editable.Name,
		Amount:          editable.Amount,
		Rule:            editable.Rule,
		PaymentSourceID: editable.PaymentSourceID,
		CategoryID:      editable.CategoryID,
		Metadata:        editable.Metadata,
		Note:            editable.Note,
		Archived:        editable.Archived,
	}
}

type BillLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/bills/c8b2a2e4-3f2f-4b55-ae8c-51d43c3a8c1f"` // The bill itself
}

type Bill struct {
	models.DefaultModel
	BillEditable
	SavingsGoalID *uuid.UUID `json:"savingsGoalId" example:"5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e"` // ID of the savings goal the bill pays into. Set for bills generated by savings goals
	Links         BillLinks  `json:"links"`

	// These fields are computed
	NextDueDate     *types.Date `json:"nextDueDate" example:"2024-05-15" swaggertype:"primitive,string"` // The next due date from today on, null for archived bills
	Recurrence      string      `json:"recurrence" example:"monthly on day 15"`                          // The recurrence in words
	AmountFormatted string      `json:"amountFormatted" example:"$85.00"`                                // Amount formatted for display
	AnnualAmount    int64       `json:"annualAmount" example:"102000"`                                   // Amount per year in cents
}

func newBill(c *gin.Context, model models.Bill) Bill {
	return Bill{
		DefaultModel: model.DefaultModel,
		BillEditable: BillEditable{
			Name:            model.Name,
			Amount:          model.Amount,
			Rule:            model.Rule,
			PaymentSourceID: model.PaymentSourceID,
			CategoryID:      model.CategoryID,
			Metadata:        model.Metadata,
			Note:            model.Note,
			Archived:        model.Archived,
		},
		SavingsGoalID: model.SavingsGoalID,
		Links: BillLinks{
			Self: fmt.Sprintf("%s/v1/bills/%s", baseURL(c), model.ID),
		},
		NextDueDate:     model.NextDueDate(types.Today()),
		Recurrence:      model.Rule.String(),
		AmountFormatted: formatter(c).Format(model.Amount),
		AnnualAmount:    model.Amount * model.Period.PerYear(),
	}
}

type BillListResponse struct {
	Data       []Bill      `json:"data"`                                                          // List of bills
	Error      *string     `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BillCreateResponse struct {
	Data  []BillResponse `json:"data"`                                                          // List of the created bills or their respective error
	Error *string        `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *BillCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, BillResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BillResponse struct {
	Data  *Bill   `json:"data"`                                                          // Data for the bill
	Error *string `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type BillQueryFilter struct {
	Name            string            `form:"name" filterField:"false"`   // By name
	Note            string            `form:"note" filterField:"false"`   // By note
	Period          recurrence.Period `form:"billingPeriod"`              // By billing period
	PaymentSourceID ez_uuid.UUID      `form:"paymentSource"`              // By ID of the payment source
	CategoryID      ez_uuid.UUID      `form:"category"`                   // By ID of the category
	SavingsGoalID   ez_uuid.UUID      `form:"savingsGoal"`                // By ID of the savings goal
	Archived        bool              `form:"archived"`                   // Is the bill archived?
	Search          string            `form:"search" filterField:"false"` // By string in name or note
	Offset          uint              `form:"offset" filterField:"false"` // The offset of the first bill returned. Defaults to 0.
	Limit           int               `form:"limit" filterField:"false"`  // Maximum number of bills to return. Defaults to 50.
}

func (f BillQueryFilter) model() models.Bill {
	return models.Bill{
		Rule:            recurrence.Rule{Period: f.Period},
		PaymentSourceID: f.PaymentSourceID.Ptr(),
		CategoryID:      f.CategoryID.Ptr(),
		SavingsGoalID:   f.SavingsGoalID.Ptr(),
		Archived:        f.Archived,
	}
}
