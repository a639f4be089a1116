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

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	Name            string     `json:"name" example:"Salary" default:""`                              // Name of the income
	Amount          int64      `json:"amount" example:"250000" default:"0"`                           // Amount in cents
	recurrence.Rule            // When the income arrives
	PaymentSourceID *uuid.UUID `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source the income is paid into
	CategoryID      *uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the category, must be of type income

	Metadata models.IncomeMetadata `json:"metadata"`                                  // Optional details
	Note     string                `json:"note" example:"Paid every other Friday" default:""` // A note
	Archived bool                  `json:"archived" example:"false" default:"false"`  // Is the income archived? Archived incomes are not added to months
}

func (editable IncomeEditable) model() models.Income {
	return models.Income{
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

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/0a4a8f1b-0e4f-4c36-a6d2-08de4c7a0f1b"` // The income itself
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`

	// These fields are computed
	NextPayDate     *types.Date `json:"nextPayDate" example:"2024-05-17" swaggertype:"primitive,string"` // The next pay date from today on, null for archived incomes
	Recurrence      string      `json:"recurrence" example:"every other week on Friday"`                 // The recurrence in words
	AmountFormatted string      `json:"amountFormatted" example:"$2,500.00"`                             // Amount formatted for display
	AnnualAmount    int64       `json:"annualAmount" example:"6500000"`                                  // Amount per year in cents
}

func newIncome(c *gin.Context, model models.Income) Income {
	return Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			Name:            model.Name,
			Amount:          model.Amount,
			Rule:            model.Rule,
			PaymentSourceID: model.PaymentSourceID,
			CategoryID:      model.CategoryID,
			Metadata:        model.Metadata,
			Note:            model.Note,
			Archived:        model.Archived,
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", baseURL(c), model.ID),
		},
		NextPayDate:     model.NextPayDate(types.Today()),
		Recurrence:      model.Rule.String(),
		AmountFormatted: formatter(c).Format(model.Amount),
		AnnualAmount:    model.Amount * model.Period.PerYear(),
	}
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of incomes
	Error      *string     `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`                                                          // List of the created incomes or their respective error
	Error *string          `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the income
	Error *string `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type IncomeQueryFilter struct {
	Name            string            `form:"name" filterField:"false"`   // By name
	Note            string            `form:"note" filterField:"false"`   // By note
	Period          recurrence.Period `form:"billingPeriod"`              // By billing period
	PaymentSourceID ez_uuid.UUID      `form:"paymentSource"`              // By ID of the payment source
	CategoryID      ez_uuid.UUID      `form:"category"`                   // By ID of the category
	Archived        bool              `form:"archived"`                   // Is the income archived?
	Search          string            `form:"search" filterField:"false"` // By string in name or note
	Offset          uint              `form:"offset" filterField:"false"` // The offset of the first income returned. Defaults to 0.
	Limit           int               `form:"limit" filterField:"false"`  // Maximum number of incomes to return. Defaults to 50.
}

func (f IncomeQueryFilter) model() models.Income {
	return models.Income{
		Rule:            recurrence.Rule{Period: f.Period},
		PaymentSourceID: f.PaymentSourceID.Ptr(),
		CategoryID:      f.CategoryID.Ptr(),
		Archived:        f.Archived,
	}
}
