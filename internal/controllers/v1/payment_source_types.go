package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/models"
	"github.com/shopspring/decimal"
)

// PaymentSourceEditable represents all user configurable parameters
type PaymentSourceEditable struct {
	Name                string                       `json:"name" example:"Checking" default:""`                  // Name of the payment source
	Type                models.PaymentSourceType     `json:"type" example:"bank_account" default:"bank_account"` // One of bank_account, credit_card, line_of_credit, investment, cash
	Balance             int64                        `json:"balance" example:"125000" default:"0"`               // Balance in cents. For credit cards and lines of credit, the amount owed
	Metadata            models.PaymentSourceMetadata `json:"metadata"`                                           // Optional details
	ExcludeFromLeftover bool                         `json:"excludeFromLeftover" example:"false" default:"false"` // Leave the balance out of the available funds of months
	Archived            bool                         `json:"archived" example:"false" default:"false"`           // Is the payment source archived?
}

func (editable PaymentSourceEditable) model() models.PaymentSource {
	return models.PaymentSource{
		Name:                editable.Name,
		Type:                editable.Type,
		Balance:             editable.Balance,
		Metadata:            editable.Metadata,
		ExcludeFromLeftover: editable.ExcludeFromLeftover,
		Archived:            editable.Archived,
	}
}

type PaymentSourceLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/payment-sources/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`          // The payment source itself
	Bills   string `json:"bills" example:"https://example.com/api/v1/bills?paymentSource=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`     // Bills paid from this source
	Incomes string `json:"incomes" example:"https://example.com/api/v1/incomes?paymentSource=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Incomes paid to this source
}

type PaymentSource struct {
	models.DefaultModel
	PaymentSourceEditable
	SortOrder int                `json:"sortOrder" example:"2"` // Position in the list of payment sources
	Links     PaymentSourceLinks `json:"links"`

	// These fields are computed
	BalanceFormatted string           `json:"balanceFormatted" example:"$1,250.00"`                     // Balance formatted for display
	AvailableCredit  *int64           `json:"availableCredit" example:"375000"`                          // Credit limit minus balance in cents, only for debt accounts with a credit limit
	Utilization      *decimal.Decimal `json:"utilization" example:"25" swaggertype:"primitive,string"` // Share of the credit limit in use in percent
}

func newPaymentSource(c *gin.Context, model models.PaymentSource) PaymentSource {
	url := baseURL(c)

	return PaymentSource{
		DefaultModel: model.DefaultModel,
		PaymentSourceEditable: PaymentSourceEditable{
			Name:                model.Name,
			Type:                model.Type,
			Balance:             model.Balance,
			Metadata:            model.Metadata,
			ExcludeFromLeftover: model.ExcludeFromLeftover,
			Archived:            model.Archived,
		},
		SortOrder: model.SortOrder,
		Links: PaymentSourceLinks{
			Self:    fmt.Sprintf("%s/v1/payment-sources/%s", url, model.ID),
			Bills:   fmt.Sprintf("%s/v1/bills?paymentSource=%s", url, model.ID),
			Incomes: fmt.Sprintf("%s/v1/incomes?paymentSource=%s", url, model.ID),
		},
		BalanceFormatted: formatter(c).Format(model.Balance),
		AvailableCredit:  model.AvailableCredit(),
		Utilization:      model.Utilization(),
	}
}

type PaymentSourceListResponse struct {
	Data       []PaymentSource `json:"data"`                                                          // List of payment sources
	Error      *string         `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type PaymentSourceCreateResponse struct {
	Data  []PaymentSourceResponse `json:"data"`                                                          // List of the created payment sources or their respective error
	Error *string                 `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *PaymentSourceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, PaymentSourceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentSourceResponse struct {
	Data  *PaymentSource `json:"data"`                                                          // Data for the payment source
	Error *string        `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type PaymentSourceQueryFilter struct {
	Name                string                   `form:"name" filterField:"false"`   // By name
	Type                models.PaymentSourceType `form:"type"`                       // By type
	ExcludeFromLeftover bool                     `form:"excludeFromLeftover"`        // Is the balance excluded from available funds?
	Archived            bool                     `form:"archived"`                   // Is the payment source archived?
	Search              string                   `form:"search" filterField:"false"` // By string in name
	Offset              uint                     `form:"offset" filterField:"false"` // The offset of the first payment source returned. Defaults to 0.
	Limit               int                      `form:"limit" filterField:"false"`  // Maximum number of payment sources to return. Defaults to 50.
}

func (f PaymentSourceQueryFilter) model() models.PaymentSource {
	return models.PaymentSource{
		Type:                f.Type,
		ExcludeFromLeftover: f.ExcludeFromLeftover,
		Archived:            f.Archived,
	}
}
