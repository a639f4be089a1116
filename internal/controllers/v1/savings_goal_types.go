package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/money"
	"github.com/ledgerline/backend/internal/savings"
	"github.com/ledgerline/backend/internal/types"
	ez_uuid "github.com/ledgerline/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingsGoalEditable represents all user configurable parameters
type SavingsGoalEditable struct {
	Name            string            `json:"name" example:"Emergency fund" default:""`                     // Name of the goal
	TargetAmount    int64             `json:"targetAmount" example:"1000000" default:"0"`                   // Amount to save in cents
	SavedAmount     int64             `json:"savedAmount" example:"250000" default:"0"`                     // Amount already saved in cents
	StartDate       types.Date        `json:"startDate" example:"2024-01-01" swaggertype:"primitive,string"` // Date saving starts, defaults to today
	TargetDate      types.Date        `json:"targetDate" example:"2024-12-31" swaggertype:"primitive,string"` // Date the target amount should be reached
	Frequency       savings.Frequency `json:"frequency" example:"monthly" default:"monthly"`                // One of weekly, bi_weekly, monthly
	PaymentSourceID *uuid.UUID        `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source payments are made from
	CategoryID      *uuid.UUID        `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the bill category for the generated bill
	AutoCreateBill  bool              `json:"autoCreateBill" example:"true" default:"false"`                // Create a bill for the scheduled payments
	Status          models.GoalStatus `json:"status" example:"active" default:"active"`                     // One of active, paused, completed
	Note            string            `json:"note" example:"Three months of expenses" default:""`           // A note
}

func (editable SavingsGoalEditable) model() models.SavingsGoal {
	return models.SavingsGoal{
		Name:            editable.Name,
		TargetAmount:    editable.TargetAmount,
		SavedAmount:     editable.SavedAmount,
		StartDate:       editable.StartDate,
		TargetDate:      editable.TargetDate,
		Frequency:       editable.Frequency,
		PaymentSourceID: editable.PaymentSourceID,
		CategoryID:      editable.CategoryID,
		AutoCreateBill:  editable.AutoCreateBill,
		Status:          editable.Status,
		Note:            editable.Note,
	}
}

type SavingsGoalLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/savings-goals/5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e"`                             // The savings goal itself
	Contributions string `json:"contributions" example:"https://example.com/api/v1/savings-goals/5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e/contributions"` // Contributions to the goal
	Contribute    string `json:"contribute" example:"https://example.com/api/v1/savings-goals/5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e/contribute"`       // Endpoint to add a contribution
	Bills         string `json:"bills" example:"https://example.com/api/v1/bills?savingsGoal=5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e"`                   // The bill generated for the goal
}

type SavingsGoal struct {
	models.DefaultModel
	SavingsGoalEditable
	Links SavingsGoalLinks `json:"links"`

	// These fields are computed
	Remaining          int64             `json:"remaining" example:"750000"`                           // Amount still to save in cents
	RemainingFormatted string            `json:"remainingFormatted" example:"$7,500.00"`               // Remaining amount formatted for display
	Progress           decimal.Decimal   `json:"progress" example:"25" swaggertype:"primitive,string"` // Saved share of the target in percent
	Schedule           *savings.Schedule `json:"schedule"`                                             // Payment schedule from today on, null if it cannot be calculated
	BillID             *uuid.UUID        `json:"billId" example:"c8b2a2e4-3f2f-4b55-ae8c-51d43c3a8c1f"` // ID of the generated bill, if any
}

func newSavingsGoal(c *gin.Context, db *gorm.DB, model models.SavingsGoal) (SavingsGoal, error) {
	bill, err := model.Bill(db)
	if err != nil {
		return SavingsGoal{}, err
	}

	var billID *uuid.UUID
	if bill != nil {
		billID = &bill.ID
	}

	var schedule *savings.Schedule
	if s, err := model.Schedule(types.Today()); err == nil {
		schedule = &s
	}

	url := fmt.Sprintf("%s/v1/savings-goals/%s", baseURL(c), model.ID)

	return SavingsGoal{
		DefaultModel: model.DefaultModel,
		SavingsGoalEditable: SavingsGoalEditable{
			Name:            model.Name,
			TargetAmount:    model.TargetAmount,
			SavedAmount:     model.SavedAmount,
			StartDate:       model.StartDate,
			TargetDate:      model.TargetDate,
			Frequency:       model.Frequency,
			PaymentSourceID: model.PaymentSourceID,
			CategoryID:      model.CategoryID,
			AutoCreateBill:  model.AutoCreateBill,
			Status:          model.Status,
			Note:            model.Note,
		},
		Links: SavingsGoalLinks{
			Self:          url,
			Contributions: url + "/contributions",
			Contribute:    url + "/contribute",
			Bills:         fmt.Sprintf("%s/v1/bills?savingsGoal=%s", baseURL(c), model.ID),
		},
		Remaining:          model.Remaining(),
		RemainingFormatted: formatter(c).Format(model.Remaining()),
		Progress:           money.Percent(min(model.SavedAmount, model.TargetAmount), model.TargetAmount),
		Schedule:           schedule,
		BillID:             billID,
	}, nil
}

type SavingsGoalListResponse struct {
	Data       []SavingsGoal `json:"data"`                                                          // List of savings goals
	Error      *string       `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SavingsGoalCreateResponse struct {
	Data  []SavingsGoalResponse `json:"data"`                                                          // List of the created savings goals or their respective error
	Error *string               `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *SavingsGoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SavingsGoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SavingsGoalResponse struct {
	Data  *SavingsGoal `json:"data"`                                                          // Data for the savings goal
	Error *string      `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type SavingsGoalQueryFilter struct {
	Name            string            `form:"name" filterField:"false"`   // By name
	Note            string            `form:"note" filterField:"false"`   // By note
	Frequency       savings.Frequency `form:"frequency"`                  // By frequency
	Status          models.GoalStatus `form:"status"`                     // By status
	PaymentSourceID ez_uuid.UUID      `form:"paymentSource"`              // By ID of the payment source
	CategoryID      ez_uuid.UUID      `form:"category"`                   // By ID of the category
	AutoCreateBill  bool              `form:"autoCreateBill"`             // Does the goal generate a bill?
	Search          string            `form:"search" filterField:"false"` // By string in name or note
	Offset          uint              `form:"offset" filterField:"false"` // The offset of the first savings goal returned. Defaults to 0.
	Limit           int               `form:"limit" filterField:"false"`  // Maximum number of savings goals to return. Defaults to 50.
}

func (f SavingsGoalQueryFilter) model() models.SavingsGoal {
	return models.SavingsGoal{
		Frequency:       f.Frequency,
		Status:          f.Status,
		PaymentSourceID: f.PaymentSourceID.Ptr(),
		CategoryID:      f.CategoryID.Ptr(),
		AutoCreateBill:  f.AutoCreateBill,
	}
}

// SavingsContributionEditable is money put towards a goal.
type SavingsContributionEditable struct {
	Amount int64      `json:"amount" example:"25000"`                                      // Amount in cents, must be larger than zero
	Date   types.Date `json:"date" example:"2024-05-03" swaggertype:"primitive,string"` // Date of the contribution, defaults to today
	Note   string     `json:"note" example:"Tax refund"`                                  // A note
}

type SavingsContribution struct {
	models.DefaultModel
	SavingsGoalID uuid.UUID  `json:"savingsGoalId" example:"5d5d8f36-6c1a-4a4b-9b6d-0b8cbd7e2d1e"` // ID of the savings goal
	Amount        int64      `json:"amount" example:"25000"`                                       // Amount in cents
	Date          types.Date `json:"date" example:"2024-05-03" swaggertype:"primitive,string"`   // Date of the contribution
	Note          string     `json:"note" example:"Tax refund"`                                    // A note
}

func newSavingsContribution(model models.SavingsContribution) SavingsContribution {
	return SavingsContribution{
		DefaultModel:  model.DefaultModel,
		SavingsGoalID: model.SavingsGoalID,
		Amount:        model.Amount,
		Date:          model.Date,
		Note:          model.Note,
	}
}

type SavingsContributionListResponse struct {
	Data  []SavingsContribution `json:"data"`                                                          // Contributions, most recent first
	Error *string               `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

// SavingsContributeResult is the goal after a contribution and the contribution itself.
type SavingsContributeResult struct {
	Goal         SavingsGoal         `json:"goal"`
	Contribution SavingsContribution `json:"contribution"`
}

type SavingsContributeResponse struct {
	Data  *SavingsContributeResult `json:"data"`                                                          // Data for the contribution
	Error *string                  `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

// SavingsScheduleQuery describes a goal to calculate a schedule for.
type SavingsScheduleQuery struct {
	TargetAmount  int64             `form:"targetAmount"`  // Amount to save in cents
	SavedAmount   int64             `form:"savedAmount"`   // Amount already saved in cents
	StartDate     types.Date        `form:"startDate"`     // First payment date, defaults to today
	TargetDate    types.Date        `form:"targetDate"`    // Date the target should be reached
	Frequency     savings.Frequency `form:"frequency"`     // Payment frequency, defaults to monthly
	PaymentAmount int64             `form:"paymentAmount"` // Fixed amount per payment. When set, the schedule is projected from it instead of the target date
}

type SavingsScheduleResponse struct {
	Data  *savings.Schedule `json:"data"`                                                                // The calculated schedule
	Error *string           `json:"error" example:"the target date must not be before the start date"` // The error, if any occurred
}
