package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/savings"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSavingsGoalsOptions() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"No goal with this ID", uuid.New().String(), http.StatusNotFound, ""},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest, ""},
		{"Goal exists", goal.Data.ID.String(), http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{"Contribute", fmt.Sprintf("%s/contribute", goal.Data.ID), http.StatusNoContent, "OPTIONS, POST"},
		{"Contributions", fmt.Sprintf("%s/contributions", goal.Data.ID), http.StatusNoContent, "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/savings-goals/%s", tt.path), "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestSavingsGoalsCreate() {
	today := types.Today()
	incomeCategory := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeIncome})

	tests := []struct {
		name     string
		goal     v1.SavingsGoalEditable
		status   int
		errorMsg string
	}{
		{"Monthly", v1.SavingsGoalEditable{Name: "Vacation", TargetAmount: 300000, TargetDate: today.AddMonths(6)}, http.StatusCreated, ""},
		{"Weekly", v1.SavingsGoalEditable{Name: "Bike", TargetAmount: 80000, TargetDate: today.AddDays(70), Frequency: savings.Weekly}, http.StatusCreated, ""},
		{"Already saved", v1.SavingsGoalEditable{Name: "Laptop", TargetAmount: 150000, SavedAmount: 150000, TargetDate: today.AddMonths(2)}, http.StatusCreated, ""},
		{"No name", v1.SavingsGoalEditable{TargetAmount: 100, TargetDate: today}, http.StatusBadRequest, models.ErrNameRequired.Error()},
		{"No target amount", v1.SavingsGoalEditable{Name: "Nothing", TargetDate: today}, http.StatusBadRequest, savings.ErrTargetNotPositive.Error()},
		{"No target date", v1.SavingsGoalEditable{Name: "Someday", TargetAmount: 100}, http.StatusBadRequest, models.ErrTargetDateRequired.Error()},
		{"Target before start", v1.SavingsGoalEditable{Name: "Late", TargetAmount: 100, StartDate: today, TargetDate: today.AddDays(-1)}, http.StatusBadRequest, savings.ErrTargetBeforeStart.Error()},
		{"Invalid frequency", v1.SavingsGoalEditable{Name: "Daily", TargetAmount: 100, TargetDate: today, Frequency: "daily"}, http.StatusBadRequest, savings.ErrInvalidFrequency.Error()},
		{"Invalid status", v1.SavingsGoalEditable{Name: "Dreaming", TargetAmount: 100, TargetDate: today, Status: "dreaming"}, http.StatusBadRequest, models.ErrGoalStatusInvalid.Error()},
		{"Negative saved amount", v1.SavingsGoalEditable{Name: "Debt", TargetAmount: 100, SavedAmount: -1, TargetDate: today}, http.StatusBadRequest, models.ErrSavedAmountNegative.Error()},
		{"Income category", v1.SavingsGoalEditable{Name: "Car", TargetAmount: 100, TargetDate: today, CategoryID: &incomeCategory.Data.ID}, http.StatusBadRequest, models.ErrCategoryTypeMismatch.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/savings-goals", []v1.SavingsGoalEditable{tt.goal})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SavingsGoalCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status != http.StatusCreated {
				assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
				return
			}

			goal := response.Data[0].Data
			assert.Equal(t, tt.goal.Name, goal.Name)
			assert.Equal(t, tt.goal.TargetAmount-tt.goal.SavedAmount, goal.Remaining)
			require.NotNil(t, goal.Schedule)
			assert.Nil(t, goal.BillID)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingsGoalsDefaults() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{TargetAmount: 120000, SavedAmount: 30000})

	assert.Equal(suite.T(), savings.Monthly, goal.Data.Frequency)
	assert.Equal(suite.T(), models.GoalStatusActive, goal.Data.Status)
	assert.Equal(suite.T(), types.Today(), goal.Data.StartDate)
	assert.Equal(suite.T(), int64(90000), goal.Data.Remaining)
	assert.Equal(suite.T(), "25", goal.Data.Progress.String())
	assert.Contains(suite.T(), goal.Data.RemainingFormatted, "900.00")
}

func (suite *TestSuiteStandard) TestSavingsGoalsSchedule() {
	tests := []struct {
		name      string
		query     string
		status    int
		errorMsg  string
		payment   int64
		periods   int
		payments  int
		finalDate types.Date
	}{
		{
			"Monthly",
			"targetAmount=120000&startDate=2024-01-15&targetDate=2024-12-15&frequency=monthly",
			http.StatusOK, "", 10000, 12, 12, types.NewDate(2024, 12, 15),
		},
		{
			"Rounded up",
			"targetAmount=100000&savedAmount=5000&startDate=2024-01-15&targetDate=2024-12-15",
			http.StatusOK, "", 7917, 12, 12, types.NewDate(2024, 12, 15),
		},
		{
			"Weekly",
			"targetAmount=10000&startDate=2024-01-01&targetDate=2024-01-29&frequency=weekly",
			http.StatusOK, "", 2000, 5, 5, types.NewDate(2024, 1, 29),
		},
		{
			"Fixed payment",
			"targetAmount=100000&paymentAmount=30000&startDate=2024-01-15&frequency=monthly",
			http.StatusOK, "", 30000, 4, 4, types.NewDate(2024, 4, 15),
		},
		{"No target", "startDate=2024-01-15&targetDate=2024-12-15", http.StatusBadRequest, savings.ErrTargetNotPositive.Error(), 0, 0, 0, types.Date{}},
		{"Target before start", "targetAmount=100&startDate=2024-02-01&targetDate=2024-01-01", http.StatusBadRequest, savings.ErrTargetBeforeStart.Error(), 0, 0, 0, types.Date{}},
		{"Invalid frequency", "targetAmount=100&targetDate=2099-01-01&frequency=daily", http.StatusBadRequest, savings.ErrInvalidFrequency.Error(), 0, 0, 0, types.Date{}},
		{"Negative payment", "targetAmount=100&paymentAmount=-5", http.StatusBadRequest, savings.ErrAmountNotPositive.Error(), 0, 0, 0, types.Date{}},
		{"Broken date", "targetAmount=100&targetDate=next-year", http.StatusBadRequest, "", 0, 0, 0, types.Date{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/savings-goals/schedule?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SavingsScheduleResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status != http.StatusOK {
				require.NotNil(t, response.Error)
				if tt.errorMsg != "" {
					assert.Equal(t, tt.errorMsg, *response.Error)
				}
				return
			}

			require.NotNil(t, response.Data)
			assert.Equal(t, tt.payment, response.Data.PaymentAmount)
			assert.Equal(t, tt.periods, response.Data.Periods)
			assert.Equal(t, tt.payments, response.Data.Payments)
			require.NotNil(t, response.Data.FinalPaymentDate)
			assert.Equal(t, tt.finalDate, *response.Data.FinalPaymentDate)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingsGoalsGetFilter() {
	source := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{})

	_ = createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "Vacation", PaymentSourceID: &source.Data.ID})
	_ = createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "New car", Frequency: savings.BiWeekly, Note: "Electric"})
	_ = createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "Sofa", Status: models.GoalStatusPaused})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Payment source", fmt.Sprintf("paymentSource=%s", source.Data.ID), 1},
		{"Bi-weekly", "frequency=bi_weekly", 1},
		{"Paused", "status=paused", 1},
		{"Name", "name=car", 1},
		{"Search in note", "search=electric", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/savings-goals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SavingsGoalListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestSavingsGoalsContribute() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{TargetAmount: 50000})
	date := types.Today().AddDays(-3)

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingsContributionEditable{Amount: 20000, Date: date, Note: "Tax refund"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SavingsContributeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), int64(20000), response.Data.Goal.SavedAmount)
	assert.Equal(suite.T(), int64(30000), response.Data.Goal.Remaining)
	assert.Equal(suite.T(), models.GoalStatusActive, response.Data.Goal.Status)
	assert.Equal(suite.T(), goal.Data.ID, response.Data.Contribution.SavingsGoalID)
	assert.Equal(suite.T(), date, response.Data.Contribution.Date)
	assert.Equal(suite.T(), "Tax refund", response.Data.Contribution.Note)

	// Without a date, the contribution is made today
	r = test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingsContributionEditable{Amount: 30000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), types.Today(), response.Data.Contribution.Date)
	assert.Equal(suite.T(), int64(0), response.Data.Goal.Remaining)
	assert.Equal(suite.T(), models.GoalStatusCompleted, response.Data.Goal.Status)
	assert.Equal(suite.T(), "100", response.Data.Goal.Progress.String())
}

func (suite *TestSuiteStandard) TestSavingsGoalsContributeFails() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Zero", goal.Data.Links.Contribute, v1.SavingsContributionEditable{}, http.StatusBadRequest},
		{"Negative", goal.Data.Links.Contribute, v1.SavingsContributionEditable{Amount: -100}, http.StatusBadRequest},
		{"Broken JSON", goal.Data.Links.Contribute, `{ "amount": "much" }`, http.StatusBadRequest},
		{"No body", goal.Data.Links.Contribute, "", http.StatusBadRequest},
		{"Goal does not exist", fmt.Sprintf("http://example.com/v1/savings-goals/%s/contribute", uuid.New()), v1.SavingsContributionEditable{Amount: 100}, http.StatusNotFound},
		{"Invalid ID", "http://example.com/v1/savings-goals/not-a-uuid/contribute", v1.SavingsContributionEditable{Amount: 100}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(0), response.Data.SavedAmount)
}

func (suite *TestSuiteStandard) TestSavingsGoalsContributions() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{TargetAmount: 100000})
	other := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})

	for _, c := range []v1.SavingsContributionEditable{
		{Amount: 1000, Date: types.NewDate(2024, 1, 10)},
		{Amount: 3000, Date: types.NewDate(2024, 3, 10)},
		{Amount: 2000, Date: types.NewDate(2024, 2, 10)},
	} {
		r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, c)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, other.Data.Links.Contribute, v1.SavingsContributionEditable{Amount: 500})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Contributions, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SavingsContributionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), int64(3000), response.Data[0].Amount)
	assert.Equal(suite.T(), int64(2000), response.Data[1].Amount)
	assert.Equal(suite.T(), int64(1000), response.Data[2].Amount)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/savings-goals/%s/contributions", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSavingsGoalsAutoCreateBill() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeBill})
	today := types.Today()

	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{
		Name:           "Emergency fund",
		TargetAmount:   120000,
		StartDate:      today,
		TargetDate:     today.AddMonths(11),
		CategoryID:     &category.Data.ID,
		AutoCreateBill: true,
	})
	require.NotNil(suite.T(), goal.Data.BillID)

	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Bills, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var bills v1.BillListResponse
	test.DecodeResponse(suite.T(), &r, &bills)
	require.Len(suite.T(), bills.Data, 1)

	bill := bills.Data[0]
	assert.Equal(suite.T(), *goal.Data.BillID, bill.ID)
	assert.Equal(suite.T(), "Emergency fund", bill.Name)
	assert.Equal(suite.T(), int64(10000), bill.Amount)
	assert.Equal(suite.T(), &category.Data.ID, bill.CategoryID)
	assert.Equal(suite.T(), &goal.Data.ID, bill.SavingsGoalID)
	assert.False(suite.T(), bill.Archived)

	// Pausing the goal archives the bill
	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{"status": "paused"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Bills, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &bills)
	require.Len(suite.T(), bills.Data, 1)
	assert.True(suite.T(), bills.Data[0].Archived)

	// Resuming brings it back instead of creating a second one
	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{"status": "active"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Bills, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &bills)
	require.Len(suite.T(), bills.Data, 1)
	assert.False(suite.T(), bills.Data[0].Archived)
}

func (suite *TestSuiteStandard) TestSavingsGoalsNoBillWithoutAutoCreate() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})
	assert.Nil(suite.T(), goal.Data.BillID)

	r := test.Request(suite.T(), http.MethodGet, goal.Data.Links.Bills, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var bills v1.BillListResponse
	test.DecodeResponse(suite.T(), &r, &bills)
	assert.Len(suite.T(), bills.Data, 0)
}

func (suite *TestSuiteStandard) TestSavingsGoalsUpdate() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{Name: "Vacation"})

	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{
		"name":        "Summer vacation",
		"savedAmount": 60000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SavingsGoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Summer vacation", response.Data.Name)
	assert.Equal(suite.T(), int64(60000), response.Data.Remaining)
	assert.Equal(suite.T(), "50", response.Data.Progress.String())

	r = test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, map[string]any{"status": "done"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSavingsGoalsDelete() {
	goal := createTestSavingsGoal(suite.T(), v1.SavingsGoalEditable{})

	r := test.Request(suite.T(), http.MethodPost, goal.Data.Links.Contribute, v1.SavingsContributionEditable{Amount: 100})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, goal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
