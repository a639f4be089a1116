package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var may2024 = types.NewMonth(2024, time.May)

// createTestMonthWithItems creates a bill, an income and a todo and
// the snapshot for May 2024 that contains them.
func (suite *TestSuiteStandard) createTestMonthWithItems() v1.Month {
	_ = createTestBill(suite.T(), v1.BillEditable{Name: "Electricity", Amount: 8500, Rule: monthlyOn(15)})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Salary", Amount: 250000, Rule: monthlyOn(1)})
	_ = createTestTodo(suite.T(), v1.TodoEditable{Title: "Change air filter", Rule: monthlyOn(1)})

	month := createTestMonth(suite.T(), may2024)
	require.NotNil(suite.T(), month.Data)
	return *month.Data
}

func (suite *TestSuiteStandard) TestMonthsOptions() {
	month := suite.createTestMonthWithItems()

	tests := []struct {
		name   string
		url    string
		status int
		allow  string
	}{
		{"Month", month.Links.Self, http.StatusNoContent, "OPTIONS, GET, DELETE"},
		{"Lock", month.Links.Lock, http.StatusNoContent, "OPTIONS, POST"},
		{"Unlock", month.Links.Unlock, http.StatusNoContent, "OPTIONS, POST"},
		{"Sync", month.Links.Sync, http.StatusNoContent, "OPTIONS, POST"},
		{"Expenses", month.Links.Expenses, http.StatusNoContent, "OPTIONS, POST"},
		{"Bill", month.Bills[0].Links.Self, http.StatusNoContent, "OPTIONS, PATCH"},
		{"Expense", monthURL(may2024, "expenses", uuid.NewString()), http.StatusNoContent, "OPTIONS, PATCH, DELETE"},
		{"No snapshot", monthURL(types.NewMonth(2024, time.June)), http.StatusNotFound, ""},
		{"Invalid month", "http://example.com/v1/months/2024-13", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsCreate() {
	month := suite.createTestMonthWithItems()

	assert.Equal(suite.T(), "2024-05", month.Name)
	assert.Equal(suite.T(), may2024, month.Month)
	assert.False(suite.T(), month.Locked)
	assert.Nil(suite.T(), month.LockedAt)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-05", month.Links.Self)

	require.Len(suite.T(), month.Bills, 1)
	assert.Equal(suite.T(), "Electricity", month.Bills[0].Name)
	assert.Equal(suite.T(), int64(8500), month.Bills[0].Amount)
	assert.Equal(suite.T(), types.NewDate(2024, 5, 15), month.Bills[0].DueDate)
	assert.False(suite.T(), month.Bills[0].Paid)
	assert.Contains(suite.T(), month.Bills[0].Links.Source, "/v1/bills/")

	require.Len(suite.T(), month.Incomes, 1)
	assert.Equal(suite.T(), types.NewDate(2024, 5, 1), month.Incomes[0].PayDate)

	require.Len(suite.T(), month.Todos, 1)
	assert.Equal(suite.T(), "Change air filter", month.Todos[0].Title)

	assert.Len(suite.T(), month.Expenses, 0)

	s := month.Summary
	assert.Equal(suite.T(), int64(250000), s.ExpectedIncome)
	assert.Equal(suite.T(), int64(0), s.ReceivedIncome)
	assert.Equal(suite.T(), int64(8500), s.TotalBills)
	assert.Equal(suite.T(), int64(8500), s.UnpaidBills)
	assert.Equal(suite.T(), int64(241500), s.Leftover)
	assert.Equal(suite.T(), int64(241500), s.ProjectedBalance)
	assert.Equal(suite.T(), 1, s.TodosOpen)
	assert.Contains(suite.T(), s.Formatted.Leftover, "2,415.00")
}

func (suite *TestSuiteStandard) TestMonthsCreateFails() {
	_ = createTestMonth(suite.T(), may2024)

	tests := []struct {
		name     string
		body     any
		errorMsg string
	}{
		{"Duplicate", v1.MonthEditable{Month: may2024}, models.ErrMonthExists.Error()},
		{"No month", v1.MonthEditable{Note: "Which one?"}, ""},
		{"Invalid month", `{ "month": "2024-13" }`, ""},
		{"Broken JSON", `{ "month": 5 `, ""},
		{"No body", "", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/months", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.MonthResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)

			if tt.errorMsg != "" {
				assert.Equal(t, tt.errorMsg, *response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsSkipArchived() {
	_ = createTestBill(suite.T(), v1.BillEditable{Name: "Gym", Archived: true})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Old job", Archived: true})

	month := createTestMonth(suite.T(), may2024)
	assert.Len(suite.T(), month.Data.Bills, 0)
	assert.Len(suite.T(), month.Data.Incomes, 0)
}

func (suite *TestSuiteStandard) TestMonthsGet() {
	_ = suite.createTestMonthWithItems()

	tests := []struct {
		name   string
		month  string
		status int
	}{
		{"Exists", "2024-05", http.StatusOK},
		{"No snapshot", "2024-06", http.StatusNotFound},
		{"Invalid month", "2024-13", http.StatusBadRequest},
		{"Not a month", "May", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/months/%s", tt.month), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MonthResponse
			test.DecodeResponse(t, &r, &response)

			if tt.status == http.StatusOK {
				require.NotNil(t, response.Data)
				assert.Equal(t, tt.month, response.Data.Name)
				assert.Len(t, response.Data.Bills, 1)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsGetList() {
	_ = createTestMonth(suite.T(), types.NewMonth(2024, time.March))
	_ = createTestMonth(suite.T(), types.NewMonth(2024, time.May))
	_ = createTestMonth(suite.T(), types.NewMonth(2024, time.April))

	r := test.Request(suite.T(), http.MethodPost, monthURL(types.NewMonth(2024, time.March), "lock"), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All, most recent first", "", []string{"2024-05", "2024-04", "2024-03"}},
		{"Locked", "locked=true", []string{"2024-03"}},
		{"Unlocked", "locked=false", []string{"2024-05", "2024-04"}},
		{"Limit", "limit=1", []string{"2024-05"}},
		{"Offset", "offset=2", []string{"2024-03"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/months?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.MonthListResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, len(tt.names))

			for i, name := range tt.names {
				assert.Equal(t, name, response.Data[i].Name)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsSync() {
	month := suite.createTestMonthWithItems()

	// Nothing new
	r := test.Request(suite.T(), http.MethodPost, month.Links.Sync, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSyncResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Added)
	assert.Equal(suite.T(), models.SyncResult{}, *response.Added)

	// A weekly bill occurs on every Wednesday of May 2024
	start := types.NewDate(2024, 5, 1)
	_ = createTestBill(suite.T(), v1.BillEditable{Name: "Lunch", Amount: 4000, Rule: recurrence.Rule{Period: recurrence.Weekly, StartDate: &start}})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Rent from tenant", Amount: 90000, Rule: monthlyOn(3)})

	r = test.Request(suite.T(), http.MethodPost, month.Links.Sync, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.SyncResult{Bills: 5, Incomes: 1}, *response.Added)
	assert.Len(suite.T(), response.Data.Bills, 6)
	assert.Len(suite.T(), response.Data.Incomes, 2)
	assert.Equal(suite.T(), int64(8500+5*4000), response.Data.Summary.TotalBills)

	// Syncing twice does not duplicate items
	r = test.Request(suite.T(), http.MethodPost, month.Links.Sync, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.SyncResult{}, *response.Added)
	assert.Len(suite.T(), response.Data.Bills, 6)

	r = test.Request(suite.T(), http.MethodPost, monthURL(types.NewMonth(2024, time.June), "sync"), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthsSyncKeepsChanges() {
	month := suite.createTestMonthWithItems()

	r := test.Request(suite.T(), http.MethodPatch, month.Bills[0].Links.Self, map[string]any{"paid": true, "actualAmount": 9100})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, month.Links.Sync, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSyncResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.Bills, 1)
	assert.True(suite.T(), response.Data.Bills[0].Paid)
	assert.Equal(suite.T(), int64(9100), *response.Data.Bills[0].ActualAmount)
}

func (suite *TestSuiteStandard) TestMonthsItemsSurviveSourceDeletion() {
	month := suite.createTestMonthWithItems()

	r := test.Request(suite.T(), http.MethodDelete, month.Bills[0].Links.Source, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.Bills, 1)
	assert.Nil(suite.T(), response.Data.Bills[0].BillID)
	assert.Equal(suite.T(), "", response.Data.Bills[0].Links.Source)
	assert.Equal(suite.T(), "Electricity", response.Data.Bills[0].Name)
}

func (suite *TestSuiteStandard) TestMonthsUpdateBill() {
	month := suite.createTestMonthWithItems()
	bill := month.Bills[0]

	// Paying without a date pays today
	r := test.Request(suite.T(), http.MethodPatch, bill.Links.Self, map[string]any{"paid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthBillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Paid)
	require.NotNil(suite.T(), response.Data.PaidDate)
	assert.Equal(suite.T(), types.Today(), *response.Data.PaidDate)

	// The actual amount replaces the expected one in the summary
	paidDate := types.NewDate(2024, 5, 14)
	r = test.Request(suite.T(), http.MethodPatch, bill.Links.Self, map[string]any{"paidDate": paidDate.String(), "actualAmount": 9000, "note": "Price increase"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), paidDate, *response.Data.PaidDate)
	assert.Equal(suite.T(), "Price increase", response.Data.Note)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var monthResponse v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &monthResponse)
	assert.Equal(suite.T(), int64(9000), monthResponse.Data.Summary.TotalBills)
	assert.Equal(suite.T(), int64(9000), monthResponse.Data.Summary.PaidBills)
	assert.Equal(suite.T(), int64(0), monthResponse.Data.Summary.UnpaidBills)

	// Unpaying removes the date
	r = test.Request(suite.T(), http.MethodPatch, bill.Links.Self, map[string]any{"paid": false})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Paid)
	assert.Nil(suite.T(), response.Data.PaidDate)
}

func (suite *TestSuiteStandard) TestMonthsUpdateBillFails() {
	month := suite.createTestMonthWithItems()
	_ = createTestMonth(suite.T(), types.NewMonth(2024, time.June))

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Negative actual amount", month.Bills[0].Links.Self, map[string]any{"actualAmount": -1}, http.StatusBadRequest},
		{"Broken JSON", month.Bills[0].Links.Self, `{ "paid": "yes" }`, http.StatusBadRequest},
		{"No such item", monthURL(may2024, "bills", uuid.NewString()), map[string]any{"paid": true}, http.StatusNotFound},
		{"Item of another month", monthURL(types.NewMonth(2024, time.June), "bills", month.Bills[0].ID.String()), map[string]any{"paid": true}, http.StatusNotFound},
		{"Invalid item ID", monthURL(may2024, "bills", "not-a-uuid"), map[string]any{"paid": true}, http.StatusBadRequest},
		{"No snapshot", monthURL(types.NewMonth(2024, time.July), "bills", month.Bills[0].ID.String()), map[string]any{"paid": true}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsUpdateIncome() {
	month := suite.createTestMonthWithItems()
	income := month.Incomes[0]
	received := types.NewDate(2024, 5, 2)

	r := test.Request(suite.T(), http.MethodPatch, income.Links.Self, map[string]any{
		"received":     true,
		"receivedDate": received.String(),
		"actualAmount": 251230,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthIncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Received)
	assert.Equal(suite.T(), received, *response.Data.ReceivedDate)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var monthResponse v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &monthResponse)
	assert.Equal(suite.T(), int64(251230), monthResponse.Data.Summary.ExpectedIncome)
	assert.Equal(suite.T(), int64(251230), monthResponse.Data.Summary.ReceivedIncome)
	assert.Equal(suite.T(), int64(251230-8500), monthResponse.Data.Summary.Leftover)
}

func (suite *TestSuiteStandard) TestMonthsUpdateTodo() {
	month := suite.createTestMonthWithItems()
	todo := month.Todos[0]

	r := test.Request(suite.T(), http.MethodPatch, todo.Links.Self, map[string]any{"completed": true, "note": "Bought two"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthTodoResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Completed)
	require.NotNil(suite.T(), response.Data.CompletedAt)
	completedAt := *response.Data.CompletedAt

	// Completing again keeps the first completion time
	r = test.Request(suite.T(), http.MethodPatch, todo.Links.Self, map[string]any{"completed": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.CompletedAt)
	assert.WithinDuration(suite.T(), completedAt, *response.Data.CompletedAt, time.Second)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var monthResponse v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &monthResponse)
	assert.Equal(suite.T(), 0, monthResponse.Data.Summary.TodosOpen)

	r = test.Request(suite.T(), http.MethodPatch, todo.Links.Self, map[string]any{"completed": false})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Completed)
	assert.Nil(suite.T(), response.Data.CompletedAt)
}

func (suite *TestSuiteStandard) TestMonthsExpenses() {
	month := suite.createTestMonthWithItems()
	category := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeBill})

	r := test.Request(suite.T(), http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{
		Name:       "Birthday present",
		Amount:     4500,
		Date:       types.NewDate(2024, 5, 21),
		CategoryID: &category.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.MonthExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	expense := response.Data
	require.NotNil(suite.T(), expense)
	assert.Equal(suite.T(), "Birthday present", expense.Name)
	assert.Contains(suite.T(), expense.AmountFormatted, "45.00")

	// Without a date, expenses in past months are on the first day
	r = test.Request(suite.T(), http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Parking", Amount: 500})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), types.NewDate(2024, 5, 1), response.Data.Date)
	parking := response.Data

	r = test.Request(suite.T(), http.MethodPatch, expense.Links.Self, map[string]any{"amount": 5000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(5000), response.Data.Amount)
	assert.Equal(suite.T(), "Birthday present", response.Data.Name)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var monthResponse v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &monthResponse)
	require.Len(suite.T(), monthResponse.Data.Expenses, 2)
	assert.Equal(suite.T(), "Parking", monthResponse.Data.Expenses[0].Name)
	assert.Equal(suite.T(), int64(5500), monthResponse.Data.Summary.TotalExpenses)
	assert.Equal(suite.T(), int64(250000-8500-5500), monthResponse.Data.Summary.Leftover)

	r = test.Request(suite.T(), http.MethodDelete, parking.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, parking.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthsExpensesFail() {
	month := suite.createTestMonthWithItems()
	income := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeIncome})

	r := test.Request(suite.T(), http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Shoes", Amount: 8000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var created v1.MonthExpenseResponse
	test.DecodeResponse(suite.T(), &r, &created)

	tests := []struct {
		name     string
		method   string
		url      string
		body     any
		status   int
		errorMsg string
	}{
		{"Date before month", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Taxi", Amount: 100, Date: types.NewDate(2024, 4, 30)}, http.StatusBadRequest, models.ErrExpenseDateNotInMonth.Error()},
		{"Date after month", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Taxi", Amount: 100, Date: types.NewDate(2024, 6, 1)}, http.StatusBadRequest, models.ErrExpenseDateNotInMonth.Error()},
		{"No name", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Amount: 100}, http.StatusBadRequest, models.ErrNameRequired.Error()},
		{"Amount zero", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Taxi"}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Income category", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Taxi", Amount: 100, CategoryID: &income.Data.ID}, http.StatusBadRequest, models.ErrCategoryTypeMismatch.Error()},
		{"Moved out of the month", http.MethodPatch, created.Data.Links.Self, map[string]any{"date": "2024-06-02"}, http.StatusBadRequest, models.ErrExpenseDateNotInMonth.Error()},
		{"No snapshot", http.MethodPost, monthURL(types.NewMonth(2024, time.June), "expenses"), v1.MonthExpenseEditable{Name: "Taxi", Amount: 100}, http.StatusNotFound, ""},
		{"No such expense", http.MethodPatch, monthURL(may2024, "expenses", uuid.NewString()), map[string]any{"amount": 100}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.errorMsg != "" {
				var response v1.MonthExpenseResponse
				test.DecodeResponse(t, &r, &response)
				assert.Equal(t, tt.errorMsg, *response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsLock() {
	month := suite.createTestMonthWithItems()

	r := test.Request(suite.T(), http.MethodPost, month.Links.Lock, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Locked)
	assert.NotNil(suite.T(), response.Data.LockedAt)

	r = test.Request(suite.T(), http.MethodPost, month.Links.Lock, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrMonthAlreadyLocked.Error(), *response.Error)

	// Nothing in a locked month can change
	tests := []struct {
		name   string
		method string
		url    string
		body   any
	}{
		{"Pay bill", http.MethodPatch, month.Bills[0].Links.Self, map[string]any{"paid": true}},
		{"Receive income", http.MethodPatch, month.Incomes[0].Links.Self, map[string]any{"received": true}},
		{"Complete todo", http.MethodPatch, month.Todos[0].Links.Self, map[string]any{"completed": true}},
		{"Add expense", http.MethodPost, month.Links.Expenses, v1.MonthExpenseEditable{Name: "Taxi", Amount: 100}},
		{"Sync", http.MethodPost, month.Links.Sync, ""},
		{"Delete", http.MethodDelete, month.Links.Self, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Contains(t, r.Body.String(), models.ErrMonthLocked.Error())
		})
	}

	r = test.Request(suite.T(), http.MethodPost, month.Links.Unlock, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Locked)
	assert.Nil(suite.T(), response.Data.LockedAt)

	r = test.Request(suite.T(), http.MethodPost, month.Links.Unlock, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrMonthNotLocked.Error(), *response.Error)

	// Unlocked months can be changed again
	r = test.Request(suite.T(), http.MethodPatch, month.Bills[0].Links.Self, map[string]any{"paid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestMonthsManage() {
	june := types.NewMonth(2024, time.June)

	tests := []struct {
		name   string
		body   any
		status int
		locked bool
	}{
		{"Create", v1.MonthManage{Month: june, Action: "create", Note: "Vacation month"}, http.StatusCreated, false},
		{"Create again", v1.MonthManage{Month: june, Action: "create"}, http.StatusBadRequest, false},
		{"Lock", v1.MonthManage{Month: june, Action: "lock"}, http.StatusOK, true},
		{"Lock again", v1.MonthManage{Month: june, Action: "lock"}, http.StatusBadRequest, false},
		{"Unlock", v1.MonthManage{Month: june, Action: "unlock"}, http.StatusOK, false},
		{"Unknown action", v1.MonthManage{Month: june, Action: "archive"}, http.StatusBadRequest, false},
		{"Unknown action without snapshot", v1.MonthManage{Month: types.NewMonth(2024, time.August), Action: "archive"}, http.StatusBadRequest, false},
		{"No action", map[string]any{"month": "2024-06"}, http.StatusBadRequest, false},
		{"No month", v1.MonthManage{Action: "lock"}, http.StatusBadRequest, false},
		{"No snapshot", v1.MonthManage{Month: types.NewMonth(2024, time.July), Action: "lock"}, http.StatusNotFound, false},
		{"Delete", v1.MonthManage{Month: june, Action: "delete"}, http.StatusNoContent, false},
		{"Delete again", v1.MonthManage{Month: june, Action: "delete"}, http.StatusNotFound, false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/months/manage", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if strings.HasPrefix(tt.name, "Unknown action") {
				var response v1.MonthResponse
				test.DecodeResponse(t, &r, &response)
				require.NotNil(t, response.Error)
				assert.Equal(t, models.ErrMonthActionInvalid.Error(), *response.Error)
			}

			if tt.status == http.StatusOK || tt.status == http.StatusCreated {
				var response v1.MonthResponse
				test.DecodeResponse(t, &r, &response)
				assert.Equal(t, "2024-06", response.Data.Name)
				assert.Equal(t, tt.locked, response.Data.Locked)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsDelete() {
	month := suite.createTestMonthWithItems()

	r := test.Request(suite.T(), http.MethodDelete, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, month.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The month can be created again from scratch
	again := createTestMonth(suite.T(), may2024)
	assert.Len(suite.T(), again.Data.Bills, 1)
	assert.False(suite.T(), again.Data.Bills[0].Paid)
}
