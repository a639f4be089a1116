package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestIncomesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No income with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Income exists", createTestIncome(suite.T(), v1.IncomeEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/incomes/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesCreate() {
	incomeCategory := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeIncome})
	billCategory := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeBill})
	start := types.NewDate(2024, 1, 5)

	tests := []struct {
		name     string
		income   v1.IncomeEditable
		status   int
		errorMsg string
	}{
		{"Bi-weekly salary", v1.IncomeEditable{Name: "Salary", Amount: 250000, Rule: recurrence.Rule{Period: recurrence.BiWeekly, StartDate: &start}, CategoryID: &incomeCategory.Data.ID}, http.StatusCreated, ""},
		{"Semi-annual bonus", v1.IncomeEditable{Name: "Bonus", Amount: 100000, Rule: recurrence.Rule{Period: recurrence.SemiAnnually, StartDate: &start}}, http.StatusCreated, ""},
		{"Bill category", v1.IncomeEditable{Name: "Side job", Amount: 100, Rule: monthlyOn(1), CategoryID: &billCategory.Data.ID}, http.StatusBadRequest, models.ErrCategoryTypeMismatch.Error()},
		{"Amount zero", v1.IncomeEditable{Name: "Side job", Rule: monthlyOn(1)}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"No recurrence mode", v1.IncomeEditable{Name: "Side job", Amount: 100, Rule: recurrence.Rule{Period: recurrence.Monthly}}, http.StatusBadRequest, recurrence.ErrMonthlyModeRequired.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/incomes", []v1.IncomeEditable{tt.income})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.IncomeCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status != http.StatusCreated {
				assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
				return
			}

			assert.Equal(t, tt.income.Name, response.Data[0].Data.Name)
			assert.Equal(t, tt.income.Amount*tt.income.Period.PerYear(), response.Data[0].Data.AnnualAmount)
			assert.NotNil(t, response.Data[0].Data.NextPayDate)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesGetFilter() {
	source := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{})

	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Salary", PaymentSourceID: &source.Data.ID})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Rent from tenant"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{Name: "Old job", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Payment source", fmt.Sprintf("paymentSource=%s", source.Data.ID), 1},
		{"Not archived", "archived=false", 2},
		{"Search", "search=tenant", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/incomes?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.IncomeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesUpdate() {
	income := createTestIncome(suite.T(), v1.IncomeEditable{Name: "Salary", Amount: 250000})

	r := test.Request(suite.T(), http.MethodPatch, income.Data.Links.Self, map[string]any{
		"amount":   260000,
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(260000), response.Data.Amount)
	assert.True(suite.T(), response.Data.Archived)
	assert.Nil(suite.T(), response.Data.NextPayDate)

	r = test.Request(suite.T(), http.MethodPatch, income.Data.Links.Self, map[string]any{"name": " "})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomesDelete() {
	income := createTestIncome(suite.T(), v1.IncomeEditable{})

	r := test.Request(suite.T(), http.MethodDelete, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, income.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
