package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPaymentSourcesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestPaymentSourcesDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/payment-sources", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.PaymentSourceListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

// TestPaymentSourcesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestPaymentSourcesOptions() {
	tests := []struct {
		name   string
		id     string // path at the payment sources endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No payment source with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Payment source exists", createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/payment-sources", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestPaymentSourcesGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestPaymentSourcesGetSingle() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing payment source", p.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No payment source with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"PATCH No payment source with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No payment source with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/payment-sources/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentSourcesCreate() {
	tests := []struct {
		name     string
		source   v1.PaymentSourceEditable
		status   int
		errorMsg string
	}{
		{"Bank account", v1.PaymentSourceEditable{Name: "Checking", Balance: 125000}, http.StatusCreated, ""},
		{
			"Credit card with limit",
			v1.PaymentSourceEditable{Name: "Visa", Type: models.CreditCard, Balance: 50000, Metadata: models.PaymentSourceMetadata{CreditLimit: ptr(int64(200000)), LastFour: "4242"}},
			http.StatusCreated,
			"",
		},
		{
			"Credit limit on bank account",
			v1.PaymentSourceEditable{Name: "Savings", Type: models.BankAccount, Metadata: models.PaymentSourceMetadata{CreditLimit: ptr(int64(1000))}},
			http.StatusBadRequest,
			models.ErrCreditLimitNotAllowed.Error(),
		},
		{
			"Last four too long",
			v1.PaymentSourceEditable{Name: "Amex", Type: models.CreditCard, Metadata: models.PaymentSourceMetadata{LastFour: "12345"}},
			http.StatusBadRequest,
			models.ErrLastFourInvalid.Error(),
		},
		{"Invalid type", v1.PaymentSourceEditable{Name: "Mattress", Type: "shoebox"}, http.StatusBadRequest, models.ErrPaymentSourceTypeInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/payment-sources", []v1.PaymentSourceEditable{tt.source})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.PaymentSourceCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status != http.StatusCreated {
				assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
				return
			}

			assert.Equal(t, tt.source.Name, response.Data[0].Data.Name)
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/payment-sources/%s", response.Data[0].Data.ID), response.Data[0].Data.Links.Self)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentSourcesCreateDefaults() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Balance: 125000})

	assert.Equal(suite.T(), models.BankAccount, p.Data.Type)
	assert.Contains(suite.T(), p.Data.BalanceFormatted, "1,250.00")
	assert.Nil(suite.T(), p.Data.AvailableCredit)
	assert.Nil(suite.T(), p.Data.Utilization)
}

func (suite *TestSuiteStandard) TestPaymentSourcesCreditDetails() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{
		Type:    models.CreditCard,
		Balance: 50000,
		Metadata: models.PaymentSourceMetadata{
			CreditLimit: ptr(int64(200000)),
		},
	})

	require.NotNil(suite.T(), p.Data.AvailableCredit)
	assert.Equal(suite.T(), int64(150000), *p.Data.AvailableCredit)
	require.NotNil(suite.T(), p.Data.Utilization)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(*p.Data.Utilization), "Utilization is %s", p.Data.Utilization)
}

func (suite *TestSuiteStandard) TestPaymentSourcesNameUnique() {
	_ = createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Name: "Checking"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payment-sources", []v1.PaymentSourceEditable{{Name: "Checking"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.PaymentSourceCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrPaymentSourceNameNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestPaymentSourcesCreateBrokenJSON() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/payment-sources", `[{ "name": 2 }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPaymentSourcesGetFilter() {
	_ = createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Name: "Checking"})
	_ = createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Name: "Card", Type: models.CreditCard})
	_ = createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Name: "Old checking", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Credit cards", "type=credit_card", 1},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Search", "search=check", 2},
		{"Name", "name=card", 1},
		{"Limited", "limit=1", 1},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/payment-sources?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PaymentSourceListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len, "Request ID: %s", r.Header().Get("x-request-id"))
			assert.Equal(t, tt.len, response.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentSourcesUpdate() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{Name: "Checking", Balance: 1000})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"name":    "Main checking",
		"balance": 0,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PaymentSourceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Main checking", response.Data.Name)
	assert.Equal(suite.T(), int64(0), response.Data.Balance)
}

func (suite *TestSuiteStandard) TestPaymentSourcesUpdateFails() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{})

	tests := []struct {
		name string
		body any
	}{
		{"Broken JSON", `{ "name": 2 }`},
		{"Empty name", map[string]any{"name": ""}},
		{"Invalid type", map[string]any{"type": "shoebox"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, p.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentSourcesDelete() {
	p := createTestPaymentSource(suite.T(), v1.PaymentSourceEditable{})

	r := test.Request(suite.T(), http.MethodDelete, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, p.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
