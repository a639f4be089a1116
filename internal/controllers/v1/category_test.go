package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	tests := []struct {
		name     string
		category v1.CategoryEditable
		status   int
		errorMsg string
	}{
		{"Bill category", v1.CategoryEditable{Name: "Utilities", Type: models.CategoryTypeBill, Color: "#3b82f6"}, http.StatusCreated, ""},
		{"Income category", v1.CategoryEditable{Name: "Utilities", Type: models.CategoryTypeIncome}, http.StatusCreated, ""},
		{"Invalid color", v1.CategoryEditable{Name: "Rent", Type: models.CategoryTypeBill, Color: "blue"}, http.StatusBadRequest, models.ErrColorInvalid.Error()},
		{"Invalid type", v1.CategoryEditable{Name: "Rent", Type: "expense"}, http.StatusBadRequest, models.ErrCategoryTypeInvalid.Error()},
		{"No name", v1.CategoryEditable{Type: models.CategoryTypeBill}, http.StatusBadRequest, models.ErrNameRequired.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{tt.category})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CategoryCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status != http.StatusCreated {
				assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
				return
			}

			assert.Equal(t, tt.category.Type, response.Data[0].Data.Type)
		})
	}
}

// TestCategoriesNameUniquePerType verifies that names only need to be
// unique for categories of the same type.
func (suite *TestSuiteStandard) TestCategoriesNameUniquePerType() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Other", Type: models.CategoryTypeBill})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Other", Type: models.CategoryTypeIncome})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Other", Type: models.CategoryTypeBill}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Data[0].Error)
}

// TestCategoriesCreateMixed verifies that the highest status code is
// returned when some of the categories cannot be created.
func (suite *TestSuiteStandard) TestCategoriesCreateMixed() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{
		{Name: "Insurance", Type: models.CategoryTypeBill},
		{Name: "Broken", Type: models.CategoryTypeBill, Color: "#12"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), "Insurance", response.Data[0].Data.Name)
	assert.Equal(suite.T(), models.ErrColorInvalid.Error(), *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestCategoriesSortOrder() {
	first := createTestCategory(suite.T(), v1.CategoryEditable{Name: "First"})
	second := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Second"})
	income := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: models.CategoryTypeIncome})

	assert.Equal(suite.T(), 0, first.Data.SortOrder)
	assert.Equal(suite.T(), 1, second.Data.SortOrder)
	assert.Equal(suite.T(), 0, income.Data.SortOrder, "Sort order is counted per type")
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Utilities"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Insurance"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: models.CategoryTypeIncome})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Bills", "type=bill", 2},
		{"Incomes", "type=income", 1},
		{"Search", "search=ti", 1},
		{"Name", "name=Sal", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Utilities"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"color": "#ff0000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "#ff0000", response.Data.Color)
	assert.Equal(suite.T(), "Utilities", response.Data.Name)

	r = test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"color": "red",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	bill := createTestBill(suite.T(), v1.BillEditable{CategoryID: &category.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The bill stays, but loses its category
	r = test.Request(suite.T(), http.MethodGet, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Nil(suite.T(), response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestCategoriesReorder() {
	a := createTestCategory(suite.T(), v1.CategoryEditable{Name: "A"})
	b := createTestCategory(suite.T(), v1.CategoryEditable{Name: "B"})
	c := createTestCategory(suite.T(), v1.CategoryEditable{Name: "C"})

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/categories/order", v1.CategoryOrder{
		Type: models.CategoryTypeBill,
		IDs:  []uuid.UUID{c.Data.ID, a.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	// Categories that are not listed keep their order after the listed ones
	assert.Equal(suite.T(), c.Data.ID, response.Data[0].ID)
	assert.Equal(suite.T(), a.Data.ID, response.Data[1].ID)
	assert.Equal(suite.T(), b.Data.ID, response.Data[2].ID)

	for i, category := range response.Data {
		assert.Equal(suite.T(), i, category.SortOrder)
	}
}

func (suite *TestSuiteStandard) TestCategoriesReorderFails() {
	a := createTestCategory(suite.T(), v1.CategoryEditable{})
	income := createTestCategory(suite.T(), v1.CategoryEditable{Type: models.CategoryTypeIncome})

	tests := []struct {
		name  string
		order any
		err   string
	}{
		{"Duplicate ID", v1.CategoryOrder{Type: models.CategoryTypeBill, IDs: []uuid.UUID{a.Data.ID, a.Data.ID}}, models.ErrReorderDuplicateID.Error()},
		{"Category of other type", v1.CategoryOrder{Type: models.CategoryTypeBill, IDs: []uuid.UUID{income.Data.ID}}, models.ErrReorderCategoryNotFound.Error()},
		{"Unknown category", v1.CategoryOrder{Type: models.CategoryTypeBill, IDs: []uuid.UUID{uuid.New()}}, models.ErrReorderCategoryNotFound.Error()},
		{"Invalid type", v1.CategoryOrder{Type: "expense", IDs: []uuid.UUID{a.Data.ID}}, models.ErrCategoryTypeInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPut, "http://example.com/v1/categories/order", tt.order)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}
