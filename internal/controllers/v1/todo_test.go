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

func (suite *TestSuiteStandard) TestTodosOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No todo with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Todo exists", createTestTodo(suite.T(), v1.TodoEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("http://example.com/v1/todos/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTodosCreate() {
	due := types.Today().AddDays(10)

	tests := []struct {
		name      string
		todo      v1.TodoEditable
		status    int
		errorMsg  string
		recurring bool
	}{
		{"Recurring", v1.TodoEditable{Title: "Change air filter", Rule: monthlyOn(1)}, http.StatusCreated, "", true},
		{"One-off", v1.TodoEditable{Title: "Renew passport", DueDate: &due}, http.StatusCreated, "", false},
		{"No title", v1.TodoEditable{DueDate: &due}, http.StatusBadRequest, models.ErrTodoTitleRequired.Error(), false},
		{"Neither recurrence nor due date", v1.TodoEditable{Title: "Someday"}, http.StatusBadRequest, models.ErrTodoScheduleRequired.Error(), false},
		{"Both recurrence and due date", v1.TodoEditable{Title: "Confused", Rule: monthlyOn(1), DueDate: &due}, http.StatusBadRequest, models.ErrTodoScheduleAmbiguous.Error(), false},
		{"Invalid recurrence", v1.TodoEditable{Title: "Water plants", Rule: recurrence.Rule{Period: recurrence.Weekly}}, http.StatusBadRequest, recurrence.ErrStartDateRequired.Error(), false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/todos", []v1.TodoEditable{tt.todo})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TodoCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)

			if tt.status != http.StatusCreated {
				assert.Equal(t, tt.errorMsg, *response.Data[0].Error)
				return
			}

			todo := response.Data[0].Data
			assert.Equal(t, tt.recurring, todo.Recurring)
			require.NotNil(t, todo.NextDueDate)

			if tt.recurring {
				assert.Equal(t, "monthly on day 1", todo.Recurrence)
				assert.Equal(t, 1, todo.NextDueDate.Time().Day())
			} else {
				assert.Equal(t, "", todo.Recurrence)
				assert.Equal(t, due, *todo.NextDueDate)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTodosGetFilter() {
	due := types.Today()

	_ = createTestTodo(suite.T(), v1.TodoEditable{Title: "Change air filter", Note: "20x25x1"})
	_ = createTestTodo(suite.T(), v1.TodoEditable{Title: "Renew passport", DueDate: &due})
	_ = createTestTodo(suite.T(), v1.TodoEditable{Title: "Old chore", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"One-off", "billingPeriod=", 1},
		{"Monthly", "billingPeriod=monthly", 2},
		{"Archived", "archived=true", 1},
		{"Title", "title=passport", 1},
		{"Search in note", "search=20x25", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/todos?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TodoListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestTodosUpdate() {
	todo := createTestTodo(suite.T(), v1.TodoEditable{Title: "Water plants"})
	due := types.Today().AddDays(3)

	// Switching to a one-off todo needs the recurrence to be removed
	r := test.Request(suite.T(), http.MethodPatch, todo.Data.Links.Self, map[string]any{"dueDate": due.String()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, todo.Data.Links.Self, map[string]any{
		"dueDate":       due.String(),
		"billingPeriod": "",
		"dayOfMonth":    nil,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TodoResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Recurring)
	require.NotNil(suite.T(), response.Data.NextDueDate)
	assert.Equal(suite.T(), due, *response.Data.NextDueDate)
}

func (suite *TestSuiteStandard) TestTodosDelete() {
	todo := createTestTodo(suite.T(), v1.TodoEditable{})

	r := test.Request(suite.T(), http.MethodDelete, todo.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, todo.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
