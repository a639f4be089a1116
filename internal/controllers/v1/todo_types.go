package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/ledgerline/backend/internal/types"
)

// TodoEditable represents all user configurable parameters
type TodoEditable struct {
	Title           string      `json:"title" example:"Change air filter" default:""`                  // Title of the todo
	Note            string      `json:"note" example:"20x25x1" default:""`                            // A note
	recurrence.Rule             // When the todo recurs. Leave the billing period empty for one-off todos
	DueDate         *types.Date `json:"dueDate" example:"2024-05-30" swaggertype:"primitive,string"` // Due date of one-off todos
	Archived        bool        `json:"archived" example:"false" default:"false"`                     // Is the todo archived?
}

func (editable TodoEditable) model() models.Todo {
	return models.Todo{
		Title:    editable.Title,
		Note:     editable.Note,
		Rule:     editable.Rule,
		DueDate:  editable.DueDate,
		Archived: editable.Archived,
	}
}

type TodoLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/todos/7d1e2f3a-4b5c-4d6e-8f90-a1b2c3d4e5f6"` // The todo itself
}

type Todo struct {
	models.DefaultModel
	TodoEditable
	Links TodoLinks `json:"links"`

	// These fields are computed
	Recurring   bool        `json:"recurring" example:"true"`                                        // Does the todo recur?
	Recurrence  string      `json:"recurrence" example:"monthly on day 1"`                           // The recurrence in words, empty for one-off todos
	NextDueDate *types.Date `json:"nextDueDate" example:"2024-06-01" swaggertype:"primitive,string"` // The next due date, null for archived todos
}

func newTodo(c *gin.Context, model models.Todo) Todo {
	var text string
	if model.IsRecurring() {
		text = model.Rule.String()
	}

	return Todo{
		DefaultModel: model.DefaultModel,
		TodoEditable: TodoEditable{
			Title:    model.Title,
			Note:     model.Note,
			Rule:     model.Rule,
			DueDate:  model.DueDate,
			Archived: model.Archived,
		},
		Links: TodoLinks{
			Self: fmt.Sprintf("%s/v1/todos/%s", baseURL(c), model.ID),
		},
		Recurring:   model.IsRecurring(),
		Recurrence:  text,
		NextDueDate: model.NextDueDate(types.Today()),
	}
}

type TodoListResponse struct {
	Data       []Todo      `json:"data"`                                                          // List of todos
	Error      *string     `json:"error" example:"the title must not be empty"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TodoCreateResponse struct {
	Data  []TodoResponse `json:"data"`                                                          // List of the created todos or their respective error
	Error *string        `json:"error" example:"the title must not be empty"` // The error, if any occurred
}

func (r *TodoCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TodoResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TodoResponse struct {
	Data  *Todo   `json:"data"`                                                          // Data for the todo
	Error *string `json:"error" example:"the title must not be empty"` // The error, if any occurred
}

type TodoQueryFilter struct {
	Title    string            `form:"title" filterField:"false"`  // By title
	Note     string            `form:"note" filterField:"false"`   // By note
	Period   recurrence.Period `form:"billingPeriod"`              // By billing period. Empty for one-off todos
	Archived bool              `form:"archived"`                   // Is the todo archived?
	Search   string            `form:"search" filterField:"false"` // By string in title or note
	Offset   uint              `form:"offset" filterField:"false"` // The offset of the first todo returned. Defaults to 0.
	Limit    int               `form:"limit" filterField:"false"`  // Maximum number of todos to return. Defaults to 50.
}

func (f TodoQueryFilter) model() models.Todo {
	return models.Todo{
		Rule:     recurrence.Rule{Period: f.Period},
		Archived: f.Archived,
	}
}
