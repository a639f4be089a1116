package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// MonthEditable is the data to create a month snapshot.
type MonthEditable struct {
	Month types.Month `json:"month" example:"2024-05" swaggertype:"primitive,string"` // Year and month, YYYY-MM
	Note  string      `json:"note" example:"Car insurance due"`                      // A note
}

// MonthManage is an action on the snapshot of a month.
type MonthManage struct {
	Month  types.Month `json:"month" example:"2024-05" swaggertype:"primitive,string"` // Year and month, YYYY-MM
	Action string      `json:"action" example:"lock" binding:"required"`             // One of create, lock, unlock, delete
	Note   string      `json:"note" example:"Car insurance due"`                      // Note for created snapshots
}

type MonthLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/months/2024-05"`                // The month itself
	Lock     string `json:"lock" example:"https://example.com/api/v1/months/2024-05/lock"`           // Endpoint to lock the month
	Unlock   string `json:"unlock" example:"https://example.com/api/v1/months/2024-05/unlock"`       // Endpoint to unlock the month
	Sync     string `json:"sync" example:"https://example.com/api/v1/months/2024-05/sync"`           // Endpoint to add missing items
	Expenses string `json:"expenses" example:"https://example.com/api/v1/months/2024-05/expenses"` // Endpoint to add expenses
}

// MonthSummaryFormatted holds the amounts of the summary formatted for display.
type MonthSummaryFormatted struct {
	ExpectedIncome   string `json:"expectedIncome" example:"$5,200.00"`
	ReceivedIncome   string `json:"receivedIncome" example:"$2,600.00"`
	TotalBills       string `json:"totalBills" example:"$3,100.00"`
	PaidBills        string `json:"paidBills" example:"$1,200.00"`
	UnpaidBills      string `json:"unpaidBills" example:"$1,900.00"`
	TotalExpenses    string `json:"totalExpenses" example:"$450.00"`
	Leftover         string `json:"leftover" example:"$1,650.00"`
	AvailableFunds   string `json:"availableFunds" example:"$8,300.00"`
	ProjectedBalance string `json:"projectedBalance" example:"$9,000.00"`
}

type MonthSummary struct {
	models.MonthSummary
	Formatted MonthSummaryFormatted `json:"formatted"`
}

func newMonthSummary(c *gin.Context, s models.MonthSummary) MonthSummary {
	f := formatter(c)

	return MonthSummary{
		MonthSummary: s,
		Formatted: MonthSummaryFormatted{
			ExpectedIncome:   f.Format(s.ExpectedIncome),
			ReceivedIncome:   f.Format(s.ReceivedIncome),
			TotalBills:       f.Format(s.TotalBills),
			PaidBills:        f.Format(s.PaidBills),
			UnpaidBills:      f.Format(s.UnpaidBills),
			TotalExpenses:    f.Format(s.TotalExpenses),
			Leftover:         f.Format(s.Leftover),
			AvailableFunds:   f.Format(s.AvailableFunds),
			ProjectedBalance: f.Format(s.ProjectedBalance),
		},
	}
}

// MonthOverview is a snapshot without its items.
type MonthOverview struct {
	models.DefaultModel
	Month    types.Month  `json:"month" example:"2024-05-01T00:00:00Z"`    // First day of the month
	Name     string       `json:"name" example:"2024-05"`                  // The month in YYYY-MM format
	Locked   bool         `json:"locked" example:"false"`                  // Is the month locked?
	LockedAt *time.Time   `json:"lockedAt" example:"2024-06-01T08:00:00Z"` // When the month was locked
	Note     string       `json:"note" example:"Car insurance due"`        // A note
	Summary  MonthSummary `json:"summary"`                                 // Sums of the items
	Links    MonthLinks   `json:"links"`
}

// Month is a snapshot with all of its items.
type Month struct {
	MonthOverview
	Bills    []MonthBill    `json:"bills"`    // Bills due in the month
	Incomes  []MonthIncome  `json:"incomes"`  // Incomes paid in the month
	Expenses []MonthExpense `json:"expenses"` // Ad-hoc expenses
	Todos    []MonthTodo    `json:"todos"`    // Todos due in the month
}

func newMonthOverview(c *gin.Context, db *gorm.DB, model models.BudgetMonth, items models.MonthItems) (MonthOverview, error) {
	summary, err := model.Summary(db, items)
	if err != nil {
		return MonthOverview{}, err
	}

	url := fmt.Sprintf("%s/v1/months/%s", baseURL(c), model.Month)

	return MonthOverview{
		DefaultModel: model.DefaultModel,
		Month:        model.Month,
		Name:         model.Month.String(),
		Locked:       model.Locked,
		LockedAt:     model.LockedAt,
		Note:         model.Note,
		Summary:      newMonthSummary(c, summary),
		Links: MonthLinks{
			Self:     url,
			Lock:     url + "/lock",
			Unlock:   url + "/unlock",
			Sync:     url + "/sync",
			Expenses: url + "/expenses",
		},
	}, nil
}

func newMonth(c *gin.Context, db *gorm.DB, model models.BudgetMonth) (Month, error) {
	items, err := model.Items(db)
	if err != nil {
		return Month{}, err
	}

	overview, err := newMonthOverview(c, db, model, items)
	if err != nil {
		return Month{}, err
	}

	m := Month{
		MonthOverview: overview,
		Bills:         make([]MonthBill, 0, len(items.Bills)),
		Incomes:       make([]MonthIncome, 0, len(items.Incomes)),
		Expenses:      make([]MonthExpense, 0, len(items.Expenses)),
		Todos:         make([]MonthTodo, 0, len(items.Todos)),
	}

	for _, b := range items.Bills {
		m.Bills = append(m.Bills, newMonthBill(c, model.Month, b))
	}

	for _, i := range items.Incomes {
		m.Incomes = append(m.Incomes, newMonthIncome(c, model.Month, i))
	}

	for _, e := range items.Expenses {
		m.Expenses = append(m.Expenses, newMonthExpense(c, model.Month, e))
	}

	for _, t := range items.Todos {
		m.Todos = append(m.Todos, newMonthTodo(c, model.Month, t))
	}

	return m, nil
}

type MonthListResponse struct {
	Data       []MonthOverview `json:"data"`                                                          // List of months
	Error      *string         `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                 // Data for the month
	Error *string `json:"error" example:"a snapshot for this month already exists"` // The error, if any occurred
}

type MonthSyncResponse struct {
	Data  *Month             `json:"data"`                                                // Data for the month
	Added *models.SyncResult `json:"added"`                                               // Items added by the sync
	Error *string            `json:"error" example:"the month is locked and cannot be changed"` // The error, if any occurred
}

type MonthQueryFilter struct {
	Locked bool   `form:"locked"`                     // Is the month locked?
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first month returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of months to return. Defaults to 50.
	Note   string `form:"note" filterField:"false"`   // By note
}

func (f MonthQueryFilter) model() models.BudgetMonth {
	return models.BudgetMonth{
		Locked: f.Locked,
	}
}

// MonthBillEditable are the fields of a month bill that can be changed.
type MonthBillEditable struct {
	Paid         bool        `json:"paid" example:"true"`                                          // Is the bill paid?
	PaidDate     *types.Date `json:"paidDate" example:"2024-05-14" swaggertype:"primitive,string"` // Date of the payment, defaults to today when the bill is marked as paid
	ActualAmount *int64      `json:"actualAmount" example:"8712"`                                  // Paid amount in cents if it differs from the expected amount
	Note         string      `json:"note" example:"Paid late"`                                     // A note
}

func (editable MonthBillEditable) model() models.MonthBill {
	return models.MonthBill{
		Paid:         editable.Paid,
		PaidDate:     editable.PaidDate,
		ActualAmount: editable.ActualAmount,
		Note:         editable.Note,
	}
}

type MonthItemLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/months/2024-05/bills/4f1c8c3b-6a0d-4a4b-8b52-0f3e0c7a9d22"` // The item itself
	Source string `json:"source" example:"https://example.com/api/v1/bills/c8b2a2e4-3f2f-4b55-ae8c-51d43c3a8c1f"`            // The bill, income or todo the item was created from, empty if it does not exist anymore
}

type MonthBill struct {
	models.DefaultModel
	MonthBillEditable
	BillID          *uuid.UUID     `json:"billId" example:"c8b2a2e4-3f2f-4b55-ae8c-51d43c3a8c1f"`          // ID of the bill
	Name            string         `json:"name" example:"Electricity"`                                     // Name of the bill
	Amount          int64          `json:"amount" example:"8500"`                                          // Expected amount in cents
	AmountFormatted string         `json:"amountFormatted" example:"$85.00"`                               // Expected amount formatted for display
	DueDate         types.Date     `json:"dueDate" example:"2024-05-15" swaggertype:"primitive,string"`    // Due date
	PaymentSourceID *uuid.UUID     `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source
	CategoryID      *uuid.UUID     `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the category
	Links           MonthItemLinks `json:"links"`
}

func newMonthBill(c *gin.Context, month types.Month, model models.MonthBill) MonthBill {
	links := MonthItemLinks{
		Self: fmt.Sprintf("%s/v1/months/%s/bills/%s", baseURL(c), month, model.ID),
	}
	if model.BillID != nil {
		links.Source = fmt.Sprintf("%s/v1/bills/%s", baseURL(c), model.BillID)
	}

	return MonthBill{
		DefaultModel: model.DefaultModel,
		MonthBillEditable: MonthBillEditable{
			Paid:         model.Paid,
			PaidDate:     model.PaidDate,
			ActualAmount: model.ActualAmount,
			Note:         model.Note,
		},
		BillID:          model.BillID,
		Name:            model.Name,
		Amount:          model.Amount,
		AmountFormatted: formatter(c).Format(model.Amount),
		DueDate:         model.DueDate,
		PaymentSourceID: model.PaymentSourceID,
		CategoryID:      model.CategoryID,
		Links:           links,
	}
}

type MonthBillResponse struct {
	Data  *MonthBill `json:"data"`                                                // Data for the month bill
	Error *string    `json:"error" example:"the month is locked and cannot be changed"` // The error, if any occurred
}

// MonthIncomeEditable are the fields of a month income that can be changed.
type MonthIncomeEditable struct {
	Received     bool        `json:"received" example:"true"`                                          // Is the income received?
	ReceivedDate *types.Date `json:"receivedDate" example:"2024-05-17" swaggertype:"primitive,string"` // Date the income arrived, defaults to today when the income is marked as received
	ActualAmount *int64      `json:"actualAmount" example:"251230"`                                    // Received amount in cents if it differs from the expected amount
	Note         string      `json:"note" example:"Includes bonus"`                                    // A note
}

func (editable MonthIncomeEditable) model() models.MonthIncome {
	return models.MonthIncome{
		Received:     editable.Received,
		ReceivedDate: editable.ReceivedDate,
		ActualAmount: editable.ActualAmount,
		Note:         editable.Note,
	}
}

type MonthIncome struct {
	models.DefaultModel
	MonthIncomeEditable
	IncomeID        *uuid.UUID     `json:"incomeId" example:"0a4a8f1b-0e4f-4c36-a6d2-08de4c7a0f1b"`        // ID of the income
	Name            string         `json:"name" example:"Salary"`                                          // Name of the income
	Amount          int64          `json:"amount" example:"250000"`                                        // Expected amount in cents
	AmountFormatted string         `json:"amountFormatted" example:"$2,500.00"`                            // Expected amount formatted for display
	PayDate         types.Date     `json:"payDate" example:"2024-05-17" swaggertype:"primitive,string"`    // Expected pay date
	PaymentSourceID *uuid.UUID     `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source
	CategoryID      *uuid.UUID     `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the category
	Links           MonthItemLinks `json:"links"`
}

func newMonthIncome(c *gin.Context, month types.Month, model models.MonthIncome) MonthIncome {
	links := MonthItemLinks{
		Self: fmt.Sprintf("%s/v1/months/%s/incomes/%s", baseURL(c), month, model.ID),
	}
	if model.IncomeID != nil {
		links.Source = fmt.Sprintf("%s/v1/incomes/%s", baseURL(c), model.IncomeID)
	}

	return MonthIncome{
		DefaultModel: model.DefaultModel,
		MonthIncomeEditable: MonthIncomeEditable{
			Received:     model.Received,
			ReceivedDate: model.ReceivedDate,
			ActualAmount: model.ActualAmount,
			Note:         model.Note,
		},
		IncomeID:        model.IncomeID,
		Name:            model.Name,
		Amount:          model.Amount,
		AmountFormatted: formatter(c).Format(model.Amount),
		PayDate:         model.PayDate,
		PaymentSourceID: model.PaymentSourceID,
		CategoryID:      model.CategoryID,
		Links:           links,
	}
}

type MonthIncomeResponse struct {
	Data  *MonthIncome `json:"data"`                                                // Data for the month income
	Error *string      `json:"error" example:"the month is locked and cannot be changed"` // The error, if any occurred
}

// MonthTodoEditable are the fields of a month todo that can be changed.
type MonthTodoEditable struct {
	Completed bool   `json:"completed" example:"true"`   // Is the todo done?
	Note      string `json:"note" example:"Bought two"` // A note
}

func (editable MonthTodoEditable) model() models.MonthTodo {
	return models.MonthTodo{
		Completed: editable.Completed,
		Note:      editable.Note,
	}
}

type MonthTodo struct {
	models.DefaultModel
	MonthTodoEditable
	TodoID      *uuid.UUID     `json:"todoId" example:"7d1e2f3a-4b5c-4d6e-8f90-a1b2c3d4e5f6"`        // ID of the todo
	Title       string         `json:"title" example:"Change air filter"`                            // Title of the todo
	DueDate     types.Date     `json:"dueDate" example:"2024-05-01" swaggertype:"primitive,string"` // Due date
	CompletedAt *time.Time     `json:"completedAt" example:"2024-05-02T18:31:00Z"`                  // When the todo was completed
	Links       MonthItemLinks `json:"links"`
}

func newMonthTodo(c *gin.Context, month types.Month, model models.MonthTodo) MonthTodo {
	links := MonthItemLinks{
		Self: fmt.Sprintf("%s/v1/months/%s/todos/%s", baseURL(c), month, model.ID),
	}
	if model.TodoID != nil {
		links.Source = fmt.Sprintf("%s/v1/todos/%s", baseURL(c), model.TodoID)
	}

	return MonthTodo{
		DefaultModel: model.DefaultModel,
		MonthTodoEditable: MonthTodoEditable{
			Completed: model.Completed,
			Note:      model.Note,
		},
		TodoID:      model.TodoID,
		Title:       model.Title,
		DueDate:     model.DueDate,
		CompletedAt: model.CompletedAt,
		Links:       links,
	}
}

type MonthTodoResponse struct {
	Data  *MonthTodo `json:"data"`                                                // Data for the month todo
	Error *string    `json:"error" example:"the month is locked and cannot be changed"` // The error, if any occurred
}

// MonthExpenseEditable represents all user configurable parameters of an expense
type MonthExpenseEditable struct {
	Name            string     `json:"name" example:"Birthday present" default:""`                     // What the money was spent on
	Amount          int64      `json:"amount" example:"4500" default:"0"`                              // Amount in cents
	Date            types.Date `json:"date" example:"2024-05-21" swaggertype:"primitive,string"`       // Date of the expense, must be within the month. Defaults to today or the first day of the month
	PaymentSourceID *uuid.UUID `json:"paymentSourceId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the payment source
	CategoryID      *uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`      // ID of the category, must be of type bill
	Note            string     `json:"note" example:"For Sam"`                                         // A note
}

func (editable MonthExpenseEditable) model() models.MonthExpense {
	return models.MonthExpense{
		Name:            editable.Name,
		Amount:          editable.Amount,
		Date:            editable.Date,
		PaymentSourceID: editable.PaymentSourceID,
		CategoryID:      editable.CategoryID,
		Note:            editable.Note,
	}
}

type MonthExpense struct {
	models.DefaultModel
	MonthExpenseEditable
	AmountFormatted string         `json:"amountFormatted" example:"$45.00"` // Amount formatted for display
	Links           MonthItemLinks `json:"links"`
}

func newMonthExpense(c *gin.Context, month types.Month, model models.MonthExpense) MonthExpense {
	return MonthExpense{
		DefaultModel: model.DefaultModel,
		MonthExpenseEditable: MonthExpenseEditable{
			Name:            model.Name,
			Amount:          model.Amount,
			Date:            model.Date,
			PaymentSourceID: model.PaymentSourceID,
			CategoryID:      model.CategoryID,
			Note:            model.Note,
		},
		AmountFormatted: formatter(c).Format(model.Amount),
		Links: MonthItemLinks{
			Self: fmt.Sprintf("%s/v1/months/%s/expenses/%s", baseURL(c), month, model.ID),
		},
	}
}

type MonthExpenseResponse struct {
	Data  *MonthExpense `json:"data"`                                                // Data for the expense
	Error *string       `json:"error" example:"the expense date must be within the month"` // The error, if any occurred
}

// defaultExpenseDate returns today if it is in the month, the first day
// of the month otherwise.
func defaultExpenseDate(month types.Month) types.Date {
	today := types.Today()
	if month.Contains(today.Time()) {
		return today
	}
	return month.FirstDay()
}
