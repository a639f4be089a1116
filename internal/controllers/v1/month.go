package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
	"golang.org/x/exp/slices"
)

// Actions for the manage endpoint
const (
	monthActionCreate = "create"
	monthActionLock   = "lock"
	monthActionUnlock = "unlock"
	monthActionDelete = "delete"
)

var monthActions = []string{monthActionCreate, monthActionLock, monthActionUnlock, monthActionDelete}

// RegisterMonthRoutes registers the routes for month snapshots with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonthList)
		r.GET("", GetMonths)
		r.POST("", CreateMonth)
	}

	// Single endpoint management
	{
		r.OPTIONS("/manage", OptionsMonthManage)
		r.POST("/manage", ManageMonth)
	}

	// Month
	{
		r.OPTIONS("/:month", OptionsMonthDetail)
		r.GET("/:month", GetMonth)
		r.DELETE("/:month", DeleteMonth)

		r.OPTIONS("/:month/lock", OptionsMonthAction)
		r.POST("/:month/lock", LockMonth)
		r.OPTIONS("/:month/unlock", OptionsMonthAction)
		r.POST("/:month/unlock", UnlockMonth)
		r.OPTIONS("/:month/sync", OptionsMonthAction)
		r.POST("/:month/sync", SyncMonth)
	}

	// Items
	{
		r.OPTIONS("/:month/bills/:id", OptionsMonthItem)
		r.PATCH("/:month/bills/:id", UpdateMonthBill)
		r.OPTIONS("/:month/incomes/:id", OptionsMonthItem)
		r.PATCH("/:month/incomes/:id", UpdateMonthIncome)
		r.OPTIONS("/:month/todos/:id", OptionsMonthItem)
		r.PATCH("/:month/todos/:id", UpdateMonthTodo)

		r.OPTIONS("/:month/expenses", OptionsMonthAction)
		r.POST("/:month/expenses", CreateMonthExpense)
		r.OPTIONS("/:month/expenses/:id", OptionsMonthExpense)
		r.PATCH("/:month/expenses/:id", UpdateMonthExpense)
		r.DELETE("/:month/expenses/:id", DeleteMonthExpense)
	}
}

// findMonth returns the snapshot for the month in the URI.
func findMonth(c *gin.Context) (models.BudgetMonth, error) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.BudgetMonth{}, err
	}

	if uri.Month.IsZero() {
		return models.BudgetMonth{}, errMonthInvalid
	}

	return models.FindMonth(models.DB, uri.Month)
}

// monthResponse writes the snapshot with all of its items.
func monthResponse(c *gin.Context, code int, m models.BudgetMonth) {
	data, err := newMonth(c, models.DB, m)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	c.JSON(code, MonthResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonthList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/manage [options]
func OptionsMonthManage(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func OptionsMonthDetail(c *gin.Context) {
	_, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/lock [options]
// @Router			/v1/months/{month}/unlock [options]
// @Router			/v1/months/{month}/sync [options]
// @Router			/v1/months/{month}/expenses [options]
func OptionsMonthAction(c *gin.Context) {
	_, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/months/{month}/bills/{id} [options]
// @Router			/v1/months/{month}/incomes/{id} [options]
// @Router			/v1/months/{month}/todos/{id} [options]
func OptionsMonthItem(c *gin.Context) {
	_, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/months/{month}/expenses/{id} [options]
func OptionsMonthExpense(c *gin.Context) {
	_, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatchDelete(c)
}

// @Summary		Get months
// @Description	Returns a list of month snapshots with their summary, latest month first
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthListResponse
// @Failure		400		{object}	MonthListResponse
// @Failure		500		{object}	MonthListResponse
// @Param			locked	query		bool	false	"Is the month locked?"
// @Param			note	query		string	false	"Filter by note"
// @Param			offset	query		uint	false	"The offset of the first month returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of months to return. Defaults to 50."
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	var filter MonthQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("month DESC").
		Where(&filterModel, queryFields...)

	q = textFilters(models.DB, q, setFields, "", textFilter{"Note", "note", filter.Note})

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var months []models.BudgetMonth
	err = q.Find(&months).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthListResponse{
			Error: &s,
		})
		return
	}

	data := make([]MonthOverview, 0, len(months))
	for _, month := range months {
		items, err := month.Items(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthListResponse{
				Error: &s,
			})
			return
		}

		overview, err := newMonthOverview(c, models.DB, month, items)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, overview)
	}

	c.JSON(http.StatusOK, MonthListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create month
// @Description	Creates the snapshot for a month with an item for every occurrence of active bills, incomes and todos
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		201		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	body		MonthEditable	true	"Month"
// @Router			/v1/months [post]
func CreateMonth(c *gin.Context) {
	var data MonthEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	if data.Month.IsZero() {
		s := errMonthInvalid.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	month, err := models.CreateMonth(models.DB, data.Month, data.Note)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	monthResponse(c, http.StatusCreated, month)
}

// @Summary		Manage month
// @Description	Creates, locks, unlocks or deletes the snapshot of a month. Deletion responds with 204.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Success		201		{object}	MonthResponse
// @Success		204
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			action	body		MonthManage	true	"Action"
// @Router			/v1/months/manage [post]
func ManageMonth(c *gin.Context) {
	var data MonthManage
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	if data.Month.IsZero() {
		s := errMonthInvalid.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	if !slices.Contains(monthActions, data.Action) {
		s := models.ErrMonthActionInvalid.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	if data.Action == monthActionCreate {
		month, err := models.CreateMonth(models.DB, data.Month, data.Note)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthResponse{
				Error: &s,
			})
			return
		}

		monthResponse(c, http.StatusCreated, month)
		return
	}

	month, err := models.FindMonth(models.DB, data.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	switch data.Action {
	case monthActionLock:
		err = month.Lock(models.DB)
	case monthActionUnlock:
		err = month.Unlock(models.DB)
	case monthActionDelete:
		err = models.DeleteMonth(models.DB, month)
		if err == nil {
			c.JSON(http.StatusNoContent, nil)
			return
		}
	}

	if err == nil {
		month, err = models.FindMonth(models.DB, month.Month)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	monthResponse(c, http.StatusOK, month)
}

// @Summary		Get month
// @Description	Returns the snapshot of a month with all of its items
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	monthResponse(c, http.StatusOK, month)
}

// @Summary		Delete month
// @Description	Deletes the snapshot of a month with all of its items. Locked months cannot be deleted.
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [delete]
func DeleteMonth(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteMonth(models.DB, month)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Lock month
// @Description	Locks the snapshot of a month. Locked months and their items cannot be changed.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/lock [post]
func LockMonth(c *gin.Context) {
	month, err := findMonth(c)
	if err == nil {
		err = month.Lock(models.DB)
	}

	if err == nil {
		month, err = models.FindMonth(models.DB, month.Month)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	monthResponse(c, http.StatusOK, month)
}

// @Summary		Unlock month
// @Description	Unlocks the snapshot of a month
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/unlock [post]
func UnlockMonth(c *gin.Context) {
	month, err := findMonth(c)
	if err == nil {
		err = month.Unlock(models.DB)
	}

	if err == nil {
		month, err = models.FindMonth(models.DB, month.Month)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	monthResponse(c, http.StatusOK, month)
}

// @Summary		Sync month
// @Description	Adds the occurrences of active bills, incomes and todos that the snapshot does not contain yet
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthSyncResponse
// @Failure		400		{object}	MonthSyncResponse
// @Failure		404		{object}	MonthSyncResponse
// @Failure		500		{object}	MonthSyncResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/sync [post]
func SyncMonth(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthSyncResponse{
			Error: &s,
		})
		return
	}

	added, err := month.Sync(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthSyncResponse{
			Error: &s,
		})
		return
	}

	data, err := newMonth(c, models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthSyncResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MonthSyncResponse{Data: &data, Added: &added})
}

// @Summary		Update month bill
// @Description	Marks a bill of the month as paid or unpaid. Only values to be updated need to be specified.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200		{object}	MonthBillResponse
// @Failure		400		{object}	MonthBillResponse
// @Failure		404		{object}	MonthBillResponse
// @Failure		500		{object}	MonthBillResponse
// @Param			month	path		string				true	"The month in YYYY-MM format"
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			bill	body		MonthBillEditable	true	"Month bill"
// @Router			/v1/months/{month}/bills/{id} [patch]
func UpdateMonthBill(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	var bill models.MonthBill
	err = models.DB.Where(&models.MonthBill{BudgetMonthID: month.ID}).First(&bill, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonthBillEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	var data MonthBillEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	if slices.Contains(updateFields, any("Paid")) {
		data.PaidDate = models.SettledDate(data.Paid, data.PaidDate)
		updateFields = withField(updateFields, "PaidDate")
	}

	err = models.DB.Model(&bill).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthBillResponse{
			Error: &s,
		})
		return
	}

	r := newMonthBill(c, month.Month, bill)
	c.JSON(http.StatusOK, MonthBillResponse{Data: &r})
}

// @Summary		Update month income
// @Description	Marks an income of the month as received or not received. Only values to be updated need to be specified.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200		{object}	MonthIncomeResponse
// @Failure		400		{object}	MonthIncomeResponse
// @Failure		404		{object}	MonthIncomeResponse
// @Failure		500		{object}	MonthIncomeResponse
// @Param			month	path		string				true	"The month in YYYY-MM format"
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		MonthIncomeEditable	true	"Month income"
// @Router			/v1/months/{month}/incomes/{id} [patch]
func UpdateMonthIncome(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	var income models.MonthIncome
	err = models.DB.Where(&models.MonthIncome{BudgetMonthID: month.ID}).First(&income, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonthIncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	var data MonthIncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	if slices.Contains(updateFields, any("Received")) {
		data.ReceivedDate = models.SettledDate(data.Received, data.ReceivedDate)
		updateFields = withField(updateFields, "ReceivedDate")
	}

	err = models.DB.Model(&income).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthIncomeResponse{
			Error: &s,
		})
		return
	}

	r := newMonthIncome(c, month.Month, income)
	c.JSON(http.StatusOK, MonthIncomeResponse{Data: &r})
}

// @Summary		Update month todo
// @Description	Marks a todo of the month as completed or open. Only values to be updated need to be specified.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200		{object}	MonthTodoResponse
// @Failure		400		{object}	MonthTodoResponse
// @Failure		404		{object}	MonthTodoResponse
// @Failure		500		{object}	MonthTodoResponse
// @Param			month	path		string				true	"The month in YYYY-MM format"
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			todo	body		MonthTodoEditable	true	"Month todo"
// @Router			/v1/months/{month}/todos/{id} [patch]
func UpdateMonthTodo(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	var todo models.MonthTodo
	err = models.DB.Where(&models.MonthTodo{BudgetMonthID: month.ID}).First(&todo, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonthTodoEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	var data MonthTodoEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	update := data.model()
	if slices.Contains(updateFields, any("Completed")) {
		if data.Completed && todo.CompletedAt == nil {
			now := time.Now().UTC()
			update.CompletedAt = &now
		} else if data.Completed {
			update.CompletedAt = todo.CompletedAt
		}
		updateFields = withField(updateFields, "CompletedAt")
	}

	err = models.DB.Model(&todo).Select("", updateFields...).Updates(update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthTodoResponse{
			Error: &s,
		})
		return
	}

	r := newMonthTodo(c, month.Month, todo)
	c.JSON(http.StatusOK, MonthTodoResponse{Data: &r})
}

// @Summary		Create expense
// @Description	Adds an ad-hoc expense to the month
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		201		{object}	MonthExpenseResponse
// @Failure		400		{object}	MonthExpenseResponse
// @Failure		404		{object}	MonthExpenseResponse
// @Failure		500		{object}	MonthExpenseResponse
// @Param			month	path		string					true	"The month in YYYY-MM format"
// @Param			expense	body		MonthExpenseEditable	true	"Expense"
// @Router			/v1/months/{month}/expenses [post]
func CreateMonthExpense(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	var data MonthExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	expense := data.model()
	expense.BudgetMonthID = month.ID
	if expense.Date.IsZero() {
		expense.Date = defaultExpenseDate(month.Month)
	}

	err = models.DB.Create(&expense).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	r := newMonthExpense(c, month.Month, expense)
	c.JSON(http.StatusCreated, MonthExpenseResponse{Data: &r})
}

// @Summary		Update expense
// @Description	Updates an expense of the month. Only values to be updated need to be specified.
// @Tags			Months
// @Accept			json
// @Produce		json
// @Success		200		{object}	MonthExpenseResponse
// @Failure		400		{object}	MonthExpenseResponse
// @Failure		404		{object}	MonthExpenseResponse
// @Failure		500		{object}	MonthExpenseResponse
// @Param			month	path		string					true	"The month in YYYY-MM format"
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		MonthExpenseEditable	true	"Expense"
// @Router			/v1/months/{month}/expenses/{id} [patch]
func UpdateMonthExpense(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	var expense models.MonthExpense
	err = models.DB.Where(&models.MonthExpense{BudgetMonthID: month.ID}).First(&expense, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonthExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	var data MonthExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&expense).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthExpenseResponse{
			Error: &s,
		})
		return
	}

	r := newMonthExpense(c, month.Month, expense)
	c.JSON(http.StatusOK, MonthExpenseResponse{Data: &r})
}

// @Summary		Delete expense
// @Description	Deletes an expense of the month
// @Tags			Months
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/months/{month}/expenses/{id} [delete]
func DeleteMonthExpense(c *gin.Context) {
	month, err := findMonth(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var expense models.MonthExpense
	err = models.DB.Where(&models.MonthExpense{BudgetMonthID: month.ID}).First(&expense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// withField adds the field to the fields selected for an update.
func withField(fields []any, field string) []any {
	if slices.Contains(fields, any(field)) {
		return fields
	}
	return append(fields, field)
}
