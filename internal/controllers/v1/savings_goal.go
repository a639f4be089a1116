package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/savings"
	"github.com/ledgerline/backend/internal/types"
)

// RegisterSavingsGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterSavingsGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSavingsGoalList)
		r.GET("", GetSavingsGoals)
		r.POST("", CreateSavingsGoals)
	}

	// Schedule preview
	{
		r.OPTIONS("/schedule", OptionsSavingsGoalSchedule)
		r.GET("/schedule", GetSavingsGoalSchedule)
	}

	// Contributions
	{
		r.OPTIONS("/:id/contribute", OptionsSavingsGoalContribute)
		r.POST("/:id/contribute", ContributeSavingsGoal)
		r.OPTIONS("/:id/contributions", OptionsSavingsGoalContributions)
		r.GET("/:id/contributions", GetSavingsGoalContributions)
	}

	// Savings goal with ID
	{
		r.OPTIONS("/:id", OptionsSavingsGoalDetail)
		r.GET("/:id", GetSavingsGoal)
		r.PATCH("/:id", UpdateSavingsGoal)
		r.DELETE("/:id", DeleteSavingsGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Savings Goals
// @Success		204
// @Router			/v1/savings-goals [options]
func OptionsSavingsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Savings Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id} [options]
func OptionsSavingsGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SavingsGoal{})
}

// @Summary		Create savings goals
// @Description	Creates new savings goals. Goals with autoCreateBill get a bill for their scheduled payments.
// @Tags			Savings Goals
// @Produce		json
// @Success		201	{object}	SavingsGoalCreateResponse
// @Failure		400	{object}	SavingsGoalCreateResponse
// @Failure		404	{object}	SavingsGoalCreateResponse
// @Failure		500	{object}	SavingsGoalCreateResponse
// @Param			goals	body		[]SavingsGoalEditable	true	"Savings goals"
// @Router			/v1/savings-goals [post]
func CreateSavingsGoals(c *gin.Context) {
	var editables []SavingsGoalEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsGoalCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SavingsGoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model()

		err = models.DB.Create(&goal).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newSavingsGoal(c, models.DB, goal)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, SavingsGoalResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get savings goals
// @Description	Returns a list of savings goals
// @Tags			Savings Goals
// @Produce		json
// @Success		200	{object}	SavingsGoalListResponse
// @Failure		400	{object}	SavingsGoalListResponse
// @Failure		500	{object}	SavingsGoalListResponse
// @Router			/v1/savings-goals [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			status	query	string	false	"Filter by status"
// @Param			paymentSource	query	string	false	"Filter by payment source ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			autoCreateBill	query	bool	false	"Does the goal generate a bill?"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first savings goal returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of savings goals to return. Defaults to 50."
func GetSavingsGoals(c *gin.Context) {
	var filter SavingsGoalQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("target_date ASC, name ASC").
		Where(&filterModel, queryFields...)

	q = textFilters(models.DB, q, setFields, filter.Search,
		textFilter{"Name", "name", filter.Name},
		textFilter{"Note", "note", filter.Note},
	)

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var goals []models.SavingsGoal
	err = q.Find(&goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalListResponse{
			Error: &s,
		})
		return
	}

	data := make([]SavingsGoal, 0)
	for _, goal := range goals {
		apiResource, err := newSavingsGoal(c, models.DB, goal)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SavingsGoalListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, SavingsGoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get savings goal
// @Description	Returns a specific savings goal
// @Tags			Savings Goals
// @Produce		json
// @Success		200	{object}	SavingsGoalResponse
// @Failure		400	{object}	SavingsGoalResponse
// @Failure		404	{object}	SavingsGoalResponse
// @Failure		500	{object}	SavingsGoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id} [get]
func GetSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	data, err := newSavingsGoal(c, models.DB, goal)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

// @Summary		Update savings goal
// @Description	Updates an existing savings goal. Only values to be updated need to be specified.
// @Tags			Savings Goals
// @Accept			json
// @Produce		json
// @Success		200	{object}	SavingsGoalResponse
// @Failure		400	{object}	SavingsGoalResponse
// @Failure		404	{object}	SavingsGoalResponse
// @Failure		500	{object}	SavingsGoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			goal	body		SavingsGoalEditable	true	"Savings goal"
// @Router			/v1/savings-goals/{id} [patch]
func UpdateSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SavingsGoalEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	var data SavingsGoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}

	r, err := newSavingsGoal(c, models.DB, goal)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsGoalResponse{
			Error: &s,
		})
		return
	}
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &r})
}

// @Summary		Delete savings goal
// @Description	Deletes a savings goal together with its contributions and its generated bill
// @Tags			Savings Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id} [delete]
func DeleteSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Savings Goals
// @Success		204
// @Router			/v1/savings-goals/schedule [options]
func OptionsSavingsGoalSchedule(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Preview schedule
// @Description	Calculates a payment schedule without saving anything
// @Tags			Savings Goals
// @Produce		json
// @Success		200	{object}	SavingsScheduleResponse
// @Failure		400	{object}	SavingsScheduleResponse
// @Param			targetAmount	query	int		false	"Amount to save in cents"
// @Param			savedAmount		query	int		false	"Amount already saved in cents"
// @Param			startDate		query	string	false	"First payment date, defaults to today"
// @Param			targetDate		query	string	false	"Date the target should be reached"
// @Param			frequency		query	string	false	"One of weekly, bi_weekly, monthly. Defaults to monthly"
// @Param			paymentAmount	query	int		false	"Fixed amount per payment in cents"
// @Router			/v1/savings-goals/schedule [get]
func GetSavingsGoalSchedule(c *gin.Context) {
	var query SavingsScheduleQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsScheduleResponse{
			Error: &s,
		})
		return
	}

	if query.StartDate.IsZero() {
		query.StartDate = types.Today()
	}

	if query.Frequency == "" {
		query.Frequency = savings.Monthly
	}

	var schedule savings.Schedule
	if query.PaymentAmount != 0 {
		schedule, err = savings.ProjectFromAmount(query.TargetAmount-query.SavedAmount, query.PaymentAmount, query.StartDate, query.Frequency)
	} else {
		schedule, err = savings.Calculate(savings.Input{
			Target:     query.TargetAmount,
			Saved:      query.SavedAmount,
			Start:      query.StartDate,
			TargetDate: query.TargetDate,
			Frequency:  query.Frequency,
		})
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsScheduleResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SavingsScheduleResponse{Data: &schedule})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Savings Goals
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id}/contribute [options]
func OptionsSavingsGoalContribute(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Contribute to savings goal
// @Description	Records a contribution and adds it to the saved amount. Goals that reach their target are completed.
// @Tags			Savings Goals
// @Accept			json
// @Produce		json
// @Success		201				{object}	SavingsContributeResponse
// @Failure		400				{object}	SavingsContributeResponse
// @Failure		404				{object}	SavingsContributeResponse
// @Failure		500				{object}	SavingsContributeResponse
// @Param			id				path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contribution	body		SavingsContributionEditable	true	"Contribution"
// @Router			/v1/savings-goals/{id}/contribute [post]
func ContributeSavingsGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	var data SavingsContributionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	contribution, err := goal.Contribute(models.DB, data.Amount, data.Date, data.Note)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	apiGoal, err := newSavingsGoal(c, models.DB, goal)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, SavingsContributeResponse{
		Data: &SavingsContributeResult{
			Goal:         apiGoal,
			Contribution: newSavingsContribution(contribution),
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Savings Goals
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id}/contributions [options]
func OptionsSavingsGoalContributions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get contributions
// @Description	Returns the contributions to a savings goal, most recent first
// @Tags			Savings Goals
// @Produce		json
// @Success		200	{object}	SavingsContributionListResponse
// @Failure		400	{object}	SavingsContributionListResponse
// @Failure		404	{object}	SavingsContributionListResponse
// @Failure		500	{object}	SavingsContributionListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/savings-goals/{id}/contributions [get]
func GetSavingsGoalContributions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributionListResponse{
			Error: &s,
		})
		return
	}

	var goal models.SavingsGoal
	err = models.DB.First(&goal, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributionListResponse{
			Error: &s,
		})
		return
	}

	var contributions []models.SavingsContribution
	err = models.DB.
		Where(&models.SavingsContribution{SavingsGoalID: goal.ID}).
		Order("date DESC, created_at DESC").
		Find(&contributions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavingsContributionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]SavingsContribution, 0, len(contributions))
	for _, contribution := range contributions {
		data = append(data, newSavingsContribution(contribution))
	}

	c.JSON(http.StatusOK, SavingsContributionListResponse{Data: data})
}
