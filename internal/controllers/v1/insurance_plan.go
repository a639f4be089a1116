package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// RegisterInsurancePlanRoutes registers the routes for insurance plans with
// the RouterGroup that is passed.
func RegisterInsurancePlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInsurancePlanList)
		r.GET("", GetInsurancePlans)
		r.POST("", CreateInsurancePlans)
	}

	// Insurance plan with ID
	{
		r.OPTIONS("/:id", OptionsInsurancePlanDetail)
		r.GET("/:id", GetInsurancePlan)
		r.PATCH("/:id", UpdateInsurancePlan)
		r.DELETE("/:id", DeleteInsurancePlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insurance Plans
// @Success		204
// @Router			/v1/insurance-plans [options]
func OptionsInsurancePlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insurance Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-plans/{id} [options]
func OptionsInsurancePlanDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.InsurancePlan{})
}

// @Summary		Create insurance plans
// @Description	Creates new insurance plans
// @Tags			Insurance Plans
// @Produce		json
// @Success		201	{object}	InsurancePlanCreateResponse
// @Failure		400	{object}	InsurancePlanCreateResponse
// @Failure		404	{object}	InsurancePlanCreateResponse
// @Failure		500	{object}	InsurancePlanCreateResponse
// @Param			plans	body		[]InsurancePlanEditable	true	"Insurance plans"
// @Router			/v1/insurance-plans [post]
func CreateInsurancePlans(c *gin.Context) {
	var editables []InsurancePlanEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsurancePlanCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := InsurancePlanCreateResponse{}

	for _, editable := range editables {
		plan := editable.model()

		err = models.DB.Create(&plan).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newInsurancePlan(c, models.DB, plan)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, InsurancePlanResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get insurance plans
// @Description	Returns a list of insurance plans
// @Tags			Insurance Plans
// @Produce		json
// @Success		200	{object}	InsurancePlanListResponse
// @Failure		400	{object}	InsurancePlanListResponse
// @Failure		500	{object}	InsurancePlanListResponse
// @Router			/v1/insurance-plans [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			planType	query	string	false	"Filter by plan type"
// @Param			archived	query	bool	false	"Is the plan archived?"
// @Param			search	query	string	false	"Search for this text in name, note and provider"
// @Param			offset	query	uint	false	"The offset of the first insurance plan returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of insurance plans to return. Defaults to 50."
func GetInsurancePlans(c *gin.Context) {
	var filter InsurancePlanQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = textFilters(models.DB, q, setFields, filter.Search,
		textFilter{"Name", "name", filter.Name},
		textFilter{"Note", "note", filter.Note},
		textFilter{"", "provider", ""},
	)

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var plans []models.InsurancePlan
	err = q.Find(&plans).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanListResponse{
			Error: &s,
		})
		return
	}

	data := make([]InsurancePlan, 0)
	for _, plan := range plans {
		apiResource, err := newInsurancePlan(c, models.DB, plan)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), InsurancePlanListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, InsurancePlanListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get insurance plan
// @Description	Returns a specific insurance plan
// @Tags			Insurance Plans
// @Produce		json
// @Success		200	{object}	InsurancePlanResponse
// @Failure		400	{object}	InsurancePlanResponse
// @Failure		404	{object}	InsurancePlanResponse
// @Failure		500	{object}	InsurancePlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-plans/{id} [get]
func GetInsurancePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	var plan models.InsurancePlan
	err = models.DB.First(&plan, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	data, err := newInsurancePlan(c, models.DB, plan)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}
	c.JSON(http.StatusOK, InsurancePlanResponse{Data: &data})
}

// @Summary		Update insurance plan
// @Description	Updates an existing insurance plan. Only values to be updated need to be specified.
// @Tags			Insurance Plans
// @Accept			json
// @Produce		json
// @Success		200	{object}	InsurancePlanResponse
// @Failure		400	{object}	InsurancePlanResponse
// @Failure		404	{object}	InsurancePlanResponse
// @Failure		500	{object}	InsurancePlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			plan	body		InsurancePlanEditable	true	"Insurance plan"
// @Router			/v1/insurance-plans/{id} [patch]
func UpdateInsurancePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	var plan models.InsurancePlan
	err = models.DB.First(&plan, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, InsurancePlanEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	var data InsurancePlanEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&plan).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}

	r, err := newInsurancePlan(c, models.DB, plan)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsurancePlanResponse{
			Error: &s,
		})
		return
	}
	c.JSON(http.StatusOK, InsurancePlanResponse{Data: &r})
}

// @Summary		Delete insurance plan
// @Description	Deletes an insurance plan together with its claims
// @Tags			Insurance Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-plans/{id} [delete]
func DeleteInsurancePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var plan models.InsurancePlan
	err = models.DB.First(&plan, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&plan).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
