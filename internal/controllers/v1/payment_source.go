package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// RegisterPaymentSourceRoutes registers the routes for payment sources with
// the RouterGroup that is passed.
func RegisterPaymentSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentSourceList)
		r.GET("", GetPaymentSources)
		r.POST("", CreatePaymentSources)
	}

	// Payment source with ID
	{
		r.OPTIONS("/:id", OptionsPaymentSourceDetail)
		r.GET("/:id", GetPaymentSource)
		r.PATCH("/:id", UpdatePaymentSource)
		r.DELETE("/:id", DeletePaymentSource)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payment Sources
// @Success		204
// @Router			/v1/payment-sources [options]
func OptionsPaymentSourceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payment Sources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-sources/{id} [options]
func OptionsPaymentSourceDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.PaymentSource{})
}

// @Summary		Create payment sources
// @Description	Creates new payment sources
// @Tags			Payment Sources
// @Produce		json
// @Success		201				{object}	PaymentSourceCreateResponse
// @Failure		400				{object}	PaymentSourceCreateResponse
// @Failure		500				{object}	PaymentSourceCreateResponse
// @Param			paymentSources	body		[]PaymentSourceEditable	true	"Payment sources"
// @Router			/v1/payment-sources [post]
func CreatePaymentSources(c *gin.Context) {
	var editables []PaymentSourceEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentSourceCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PaymentSourceCreateResponse{}

	for _, editable := range editables {
		source := editable.model()

		err = models.DB.Create(&source).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPaymentSource(c, source)
		r.Data = append(r.Data, PaymentSourceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get payment sources
// @Description	Returns a list of payment sources, ordered by their sort order
// @Tags			Payment Sources
// @Produce		json
// @Success		200	{object}	PaymentSourceListResponse
// @Failure		400	{object}	PaymentSourceListResponse
// @Failure		500	{object}	PaymentSourceListResponse
// @Router			/v1/payment-sources [get]
// @Param			name				query	string	false	"Filter by name"
// @Param			type				query	string	false	"Filter by type"
// @Param			excludeFromLeftover	query	bool	false	"Is the balance excluded from available funds?"
// @Param			archived			query	bool	false	"Is the payment source archived?"
// @Param			search				query	string	false	"Search for this text in the name"
// @Param			offset				query	uint	false	"The offset of the first payment source returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of payment sources to return. Defaults to 50."
func GetPaymentSources(c *gin.Context) {
	var filter PaymentSourceQueryFilter

	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where(&filterModel, queryFields...)

	q = textFilters(models.DB, q, setFields, filter.Search,
		textFilter{"Name", "name", filter.Name},
	)

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var sources []models.PaymentSource
	err = q.Find(&sources).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceListResponse{
			Error: &s,
		})
		return
	}

	data := make([]PaymentSource, 0)
	for _, source := range sources {
		data = append(data, newPaymentSource(c, source))
	}

	c.JSON(http.StatusOK, PaymentSourceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get payment source
// @Description	Returns a specific payment source
// @Tags			Payment Sources
// @Produce		json
// @Success		200	{object}	PaymentSourceResponse
// @Failure		400	{object}	PaymentSourceResponse
// @Failure		404	{object}	PaymentSourceResponse
// @Failure		500	{object}	PaymentSourceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-sources/{id} [get]
func GetPaymentSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	var source models.PaymentSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	data := newPaymentSource(c, source)
	c.JSON(http.StatusOK, PaymentSourceResponse{Data: &data})
}

// @Summary		Update payment source
// @Description	Updates an existing payment source. Only values to be updated need to be specified.
// @Tags			Payment Sources
// @Accept			json
// @Produce		json
// @Success		200				{object}	PaymentSourceResponse
// @Failure		400				{object}	PaymentSourceResponse
// @Failure		404				{object}	PaymentSourceResponse
// @Failure		500				{object}	PaymentSourceResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			paymentSource	body		PaymentSourceEditable	true	"Payment source"
// @Router			/v1/payment-sources/{id} [patch]
func UpdatePaymentSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	var source models.PaymentSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PaymentSourceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	var data PaymentSourceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&source).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentSourceResponse{
			Error: &s,
		})
		return
	}

	r := newPaymentSource(c, source)
	c.JSON(http.StatusOK, PaymentSourceResponse{Data: &r})
}

// @Summary		Delete payment source
// @Description	Deletes a payment source. Bills, incomes and month items that reference it keep existing without a payment source.
// @Tags			Payment Sources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payment-sources/{id} [delete]
func DeletePaymentSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var source models.PaymentSource
	err = models.DB.First(&source, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&source).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
