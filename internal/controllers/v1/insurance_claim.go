package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// RegisterInsuranceClaimRoutes registers the routes for insurance claims with
// the RouterGroup that is passed.
func RegisterInsuranceClaimRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInsuranceClaimList)
		r.GET("", GetInsuranceClaims)
		r.POST("", CreateInsuranceClaims)
	}

	// Insurance claim with ID
	{
		r.OPTIONS("/:id", OptionsInsuranceClaimDetail)
		r.GET("/:id", GetInsuranceClaim)
		r.PATCH("/:id", UpdateInsuranceClaim)
		r.DELETE("/:id", DeleteInsuranceClaim)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insurance Claims
// @Success		204
// @Router			/v1/insurance-claims [options]
func OptionsInsuranceClaimList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insurance Claims
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-claims/{id} [options]
func OptionsInsuranceClaimDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.InsuranceClaim{})
}

// @Summary		Create insurance claims
// @Description	Creates new insurance claims
// @Tags			Insurance Claims
// @Produce		json
// @Success		201	{object}	InsuranceClaimCreateResponse
// @Failure		400	{object}	InsuranceClaimCreateResponse
// @Failure		404	{object}	InsuranceClaimCreateResponse
// @Failure		500	{object}	InsuranceClaimCreateResponse
// @Param			claims	body		[]InsuranceClaimEditable	true	"Insurance claims"
// @Router			/v1/insurance-claims [post]
func CreateInsuranceClaims(c *gin.Context) {
	var editables []InsuranceClaimEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsuranceClaimCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := InsuranceClaimCreateResponse{}

	for _, editable := range editables {
		claim := editable.model()

		err = models.DB.Create(&claim).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newInsuranceClaim(c, claim)
		r.Data = append(r.Data, InsuranceClaimResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get insurance claims
// @Description	Returns a list of insurance claims, most recent service date first
// @Tags			Insurance Claims
// @Produce		json
// @Success		200	{object}	InsuranceClaimListResponse
// @Failure		400	{object}	InsuranceClaimListResponse
// @Failure		500	{object}	InsuranceClaimListResponse
// @Router			/v1/insurance-claims [get]
// @Param			insurancePlan	query	string	false	"Filter by insurance plan ID"
// @Param			familyMember	query	string	false	"Filter by family member ID"
// @Param			status	query	string	false	"Filter by status"
// @Param			description	query	string	false	"Filter by description"
// @Param			providerName	query	string	false	"Filter by provider name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in description, provider name and note"
// @Param			offset	query	uint	false	"The offset of the first insurance claim returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of insurance claims to return. Defaults to 50."
func GetInsuranceClaims(c *gin.Context) {
	var filter InsuranceClaimQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()
	q := models.DB.
		Order("service_date DESC, description ASC").
		Where(&filterModel, queryFields...)

	q = textFilters(models.DB, q, setFields, filter.Search,
		textFilter{"Description", "description", filter.Description},
		textFilter{"ProviderName", "provider_name", filter.ProviderName},
		textFilter{"Note", "note", filter.Note},
	)

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var claims []models.InsuranceClaim
	err = q.Find(&claims).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimListResponse{
			Error: &s,
		})
		return
	}

	data := make([]InsuranceClaim, 0)
	for _, claim := range claims {
		data = append(data, newInsuranceClaim(c, claim))
	}

	c.JSON(http.StatusOK, InsuranceClaimListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get insurance claim
// @Description	Returns a specific insurance claim
// @Tags			Insurance Claims
// @Produce		json
// @Success		200	{object}	InsuranceClaimResponse
// @Failure		400	{object}	InsuranceClaimResponse
// @Failure		404	{object}	InsuranceClaimResponse
// @Failure		500	{object}	InsuranceClaimResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-claims/{id} [get]
func GetInsuranceClaim(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	var claim models.InsuranceClaim
	err = models.DB.First(&claim, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	data := newInsuranceClaim(c, claim)
	c.JSON(http.StatusOK, InsuranceClaimResponse{Data: &data})
}

// @Summary		Update insurance claim
// @Description	Updates an existing insurance claim. Only values to be updated need to be specified.
// @Tags			Insurance Claims
// @Accept			json
// @Produce		json
// @Success		200	{object}	InsuranceClaimResponse
// @Failure		400	{object}	InsuranceClaimResponse
// @Failure		404	{object}	InsuranceClaimResponse
// @Failure		500	{object}	InsuranceClaimResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			claim	body		InsuranceClaimEditable	true	"Insurance claim"
// @Router			/v1/insurance-claims/{id} [patch]
func UpdateInsuranceClaim(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	var claim models.InsuranceClaim
	err = models.DB.First(&claim, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, InsuranceClaimEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	var data InsuranceClaimEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&claim).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsuranceClaimResponse{
			Error: &s,
		})
		return
	}

	r := newInsuranceClaim(c, claim)
	c.JSON(http.StatusOK, InsuranceClaimResponse{Data: &r})
}

// @Summary		Delete insurance claim
// @Description	Deletes an insurance claim
// @Tags			Insurance Claims
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/insurance-claims/{id} [delete]
func DeleteInsuranceClaim(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var claim models.InsuranceClaim
	err = models.DB.First(&claim, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&claim).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
