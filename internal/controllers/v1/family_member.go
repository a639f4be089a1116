package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// RegisterFamilyMemberRoutes registers the routes for family members with
// the RouterGroup that is passed.
func RegisterFamilyMemberRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFamilyMemberList)
		r.GET("", GetFamilyMembers)
		r.POST("", CreateFamilyMembers)
	}

	// PIN verification
	{
		r.OPTIONS("/:id/verify-pin", OptionsFamilyMemberVerifyPIN)
		r.POST("/:id/verify-pin", VerifyFamilyMemberPIN)
	}

	// Family member with ID
	{
		r.OPTIONS("/:id", OptionsFamilyMemberDetail)
		r.GET("/:id", GetFamilyMember)
		r.PATCH("/:id", UpdateFamilyMember)
		r.DELETE("/:id", DeleteFamilyMember)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Family Members
// @Success		204
// @Router			/v1/family-members [options]
func OptionsFamilyMemberList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Family Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/family-members/{id} [options]
func OptionsFamilyMemberDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.FamilyMember{})
}

// @Summary		Create family members
// @Description	Creates new family members
// @Tags			Family Members
// @Produce		json
// @Success		201	{object}	FamilyMemberCreateResponse
// @Failure		400	{object}	FamilyMemberCreateResponse
// @Failure		404	{object}	FamilyMemberCreateResponse
// @Failure		500	{object}	FamilyMemberCreateResponse
// @Param			members	body		[]FamilyMemberEditable	true	"Family members"
// @Router			/v1/family-members [post]
func CreateFamilyMembers(c *gin.Context) {
	var editables []FamilyMemberEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FamilyMemberCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FamilyMemberCreateResponse{}

	for _, editable := range editables {
		member, err := editable.model()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&member).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFamilyMember(c, member)
		r.Data = append(r.Data, FamilyMemberResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Family Members
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/family-members/{id}/verify-pin [options]
func OptionsFamilyMemberVerifyPIN(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Verify PIN
// @Description	Checks the PIN of a family member. Responds with 204 when the PIN matches and 403 when it does not.
// @Tags			Family Members
// @Accept			json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			pin	body		FamilyMemberPIN	true	"PIN"
// @Router			/v1/family-members/{id}/verify-pin [post]
func VerifyFamilyMemberPIN(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var data FamilyMemberPIN
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var member models.FamilyMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = member.VerifyPIN(data.PIN)
	if errors.Is(err, models.ErrPINMismatch) {
		c.JSON(http.StatusForbidden, httpError{
			Error: err.Error(),
		})
		return
	} else if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get family members
// @Description	Returns a list of family members
// @Tags			Family Members
// @Produce		json
// @Success		200	{object}	FamilyMemberListResponse
// @Failure		400	{object}	FamilyMemberListResponse
// @Failure		500	{object}	FamilyMemberListResponse
// @Router			/v1/family-members [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			relationship	query	string	false	"Filter by relationship"
// @Param			search	query	string	false	"Search for this text in name"
// @Param			offset	query	uint	false	"The offset of the first family member returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of family members to return. Defaults to 50."
func GetFamilyMembers(c *gin.Context) {
	var filter FamilyMemberQueryFilter
	err := c.ShouldBind(&filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberListResponse{
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
	)

	limit := queryLimit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var members []models.FamilyMember
	err = q.Find(&members).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberListResponse{
			Error: &s,
		})
		return
	}

	data := make([]FamilyMember, 0)
	for _, member := range members {
		data = append(data, newFamilyMember(c, member))
	}

	c.JSON(http.StatusOK, FamilyMemberListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get family member
// @Description	Returns a specific family member
// @Tags			Family Members
// @Produce		json
// @Success		200	{object}	FamilyMemberResponse
// @Failure		400	{object}	FamilyMemberResponse
// @Failure		404	{object}	FamilyMemberResponse
// @Failure		500	{object}	FamilyMemberResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/family-members/{id} [get]
func GetFamilyMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	var member models.FamilyMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	data := newFamilyMember(c, member)
	c.JSON(http.StatusOK, FamilyMemberResponse{Data: &data})
}

// @Summary		Update family member
// @Description	Updates an existing family member. Only values to be updated need to be specified.
// @Tags			Family Members
// @Accept			json
// @Produce		json
// @Success		200	{object}	FamilyMemberResponse
// @Failure		400	{object}	FamilyMemberResponse
// @Failure		404	{object}	FamilyMemberResponse
// @Failure		500	{object}	FamilyMemberResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			member	body		FamilyMemberEditable	true	"Family member"
// @Router			/v1/family-members/{id} [patch]
func UpdateFamilyMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	var member models.FamilyMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FamilyMemberEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	var data FamilyMemberEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	update, err := data.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	// The PIN is stored as hash
	for i, field := range updateFields {
		if field == "PIN" {
			updateFields[i] = "PINHash"
		}
	}

	err = models.DB.Model(&member).Select("", updateFields...).Updates(update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FamilyMemberResponse{
			Error: &s,
		})
		return
	}

	r := newFamilyMember(c, member)
	c.JSON(http.StatusOK, FamilyMemberResponse{Data: &r})
}

// @Summary		Delete family member
// @Description	Deletes a family member. Insurance claims for the family member are kept without it.
// @Tags			Family Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/family-members/{id} [delete]
func DeleteFamilyMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var member models.FamilyMember
	err = models.DB.First(&member, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
