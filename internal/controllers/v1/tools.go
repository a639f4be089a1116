package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/money"
)

// RegisterToolRoutes registers the routes for tools with
// the RouterGroup that is passed.
func RegisterToolRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/dollars-to-cents", OptionsDollarsToCents)
	r.POST("/dollars-to-cents", DollarsToCents)
}

// DollarsToCentsInput is an amount in dollars as typed by a user.
type DollarsToCentsInput struct {
	Value string `json:"value" example:"1,234.565" binding:"required"` // Amount in dollars. Thousands separators are ignored
}

type DollarsToCentsResult struct {
	Cents     int64  `json:"cents" example:"123457"`         // The amount in cents, rounded half away from zero
	Formatted string `json:"formatted" example:"$1,234.57"` // The amount formatted for display
}

type DollarsToCentsResponse struct {
	Data  *DollarsToCentsResult `json:"data"`                                              // The converted amount
	Error *string               `json:"error" example:"\"abc\" is not a valid amount"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tools
// @Success		204
// @Router			/v1/tools/dollars-to-cents [options]
func OptionsDollarsToCents(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Convert dollars to cents
// @Description	Converts a dollar amount to cents with the rounding the backend uses
// @Tags			Tools
// @Accept			json
// @Produce		json
// @Success		200		{object}	DollarsToCentsResponse
// @Failure		400		{object}	DollarsToCentsResponse
// @Param			value	body		DollarsToCentsInput	true	"Amount"
// @Router			/v1/tools/dollars-to-cents [post]
func DollarsToCents(c *gin.Context) {
	var data DollarsToCentsInput
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DollarsToCentsResponse{
			Error: &s,
		})
		return
	}

	cents, err := money.DollarsToCents(data.Value)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DollarsToCentsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DollarsToCentsResponse{
		Data: &DollarsToCentsResult{
			Cents:     cents,
			Formatted: formatter(c).Format(cents),
		},
	})
}
