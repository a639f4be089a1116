package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// resourceOptionsDetail returns the response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.PaymentSource | models.Category | models.Bill | models.Income | models.FamilyMember | models.InsurancePlan | models.InsuranceClaim | models.Todo | models.SavingsGoal](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
