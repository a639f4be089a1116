package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/money"
	"github.com/ledgerline/backend/internal/types"
	ez_uuid "github.com/ledgerline/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	Month types.Month `uri:"month" example:"2024-05" swaggertype:"primitive,string"` // Year and month in YYYY-MM format
}

type URIMonthID struct {
	URIMonth
	URIID
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// formatter returns the money formatter configured for the router.
func formatter(c *gin.Context) money.Formatter {
	if f, ok := c.Get(string(models.ContextFormatter)); ok {
		if formatter, ok := f.(money.Formatter); ok {
			return formatter
		}
	}

	f, _ := money.NewFormatter("USD", "en-US")
	return f
}

// baseURL returns the external URL of the API.
func baseURL(c *gin.Context) string {
	return c.GetString(string(models.DBContextURL))
}
