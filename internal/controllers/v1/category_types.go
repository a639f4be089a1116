package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string              `json:"name" example:"Utilities" default:""` // Name of the category, unique per type
	Type  models.CategoryType `json:"type" example:"bill"`                 // Either bill or income
	Color string              `json:"color" example:"#3b82f6" default:""`  // Color in #RRGGBB format
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Type:  editable.Type,
		Color: editable.Color,
	}
}

type CategoryLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`             // The category itself
	Resources string `json:"resources" example:"https://example.com/api/v1/bills?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Bills or incomes in this category, depending on its type
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	SortOrder int           `json:"sortOrder" example:"0"` // Position within the categories of the same type
	Links     CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := baseURL(c)

	resources := "bills"
	if model.Type == models.CategoryTypeIncome {
		resources = "incomes"
	}

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Type:  model.Type,
			Color: model.Color,
		},
		SortOrder: model.SortOrder,
		Links: CategoryLinks{
			Self:      fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Resources: fmt.Sprintf("%s/v1/%s?category=%s", url, resources, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the name must not be empty"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created categories or their respective error
	Error *string            `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the name must not be empty"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string              `form:"name" filterField:"false"`   // By name
	Type   models.CategoryType `form:"type"`                       // By type
	Search string              `form:"search" filterField:"false"` // By string in name
	Offset uint                `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int                 `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Type: f.Type,
	}
}

// CategoryOrder is the new order of the categories of one type.
type CategoryOrder struct {
	Type models.CategoryType `json:"type" example:"bill"`                                          // Type of the categories to reorder
	IDs  []uuid.UUID         `json:"ids" binding:"required" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // IDs in the new order. Categories not listed keep their relative order after the listed ones
}
