package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
)

// RegisterRoutes registers the v1 API with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	{
		r.GET("", Get)
		r.DELETE("", Cleanup)
		r.OPTIONS("", Options)
	}

	RegisterPaymentSourceRoutes(r.Group("/payment-sources"))
	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterBillRoutes(r.Group("/bills"))
	RegisterIncomeRoutes(r.Group("/incomes"))
	RegisterFamilyMemberRoutes(r.Group("/family-members"))
	RegisterInsurancePlanRoutes(r.Group("/insurance-plans"))
	RegisterInsuranceClaimRoutes(r.Group("/insurance-claims"))
	RegisterTodoRoutes(r.Group("/todos"))
	RegisterSavingsGoalRoutes(r.Group("/savings-goals"))
	RegisterMonthRoutes(r.Group("/months"))
	RegisterBackupRoutes(r.Group("/backup"), version)
	RegisterToolRoutes(r.Group("/tools"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	PaymentSources  string `json:"paymentSources" example:"https://example.com/api/v1/payment-sources"`   // URL of Payment Source collection endpoint
	Categories      string `json:"categories" example:"https://example.com/api/v1/categories"`            // URL of Category collection endpoint
	Bills           string `json:"bills" example:"https://example.com/api/v1/bills"`                      // URL of Bill collection endpoint
	Incomes         string `json:"incomes" example:"https://example.com/api/v1/incomes"`                  // URL of Income collection endpoint
	FamilyMembers   string `json:"familyMembers" example:"https://example.com/api/v1/family-members"`     // URL of Family Member collection endpoint
	InsurancePlans  string `json:"insurancePlans" example:"https://example.com/api/v1/insurance-plans"`   // URL of Insurance Plan collection endpoint
	InsuranceClaims string `json:"insuranceClaims" example:"https://example.com/api/v1/insurance-claims"` // URL of Insurance Claim collection endpoint
	Todos           string `json:"todos" example:"https://example.com/api/v1/todos"`                      // URL of Todo collection endpoint
	SavingsGoals    string `json:"savingsGoals" example:"https://example.com/api/v1/savings-goals"`       // URL of Savings Goal collection endpoint
	Months          string `json:"months" example:"https://example.com/api/v1/months"`                    // URL of Month collection endpoint
	Backup          string `json:"backup" example:"https://example.com/api/v1/backup"`                    // URL of the backup endpoint
	Tools           string `json:"tools" example:"https://example.com/api/v1/tools"`                      // URL of the tools endpoints
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := baseURL(c)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			PaymentSources:  url + "/v1/payment-sources",
			Categories:      url + "/v1/categories",
			Bills:           url + "/v1/bills",
			Incomes:         url + "/v1/incomes",
			FamilyMembers:   url + "/v1/family-members",
			InsurancePlans:  url + "/v1/insurance-plans",
			InsuranceClaims: url + "/v1/insurance-claims",
			Todos:           url + "/v1/todos",
			SavingsGoals:    url + "/v1/savings-goals",
			Months:          url + "/v1/months",
			Backup:          url + "/v1/backup",
			Tools:           url + "/v1/tools",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
