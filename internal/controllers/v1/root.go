package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/format"
	"github.com/pocketledger/backend/internal/models"
)

// Register registers all v1 routes with the RouterGroup that is passed.
func Register(r *gin.RouterGroup, formatter *format.Formatter) {
	{
		r.OPTIONS("", OptionsV1)
		r.GET("", GetV1)
		r.DELETE("", Cleanup)
	}

	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterWalletRoutes(r.Group("/wallets"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterBudgetEntryRoutes(r.Group("/budgets"))
	RegisterReportRoutes(r.Group("/reports"), formatter)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`     // URL of the category endpoints
	Wallets      string `json:"wallets" example:"https://example.com/v1/wallets"`           // URL of the wallet endpoints
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"` // URL of the transaction endpoints
	Budgets      string `json:"budgets" example:"https://example.com/v1/budgets"`           // URL of the budget entry endpoints
	Reports      string `json:"reports" example:"https://example.com/v1/reports"`           // URL of the report endpoints
}

func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET, DELETE")
	c.Status(http.StatusNoContent)
}

// GetV1 returns the links for the v1 API.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Categories:   "/v1/categories",
			Wallets:      "/v1/wallets",
			Transactions: "/v1/transactions",
			Budgets:      "/v1/budgets",
			Reports:      "/v1/reports",
		},
	})
}

// Cleanup permanently deletes all resources.
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Foreign keys are checked during cleanup,
	// add new models *before* any of the models
	// they reference
	resources := []any{
		models.BudgetEntry{},
		models.Transaction{},
		models.Category{},
		models.Wallet{},
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.Status(http.StatusNoContent)
}
