package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	ledger_uuid "github.com/pocketledger/backend/internal/uuid"
)

// BudgetEntryEditable represents all user configurable parameters of a
// budget entry.
type BudgetEntryEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"dd09bd8e-d43b-4ae4-a089-ae2b5cb38e55"` // ID of the category the entry plans for
	Month      types.Month     `json:"month" example:"2024-01"`                                   // The month the entry plans for
	Amount     decimal.Decimal `json:"amount" example:"500" default:"0"`                          // The planned amount, negative values are clamped to 0
}

func (editable BudgetEntryEditable) model() models.BudgetEntry {
	return models.BudgetEntry{
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Amount:     editable.Amount,
	}
}

type BudgetEntryResponse struct {
	Data  *models.BudgetEntry `json:"data"`  // Data for the budget entry
	Error *string             `json:"error"` // The error, if any occurred
}

type BudgetEntryListResponse struct {
	Data  []models.BudgetEntry `json:"data"`  // List of budget entries
	Error *string              `json:"error"` // The error, if any occurred
}

type BudgetEntryQueryFilter struct {
	Category ledger_uuid.UUID `form:"category" filterField:"false"` // By ID of the category
	Month    string           `form:"month" filterField:"false"`    // By month
	Offset   uint             `form:"offset" filterField:"false"`   // The offset of the first entry returned. Defaults to 0.
	Limit    int              `form:"limit" filterField:"false"`    // Maximum number of entries to return. Defaults to 50.
}

// RegisterBudgetEntryRoutes registers the routes for budget entries with
// the RouterGroup that is passed.
func RegisterBudgetEntryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetEntryList)
		r.GET("", GetBudgetEntries)
		r.POST("", UpsertBudgetEntry)
	}

	{
		r.OPTIONS("/:id", OptionsBudgetEntryDetail)
		r.GET("/:id", GetBudgetEntry)
		r.DELETE("/:id", DeleteBudgetEntry)
	}
}

func OptionsBudgetEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsBudgetEntryDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.BudgetEntry{}, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// UpsertBudgetEntry writes a budget entry. If an entry for the same
// (category, month) pair exists, its amount is replaced: exactly one entry
// per pair remains, the later write wins.
func UpsertBudgetEntry(c *gin.Context) {
	var editable BudgetEntryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryResponse{Error: &e})
		return
	}

	// The category must exist, a budget plan for a stale reference helps
	// nobody.
	if err := models.DB.First(&models.Category{}, editable.CategoryID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryResponse{Error: &e})
		return
	}

	entry := editable.model()

	if err := models.UpsertBudgetEntry(models.DB, &entry); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetEntryResponse{Data: &entry})
}

// GetBudgetEntries returns a list of budget entries filtered by the query
// parameters.
func GetBudgetEntries(c *gin.Context) {
	var filter BudgetEntryQueryFilter
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("month ASC")

	if slices.Contains(setFields, "Category") {
		q = q.Where("category_id = ?", filter.Category.UUID)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, BudgetEntryListResponse{Error: &e})
			return
		}

		q = q.Where("month = ?", month)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var entries []models.BudgetEntry
	if err := q.Find(&entries).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetEntryListResponse{Data: entries})
}

// GetBudgetEntry returns a specific budget entry.
func GetBudgetEntry(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryResponse{Error: &e})
		return
	}

	var entry models.BudgetEntry
	if err := models.DB.First(&entry, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetEntryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetEntryResponse{Data: &entry})
}

// DeleteBudgetEntry deletes the budget entry with the ID in the URL.
func DeleteBudgetEntry(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var entry models.BudgetEntry
	if err := models.DB.First(&entry, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&entry).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
