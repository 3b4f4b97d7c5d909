package v1

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/format"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/report"
	"github.com/pocketledger/backend/internal/types"
)

// MonthRow is one monthly bucket of the series, both as exact decimal
// values and rounded for chart display.
type MonthRow struct {
	Month          types.Month     `json:"month" example:"2024-01"`         // The month
	Label          string          `json:"label" example:"January 2024"`    // Human readable month label
	Income         decimal.Decimal `json:"income" example:"2317.34"`        // Exact income total
	Expense        decimal.Decimal `json:"expense" example:"133.70"`        // Exact expense total
	DisplayIncome  int64           `json:"displayIncome" example:"2317"`    // Income rounded to integer units
	DisplayExpense int64           `json:"displayExpense" example:"134"`    // Expenses rounded to integer units
}

type MonthSeriesResponse struct {
	Data  []MonthRow `json:"data"`  // The monthly buckets, ascending
	Error *string    `json:"error"` // The error, if any occurred
}

type StructureResponse struct {
	Data  []report.StructureRow `json:"data"`  // The expense structure rows, largest first
	Error *string               `json:"error"` // The error, if any occurred
}

type BudgetReportResponse struct {
	Data  *report.BudgetReport `json:"data"`  // The leaf-granularity budget report
	Error *string              `json:"error"` // The error, if any occurred
}

// RootRow is the plan/actual comparison for one root category, combining
// the actual and budget rollups.
type RootRow struct {
	CategoryID   uuid.UUID       `json:"categoryId"`                   // ID of the root category
	CategoryName string          `json:"categoryName" example:"Food"`  // Name of the root category
	Budget       decimal.Decimal `json:"budget" example:"600"`         // Sum of budget entries rolled up to this root
	Actual       decimal.Decimal `json:"actual" example:"423.77"`      // Sum of actual amounts rolled up to this root
	Difference   decimal.Decimal `json:"difference" example:"176.23"`  // Budget minus actual
}

type RootReportResponse struct {
	Data  []RootRow `json:"data"`  // One row per root category
	Error *string   `json:"error"` // The error, if any occurred
}

var reportFormatter *format.Formatter

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup, formatter *format.Formatter) {
	reportFormatter = formatter

	{
		r.OPTIONS("/months", OptionsReport)
		r.GET("/months", GetMonthSeries)
	}

	{
		r.OPTIONS("/structure", OptionsReport)
		r.GET("/structure", GetStructure)
	}

	{
		r.OPTIONS("/budget/:month", OptionsReport)
		r.GET("/budget/:month", GetBudgetReport)
	}

	{
		r.OPTIONS("/budget/:month/roots", OptionsReport)
		r.GET("/budget/:month/roots", GetRootReport)
	}
}

func OptionsReport(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// parseRange reads the from/to query parameters. When unset, the range
// defaults to January 1 of the current year up to now. The default start
// can be overridden with the REPORT_RANGE_START environment variable.
func parseRange(c *gin.Context) (report.Range, error) {
	r := report.DefaultRange(time.Now().UTC())

	if start, ok := os.LookupEnv("REPORT_RANGE_START"); ok {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(start))
		if err != nil {
			return report.Range{}, err
		}
		r.Start = t
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return report.Range{}, err
		}
		r.Start = t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return report.Range{}, err
		}
		// Include the whole last day
		r.End = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return r, nil
}

// GetMonthSeries returns the monthly income/expense series for the range.
func GetMonthSeries(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthSeriesResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), MonthSeriesResponse{Error: &e})
		return
	}

	series := report.MonthlySeries(transactions, r)
	display := report.DisplaySeries(series)

	data := make([]MonthRow, 0, len(series))
	for i, bucket := range series {
		data = append(data, MonthRow{
			Month:          bucket.Month,
			Label:          reportFormatter.MonthLabel(bucket.Month),
			Income:         bucket.Income,
			Expense:        bucket.Expense,
			DisplayIncome:  display[i].Income,
			DisplayExpense: display[i].Expense,
		})
	}

	c.JSON(http.StatusOK, MonthSeriesResponse{Data: data})
}

// GetStructure returns the expense breakdown by category for the range.
func GetStructure(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, StructureResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{Error: &e})
		return
	}

	var categories []models.Category
	if err := models.DB.Find(&categories).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), StructureResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, StructureResponse{
		Data: report.ExpenseStructure(transactions, categories, r),
	})
}

// GetBudgetReport returns the leaf-granularity plan/actual report for the
// month in the URL.
func GetBudgetReport(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetReportResponse{Error: &e})
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetReportResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{Error: &e})
		return
	}

	var categories []models.Category
	if err := models.DB.Find(&categories).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{Error: &e})
		return
	}

	var budgets []models.BudgetEntry
	if err := models.DB.Find(&budgets).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{Error: &e})
		return
	}

	data := report.BuildBudgetReport(transactions, categories, budgets, month)
	c.JSON(http.StatusOK, BudgetReportResponse{Data: &data})
}

// GetRootReport returns the plan/actual comparison rolled up to root
// categories for the month in the URL.
func GetRootReport(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RootReportResponse{Error: &e})
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RootReportResponse{Error: &e})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	var categories []models.Category
	if err := models.DB.Find(&categories).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	var budgets []models.BudgetEntry
	if err := models.DB.Find(&budgets).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	resolver, err := report.NewResolver(categories)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	actual, err := report.ActualByRootForMonth(transactions, resolver, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	planned, err := report.BudgetByRootForMonth(budgets, resolver, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RootReportResponse{Error: &e})
		return
	}

	ids := make(map[uuid.UUID]bool, len(actual)+len(planned))
	for id := range actual {
		ids[id] = true
	}
	for id := range planned {
		ids[id] = true
	}

	data := make([]RootRow, 0, len(ids))
	for id := range ids {
		data = append(data, RootRow{
			CategoryID:   id,
			CategoryName: resolver.Name(id),
			Budget:       planned[id],
			Actual:       actual[id],
			Difference:   planned[id].Sub(actual[id]),
		})
	}

	slices.SortFunc(data, func(a, b RootRow) int {
		if cmp := strings.Compare(a.CategoryName, b.CategoryName); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.CategoryID.String(), b.CategoryID.String())
	})

	c.JSON(http.StatusOK, RootReportResponse{Data: data})
}
