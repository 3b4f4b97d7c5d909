package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
)

// seedReportData creates two months of transactions:
//
//	2024-01: income 1000, expenses 100 (Food) + 20 (Takeout, child of Food)
//	2024-02: expense 80 (Leisure)
func (suite *TestSuiteStandard) seedReportData() (food, takeout, leisure v1.CategoryResponse) {
	t := suite.T()

	income := createTestCategory(t, v1.CategoryEditable{Name: "Salary", Kind: models.KindIncome})
	food = createTestCategory(t, v1.CategoryEditable{Name: "Food", Kind: models.KindExpense})
	takeout = createTestCategory(t, v1.CategoryEditable{Name: "Takeout", Kind: models.KindExpense, ParentID: &food.Data.ID})
	leisure = createTestCategory(t, v1.CategoryEditable{Name: "Leisure", Kind: models.KindExpense})

	wallet := createTestWallet(t, v1.WalletEditable{})

	_ = createTestTransaction(t, v1.TransactionEditable{
		Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindIncome,
		Amount:     decimal.NewFromInt(1000),
		CategoryID: income.Data.ID,
		WalletID:   wallet.Data.ID,
	})
	_ = createTestTransaction(t, v1.TransactionEditable{
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
		Amount:     decimal.NewFromInt(100),
		CategoryID: food.Data.ID,
		WalletID:   wallet.Data.ID,
	})
	_ = createTestTransaction(t, v1.TransactionEditable{
		Date:       time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
		Amount:     decimal.NewFromInt(20),
		CategoryID: takeout.Data.ID,
		WalletID:   wallet.Data.ID,
	})
	_ = createTestTransaction(t, v1.TransactionEditable{
		Date:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Kind:       models.KindExpense,
		Amount:     decimal.NewFromInt(80),
		CategoryID: leisure.Data.ID,
		WalletID:   wallet.Data.ID,
	})

	return
}

func (suite *TestSuiteStandard) TestReportMonthSeries() {
	suite.seedReportData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/months?from=2024-01-01&to=2024-12-31", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSeriesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)

	january := response.Data[0]
	assert.True(suite.T(), january.Month.Equal(types.NewMonth(2024, 1)))
	assert.Equal(suite.T(), "January 2024", january.Label)
	assert.True(suite.T(), january.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), january.Expense.Equal(decimal.NewFromInt(120)))
	assert.Equal(suite.T(), int64(1000), january.DisplayIncome)
	assert.Equal(suite.T(), int64(120), january.DisplayExpense)

	february := response.Data[1]
	assert.True(suite.T(), february.Income.IsZero())
	assert.True(suite.T(), february.Expense.Equal(decimal.NewFromInt(80)))
}

func (suite *TestSuiteStandard) TestReportMonthSeriesRange() {
	suite.seedReportData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/months?from=2024-02-01&to=2024-02-29", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSeriesResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), response.Data[0].Month.Equal(types.NewMonth(2024, 2)))
}

func (suite *TestSuiteStandard) TestReportMonthSeriesInvalidRange() {
	tests := []string{"from=notadate", "to=2024-13-01"}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/months?%s", tt), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestReportStructure() {
	suite.seedReportData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/structure?from=2024-01-01&to=2024-12-31", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StructureResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 3)

	// Largest spend first: Food 100 of 200 total
	assert.Equal(suite.T(), "Food", response.Data[0].CategoryName)
	assert.True(suite.T(), response.Data[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), int64(50), response.Data[0].Share)
}

func (suite *TestSuiteStandard) TestReportBudget() {
	food, _, _ := suite.seedReportData()

	_ = createTestBudgetEntry(suite.T(), v1.BudgetEntryEditable{
		CategoryID: food.Data.ID,
		Month:      types.NewMonth(2024, 1),
		Amount:     decimal.NewFromInt(500),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/budget/2024-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Rows, 2)

	assert.Equal(suite.T(), "Food", response.Data.Rows[0].CategoryName)
	assert.True(suite.T(), response.Data.Rows[0].Budget.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), response.Data.Rows[0].Actual.Equal(decimal.NewFromInt(100)))

	assert.Equal(suite.T(), "Takeout", response.Data.Rows[1].CategoryName)
	assert.True(suite.T(), response.Data.Rows[1].Actual.Equal(decimal.NewFromInt(20)))

	assert.True(suite.T(), response.Data.Totals.Budget.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), response.Data.Totals.Actual.Equal(decimal.NewFromInt(120)))
	assert.True(suite.T(), response.Data.Totals.Difference.Equal(decimal.NewFromInt(380)))
}

func (suite *TestSuiteStandard) TestReportBudgetRoots() {
	food, takeout, _ := suite.seedReportData()

	// Budgets on both the root and the child roll up to the root
	_ = createTestBudgetEntry(suite.T(), v1.BudgetEntryEditable{
		CategoryID: food.Data.ID,
		Month:      types.NewMonth(2024, 1),
		Amount:     decimal.NewFromInt(500),
	})
	_ = createTestBudgetEntry(suite.T(), v1.BudgetEntryEditable{
		CategoryID: takeout.Data.ID,
		Month:      types.NewMonth(2024, 1),
		Amount:     decimal.NewFromInt(100),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/budget/2024-01/roots", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RootReportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2, "January has the Food subtree and the income root")

	var foodRow *v1.RootRow
	for i := range response.Data {
		if response.Data[i].CategoryName == "Food" {
			foodRow = &response.Data[i]
		}
	}
	require.NotNil(suite.T(), foodRow)

	assert.Equal(suite.T(), food.Data.ID, foodRow.CategoryID)
	assert.True(suite.T(), foodRow.Budget.Equal(decimal.NewFromInt(600)))
	assert.True(suite.T(), foodRow.Actual.Equal(decimal.NewFromInt(120)), "the child spend must be attributed to the root")
	assert.True(suite.T(), foodRow.Difference.Equal(decimal.NewFromInt(480)))
}

func (suite *TestSuiteStandard) TestReportInvalidMonth() {
	tests := []string{"2024", "2024-1", "January", "2024-01-05"}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/budget/%s", tt), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			r = test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/reports/budget/%s/roots", tt), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestReportOptions() {
	paths := []string{
		"/v1/reports/months",
		"/v1/reports/structure",
		"/v1/reports/budget/2024-01",
		"/v1/reports/budget/2024-01/roots",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com"+path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "GET", r.Header().Get("allow"))
		})
	}
}
