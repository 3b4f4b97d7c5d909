package report

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetRow is the plan/actual comparison for one category in one month.
// All values are rounded to 2 fraction digits for display consistency.
type BudgetRow struct {
	CategoryID   uuid.UUID       `json:"categoryId"`                       // ID of the category
	CategoryName string          `json:"categoryName" example:"Groceries"` // Name of the category, "Unknown" for stale references
	Budget       decimal.Decimal `json:"budget" example:"500"`             // The planned amount
	Actual       decimal.Decimal `json:"actual" example:"423.77"`          // The amount actually spent
	Difference   decimal.Decimal `json:"difference" example:"76.23"`       // Budget minus actual
}

// BudgetReport is the leaf-granularity plan/actual comparison for a month.
type BudgetReport struct {
	Month  types.Month `json:"month" example:"2024-01"` // The month the report covers
	Rows   []BudgetRow `json:"rows"`                    // One row per category with a plan or spend
	Totals BudgetRow   `json:"totals"`                  // Sums over all rows
}

// BuildBudgetReport joins the budget entries for the month against the
// actual expense transactions dated within that calendar month.
//
// A category appears as a row iff it has a budget entry for the month or
// actual spend within it, rows where both values are zero carry no
// information and are omitted. Row values are rounded to 2 fraction
// digits. The totals are summed over the exact values and rounded once:
// rounding before summing can drift by a cent, so the sum-then-round order
// is part of the contract.
func BuildBudgetReport(transactions []models.Transaction, categories []models.Category, budgets []models.BudgetEntry, month types.Month) BudgetReport {
	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	// Last write wins if the input violates the one-entry-per-key
	// invariant, mirroring the upsert semantics of the store.
	planned := make(map[uuid.UUID]decimal.Decimal)
	for _, entry := range budgets {
		if !entry.Month.Equal(month) {
			continue
		}

		planned[entry.CategoryID] = entry.Amount
	}

	actual := make(map[uuid.UUID]decimal.Decimal)
	for _, transaction := range transactions {
		if transaction.Kind != models.KindExpense || !month.Contains(transaction.Date.UTC()) {
			continue
		}

		actual[transaction.CategoryID] = actual[transaction.CategoryID].Add(transaction.Amount)
	}

	ids := make(map[uuid.UUID]bool, len(planned)+len(actual))
	for id := range planned {
		ids[id] = true
	}
	for id := range actual {
		ids[id] = true
	}

	rows := make([]BudgetRow, 0, len(ids))
	totalBudget, totalActual, totalDifference := decimal.Zero, decimal.Zero, decimal.Zero

	for id := range ids {
		budget := planned[id]
		spent := actual[id]

		if budget.IsZero() && spent.IsZero() {
			continue
		}

		totalBudget = totalBudget.Add(budget)
		totalActual = totalActual.Add(spent)
		totalDifference = totalDifference.Add(budget.Sub(spent))

		name, ok := names[id]
		if !ok {
			name = UnknownCategory
		}

		rows = append(rows, BudgetRow{
			CategoryID:   id,
			CategoryName: name,
			Budget:       budget.Round(2),
			Actual:       spent.Round(2),
			Difference:   budget.Sub(spent).Round(2),
		})
	}

	slices.SortFunc(rows, func(a, b BudgetRow) int {
		if cmp := strings.Compare(a.CategoryName, b.CategoryName); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.CategoryID.String(), b.CategoryID.String())
	})

	return BudgetReport{
		Month: month,
		Rows:  rows,
		Totals: BudgetRow{
			CategoryName: "Total",
			Budget:       totalBudget.Round(2),
			Actual:       totalActual.Round(2),
			Difference:   totalDifference.Round(2),
		},
	}
}

// ActualByRootForMonth attributes every transaction dated in the month to
// the root of its category and sums the absolute amounts per root.
//
// Amounts are taken by absolute value regardless of the kind tag.
// Unknown category references become their own root. A corrupted
// hierarchy fails the whole call.
func ActualByRootForMonth(transactions []models.Transaction, resolver *Resolver, month types.Month) (map[uuid.UUID]decimal.Decimal, error) {
	actual := make(map[uuid.UUID]decimal.Decimal)

	for _, transaction := range transactions {
		if !month.Contains(transaction.Date.UTC()) {
			continue
		}

		root, err := resolver.RootOf(transaction.CategoryID)
		if err != nil {
			return nil, err
		}

		actual[root] = actual[root].Add(transaction.Amount.Abs())
	}

	return actual, nil
}

// BudgetByRootForMonth attributes every budget entry for the month to the
// root of its category and sums the amounts per root, clamping negative
// amounts to zero.
func BudgetByRootForMonth(budgets []models.BudgetEntry, resolver *Resolver, month types.Month) (map[uuid.UUID]decimal.Decimal, error) {
	planned := make(map[uuid.UUID]decimal.Decimal)

	for _, entry := range budgets {
		if !entry.Month.Equal(month) {
			continue
		}

		root, err := resolver.RootOf(entry.CategoryID)
		if err != nil {
			return nil, err
		}

		amount := entry.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		planned[root] = planned[root].Add(amount)
	}

	return planned, nil
}
