package report

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var oneHundred = decimal.NewFromInt(100)

// StructureRow is one category's share of the total expenses in a range.
type StructureRow struct {
	CategoryName string          `json:"categoryName" example:"Groceries"` // Name of the category, "Unknown" for stale references
	Amount       decimal.Decimal `json:"amount" example:"120"`             // Summed expenses for the category
	Share        int64           `json:"share" example:"42"`               // Integer-rounded percentage of the total, 0-100
}

// ExpenseStructure computes the proportional breakdown of expenses by
// category name for the transactions dated within the range, sorted by
// amount descending with the name as tiebreak.
//
// Grouping is by name: transactions referencing a category missing from
// the snapshot collapse into a single UnknownCategory row. If there are no
// expenses in the range the result is empty.
//
// Shares are rounded per row and are not guaranteed to sum to exactly 100.
func ExpenseStructure(transactions []models.Transaction, categories []models.Category, r Range) []StructureRow {
	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	amounts := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, transaction := range transactions {
		if transaction.Kind != models.KindExpense || !r.Contains(transaction.Date) {
			continue
		}

		name, ok := names[transaction.CategoryID]
		if !ok {
			name = UnknownCategory
		}

		amounts[name] = amounts[name].Add(transaction.Amount)
		total = total.Add(transaction.Amount)
	}

	if total.IsZero() {
		return []StructureRow{}
	}

	rows := make([]StructureRow, 0, len(amounts))
	for name, amount := range amounts {
		rows = append(rows, StructureRow{
			CategoryName: name,
			Amount:       amount,
			Share:        amount.Mul(oneHundred).Div(total).Round(0).IntPart(),
		})
	}

	slices.SortFunc(rows, func(a, b StructureRow) int {
		if cmp := b.Amount.Cmp(a.Amount); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.CategoryName, b.CategoryName)
	})

	return rows
}
