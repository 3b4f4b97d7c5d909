package report

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/types"
)

// MonthBucket holds the exact income and expense totals of one calendar
// month. Both values are non-negative magnitudes, amounts are tagged by
// kind instead of carrying a sign.
type MonthBucket struct {
	Month   types.Month     `json:"month" example:"2024-01"`  // The month the bucket aggregates
	Income  decimal.Decimal `json:"income" example:"2317.34"` // Sum of all income transactions in the month
	Expense decimal.Decimal `json:"expense" example:"133.70"` // Sum of all expense transactions in the month
}

// DisplayBucket is the integer-rounded view of a MonthBucket for chart
// display. It is derived from the exact bucket, never accumulated
// directly, so no precision is lost in the canonical aggregate.
type DisplayBucket struct {
	Month   types.Month `json:"month" example:"2024-01"` // The month the bucket aggregates
	Income  int64       `json:"income" example:"2317"`   // Income rounded to integer units
	Expense int64       `json:"expense" example:"134"`   // Expenses rounded to integer units
}

// MonthlySeries groups the transactions dated within the range into
// calendar-month buckets, sorted ascending by month.
//
// Accumulation is exact decimal arithmetic: the sum of all bucket incomes
// equals the sum of the amounts of all included income transactions, and
// the same holds for expenses.
func MonthlySeries(transactions []models.Transaction, r Range) []MonthBucket {
	buckets := make(map[types.Month]*MonthBucket)

	for _, transaction := range transactions {
		if !r.Contains(transaction.Date) {
			continue
		}

		month := types.MonthOf(transaction.Date.UTC())
		bucket, ok := buckets[month]
		if !ok {
			bucket = &MonthBucket{
				Month:   month,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			buckets[month] = bucket
		}

		switch transaction.Kind {
		case models.KindIncome:
			bucket.Income = bucket.Income.Add(transaction.Amount)
		case models.KindExpense:
			bucket.Expense = bucket.Expense.Add(transaction.Amount)
		}
	}

	series := make([]MonthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		series = append(series, *bucket)
	}

	slices.SortFunc(series, func(a, b MonthBucket) int {
		if a.Month.Before(b.Month) {
			return -1
		}
		if a.Month.After(b.Month) {
			return 1
		}
		return 0
	})

	return series
}

// DisplaySeries rounds a monthly series to integer units for display.
func DisplaySeries(series []MonthBucket) []DisplayBucket {
	display := make([]DisplayBucket, 0, len(series))

	for _, bucket := range series {
		display = append(display, DisplayBucket{
			Month:   bucket.Month,
			Income:  bucket.Income.Round(0).IntPart(),
			Expense: bucket.Expense.Round(0).IntPart(),
		})
	}

	return display
}
