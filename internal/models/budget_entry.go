package models

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetEntry represents the planned expense for one category in one month.
//
// There is at most one entry per (category, month) pair, writes for an
// existing pair replace the previous amount.
type BudgetEntry struct {
	DefaultModel
	CategoryID uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_category_month"` // ID of the category the entry plans for
	Category   Category        `json:"-"`                                                   // The category
	Month      types.Month     `json:"month" gorm:"uniqueIndex:budget_category_month" example:"2024-01"` // The month the entry plans for
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500"`      // The planned amount
}

func (BudgetEntry) Self() string {
	return "Budget Entry"
}

// BeforeSave clamps negative amounts to zero.
func (b *BudgetEntry) BeforeSave(_ *gorm.DB) error {
	if b.Amount.IsNegative() {
		b.Amount = decimal.Zero
	}

	return nil
}

// UpsertBudgetEntry writes a budget entry with upsert-by-key semantics:
// if an entry for the (category, month) pair exists, the amount is
// replaced and exactly one entry remains. A write for a pair whose entry
// was deleted revives that entry.
func UpsertBudgetEntry(db *gorm.DB, entry *BudgetEntry) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
		// The unique index also holds soft-deleted rows, clearing
		// deleted_at on conflict revives them.
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at", "deleted_at"}),
	}).Create(entry).Error
	if err != nil {
		return err
	}

	// Re-read so that callers see the persisted row, not the conflicting
	// insert candidate. First also filters by a non-zero primary key and
	// the candidate carries a fresh one, so the lookup must go through a
	// zero model.
	var persisted BudgetEntry
	err = db.First(&persisted, "category_id = ? AND month = ?", entry.CategoryID, entry.Month).Error
	if err != nil {
		return err
	}

	*entry = persisted
	return nil
}
