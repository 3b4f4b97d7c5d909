package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet represents an account holding a running balance, independent of
// categories.
type Wallet struct {
	DefaultModel
	Name           string          `json:"name" gorm:"uniqueIndex" example:"Checking" default:""`            // Name of the wallet
	Currency       string          `json:"currency" example:"EUR" default:""`                                // Optional ISO-4217 currency code, echoed for display only
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:DECIMAL(20,8)" example:"1337.42"`       // Balance of the wallet before the first transaction
	Note           string          `json:"note" example:"Joint account at the local bank" default:""`       // Notes about the wallet
	Archived       bool            `json:"archived" example:"true" default:"false"`                          // Is the wallet archived?
}

func (Wallet) Self() string {
	return "Wallet"
}

// BeforeSave trims whitespace from string fields.
func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Currency = strings.TrimSpace(strings.ToUpper(w.Currency))
	w.Note = strings.TrimSpace(w.Note)

	return nil
}

// Balance returns the initial balance plus the signed sum of all
// transactions of the wallet.
func (w Wallet) Balance(db *gorm.DB) (decimal.Decimal, error) {
	var income, expense decimal.NullDecimal

	err := db.Table("transactions").
		Where(&Transaction{WalletID: w.ID, Kind: KindIncome}).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&income)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing income for wallet %s failed: %w", w.ID, err)
	}

	err = db.Table("transactions").
		Where(&Transaction{WalletID: w.ID, Kind: KindExpense}).
		Where("deleted_at IS NULL").
		Select("SUM(amount)").
		Row().
		Scan(&expense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for wallet %s failed: %w", w.ID, err)
	}

	return w.InitialBalance.Add(income.Decimal).Sub(expense.Decimal), nil
}
