package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single income or expense posting against a
// category and a wallet.
//
// Amounts are non-negative magnitudes, the direction is carried by Kind.
type Transaction struct {
	DefaultModel
	Date       time.Time       `json:"date" example:"2024-01-05T00:00:00Z"`                       // Day the transaction took place
	Kind       Kind            `json:"kind" example:"expense"`                                    // Whether money came in or went out
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.37"`          // The non-negative amount
	CategoryID uuid.UUID       `json:"categoryId" example:"dd09bd8e-d43b-4ae4-a089-ae2b5cb38e55"` // ID of the category
	Category   Category        `json:"-"`                                                         // The category
	WalletID   uuid.UUID       `json:"walletId"`                                                  // ID of the wallet
	Wallet     Wallet          `json:"-"`                                                         // The wallet
	Note       string          `json:"note" example:"Cheese and wine" default:""`                 // Notes about the transaction
}

func (Transaction) Self() string {
	return "Transaction"
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - sets the timezone for the Date to UTC, defaulting to now
//   - rejects negative amounts
//   - verifies that the kind matches the kind of the category
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if !t.Kind.Valid() {
		return ErrKindInvalid
	}

	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	category := t.Category
	if category.ID == uuid.Nil {
		err = tx.First(&category, "id = ?", t.CategoryID).Error
		if err != nil {
			return err
		}
	}

	if category.Kind != t.Kind {
		return ErrTransactionKindMismatch
	}

	return nil
}
