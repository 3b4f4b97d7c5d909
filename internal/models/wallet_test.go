package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestWalletTrimWhitespace() {
	wallet := suite.createTestWallet(models.Wallet{
		Name:     " Checking ",
		Currency: " eur ",
		Note:     "  Shared  ",
	})

	assert.Equal(suite.T(), "Checking", wallet.Name)
	assert.Equal(suite.T(), "EUR", wallet.Currency)
	assert.Equal(suite.T(), "Shared", wallet.Note)
}

func (suite *TestSuiteStandard) TestWalletNameNotUnique() {
	_ = suite.createTestWallet(models.Wallet{Name: "Checking"})

	err := models.DB.Create(&models.Wallet{Name: "Checking"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrWalletNameNotUnique)
}

func (suite *TestSuiteStandard) TestWalletBalance() {
	incomeCategory := suite.createTestCategory(models.Category{Name: "Salary", Kind: models.KindIncome})
	expenseCategory := suite.createTestCategory(models.Category{Name: "Food", Kind: models.KindExpense})

	wallet := suite.createTestWallet(models.Wallet{
		InitialBalance: decimal.NewFromInt(100),
	})
	other := suite.createTestWallet(models.Wallet{})

	_ = suite.createTestTransaction(models.Transaction{
		Kind:       models.KindIncome,
		Amount:     decimal.NewFromInt(1000),
		CategoryID: incomeCategory.ID,
		WalletID:   wallet.ID,
	})
	_ = suite.createTestTransaction(models.Transaction{
		Kind:       models.KindExpense,
		Amount:     decimal.NewFromFloat(123.45),
		CategoryID: expenseCategory.ID,
		WalletID:   wallet.ID,
	})

	// Transactions of other wallets must not count
	_ = suite.createTestTransaction(models.Transaction{
		Kind:       models.KindExpense,
		Amount:     decimal.NewFromInt(999),
		CategoryID: expenseCategory.ID,
		WalletID:   other.ID,
	})

	balance, err := wallet.Balance(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(976.55)), "balance is %s, want 976.55", balance)
}

func (suite *TestSuiteStandard) TestWalletBalanceEmpty() {
	wallet := suite.createTestWallet(models.Wallet{
		InitialBalance: decimal.NewFromInt(42),
	})

	balance, err := wallet.Balance(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromInt(42)))
}
