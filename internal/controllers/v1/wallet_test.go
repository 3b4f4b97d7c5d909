package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) TestWalletsCreate() {
	wallet := createTestWallet(suite.T(), v1.WalletEditable{
		Name:           "Checking",
		Currency:       "eur",
		InitialBalance: decimal.NewFromInt(100),
	})

	assert.Equal(suite.T(), "Checking", wallet.Data.Name)
	assert.Equal(suite.T(), "EUR", wallet.Data.Currency, "currency codes are normalized to upper case")
	assert.True(suite.T(), wallet.Data.Balance.Equal(decimal.NewFromInt(100)), "the balance of a new wallet is the initial balance")
}

func (suite *TestSuiteStandard) TestWalletsDuplicateName() {
	_ = createTestWallet(suite.T(), v1.WalletEditable{Name: "Checking"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/wallets", v1.WalletEditable{Name: "Checking"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrWalletNameNotUnique.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestWalletsBalance() {
	wallet := createTestWallet(suite.T(), v1.WalletEditable{InitialBalance: decimal.NewFromInt(100)})
	incomeCategory := createTestCategory(suite.T(), v1.CategoryEditable{Kind: models.KindIncome})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:       models.KindIncome,
		Amount:     decimal.NewFromInt(1000),
		CategoryID: incomeCategory.Data.ID,
		WalletID:   wallet.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Kind:     models.KindExpense,
		Amount:   decimal.NewFromFloat(123.45),
		WalletID: wallet.Data.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", wallet.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(976.55)), "balance is %s, want 976.55", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestWalletsGetFiltered() {
	_ = createTestWallet(suite.T(), v1.WalletEditable{Name: "Checking", Currency: "EUR"})
	_ = createTestWallet(suite.T(), v1.WalletEditable{Name: "Savings", Currency: "EUR", Note: "Rainy day fund"})
	_ = createTestWallet(suite.T(), v1.WalletEditable{Name: "Cash", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Currency", "currency=EUR", 2},
		{"Name", "name=Checking", 1},
		{"Note", "note=Rainy", 1},
		{"Archived", "archived=true", 1},
		{"Search", "search=fund", 1},
		{"All", "", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.WalletListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestWalletsUpdate() {
	wallet := createTestWallet(suite.T(), v1.WalletEditable{Name: "Old name"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/wallets/%s", wallet.Data.ID), map[string]any{
		"name": "New name",
		"note": "Updated",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "New name", updated.Data.Name)
	assert.Equal(suite.T(), "Updated", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestWalletsUpdateCurrency() {
	wallet := createTestWallet(suite.T(), v1.WalletEditable{Currency: "EUR"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/wallets/%s", wallet.Data.ID), map[string]any{
		"currency": "usd",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// The update runs the same normalization as the create
	var updated v1.WalletResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "USD", updated.Data.Currency)
}

func (suite *TestSuiteStandard) TestWalletsDelete() {
	wallet := createTestWallet(suite.T(), v1.WalletEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/wallets/%s", wallet.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", wallet.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWalletsGetNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/wallets/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
