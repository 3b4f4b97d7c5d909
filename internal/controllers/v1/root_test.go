package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.V1Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "/v1/categories", response.Links.Categories)
	assert.Equal(suite.T(), "/v1/reports", response.Links.Reports)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCleanup() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	wallet := createTestWallet(suite.T(), v1.WalletEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: category.Data.ID,
		WalletID:   wallet.Data.ID,
	})
	_ = createTestBudgetEntry(suite.T(), v1.BudgetEntryEditable{CategoryID: category.Data.ID})

	tests := []string{"/v1/categories", "/v1/wallets", "/v1/transactions", "/v1/budgets"}

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// No resources may exist after cleanup
	for _, path := range tests {
		suite.T().Run(path, func(t *testing.T) {
			re := test.Request(t, http.MethodGet, "http://example.com"+path, "")
			test.AssertHTTPStatus(t, &re, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &re, &response)
			assert.Empty(t, response.Data, "%s is not empty after cleanup", path)
		})
	}

	// The database itself must also be empty
	var count int64
	models.DB.Unscoped().Model(&models.Category{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestCleanupWrongConfirmation() {
	tests := []string{"confirm=yes", "confirm=", ""}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, "http://example.com/v1?"+tt, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
