package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{
		Name: "Groceries",
		Kind: models.KindExpense,
		Note: "Everything bought at the supermarket",
	})

	assert.Equal(suite.T(), "Groceries", category.Data.Name)
	assert.NotEqual(suite.T(), uuid.Nil, category.Data.ID)
}

func (suite *TestSuiteStandard) TestCategoriesCreateErrors() {
	parent := createTestCategory(suite.T(), v1.CategoryEditable{Kind: models.KindIncome})
	missing := uuid.New()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2 }`, http.StatusBadRequest},
		{"No body", "", http.StatusBadRequest},
		{"Invalid kind", v1.CategoryEditable{Name: "Broken", Kind: "sideways"}, http.StatusBadRequest},
		{"Parent does not exist", v1.CategoryEditable{Name: "Orphan", Kind: models.KindExpense, ParentID: &missing}, http.StatusBadRequest},
		{"Kind differs from parent", v1.CategoryEditable{Name: "Mismatch", Kind: models.KindExpense, ParentID: &parent.Data.ID}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesDuplicateName() {
	parent := createTestCategory(suite.T(), v1.CategoryEditable{Kind: models.KindExpense})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Takeout", Kind: models.KindExpense, ParentID: &parent.Data.ID})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{
		Name:     "Takeout",
		Kind:     models.KindExpense,
		ParentID: &parent.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Category", c.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID (number)", "23", http.StatusBadRequest},
		{"Invalid ID (string)", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	parent := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Kind: models.KindExpense})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Takeout", Kind: models.KindExpense, ParentID: &parent.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Kind: models.KindIncome})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Leisure time", Kind: models.KindExpense, Note: "Cinema and concerts"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Kind income", "kind=income", 1},
		{"Kind expense", "kind=expense", 3},
		{"Name", "name=Takeout", 1},
		{"Parent", fmt.Sprintf("parent=%s", parent.Data.ID), 1},
		{"Note", "note=Cinema", 1},
		{"Search", "search=cinema", 1},
		{"Glob match", "match=*e*", 2},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=3", 1},
		{"No results", "name=Nonexisting", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Old name"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), map[string]any{
		"name": "New name",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "New name", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestCategoriesUpdateKindMismatch() {
	parent := createTestCategory(suite.T(), v1.CategoryEditable{Kind: models.KindExpense})
	child := createTestCategory(suite.T(), v1.CategoryEditable{
		Kind:     models.KindExpense,
		ParentID: &parent.Data.ID,
	})

	// A child category cannot change its kind away from the parent
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", child.Data.ID), map[string]any{
		"kind": "income",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", child.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var stored v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	assert.Equal(suite.T(), models.KindExpense, stored.Data.Kind)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
