package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	ledger_uuid "github.com/pocketledger/backend/internal/uuid"
)

// CategoryEditable represents all user configurable parameters of a
// category.
type CategoryEditable struct {
	Name     string     `json:"name" example:"Groceries" default:""`                              // Name of the category
	Kind     models.Kind `json:"kind" example:"expense"`                                          // income or expense
	ParentID *uuid.UUID `json:"parentId" example:"601b2ee2-a4e0-4640-888c-53f83d7b7a79"`          // ID of the parent category, null for root categories
	Note     string     `json:"note" example:"Everything bought at the supermarket" default:""`   // Notes about the category
	Archived bool       `json:"archived" example:"true" default:"false"`                          // Is the category archived?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:     editable.Name,
		Kind:     editable.Kind,
		ParentID: editable.ParentID,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`  // Data for the category
	Error *string          `json:"error"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`  // List of categories
	Error *string           `json:"error"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name     string           `form:"name" filterField:"false"`   // By name
	Kind     models.Kind      `form:"kind"`                       // By kind
	Parent   ledger_uuid.UUID `form:"parent" filterField:"false"` // By ID of the parent category
	Note     string           `form:"note" filterField:"false"`   // By note
	Archived bool             `form:"archived"`                   // Is the category archived?
	Search   string           `form:"search" filterField:"false"` // By string in name or note
	Match    string           `form:"match" filterField:"false"`  // By glob pattern on the name
	Offset   uint             `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit    int              `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Kind:     f.Kind,
		Archived: f.Archived,
	}
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Category{}, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateCategory creates a new category.
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category := editable.model()

	if err := models.DB.Create(&category).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// GetCategories returns a list of categories filtered by the query
// parameters.
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Parent") {
		q = q.Where("parent_id = ?", filter.Parent.UUID)
	}

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 categories and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	// Glob matching is applied in memory, on the already filtered rows.
	if filter.Match != "" {
		matched := make([]models.Category, 0, len(categories))
		for _, category := range categories {
			if glob.Glob(filter.Match, category.Name) {
				matched = append(matched, category)
			}
		}
		categories = matched
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// GetCategory returns a specific category.
func GetCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// UpdateCategory updates the category with the ID in the URL.
func UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	// Binding over the stored values keeps fields absent from the
	// request unchanged.
	editable := CategoryEditable{
		Name:     category.Name,
		Kind:     category.Kind,
		ParentID: category.ParentID,
		Note:     category.Note,
		Archived: category.Archived,
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category.Name = editable.Name
	category.Kind = editable.Kind
	category.ParentID = editable.ParentID
	category.Note = editable.Note
	category.Archived = editable.Archived

	// Save instead of Updates so that the hooks validate the merged
	// values, not the previously stored ones.
	if err := models.DB.Save(&category).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// DeleteCategory deletes the category with the ID in the URL.
func DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
