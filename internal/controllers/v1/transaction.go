package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	ledger_uuid "github.com/pocketledger/backend/internal/uuid"
)

// TransactionEditable represents all user configurable parameters of a
// transaction.
type TransactionEditable struct {
	Date       time.Time       `json:"date" example:"2024-01-05T00:00:00Z"`                              // Day the transaction took place, defaults to now
	Kind       models.Kind     `json:"kind" example:"expense"`                                           // income or expense
	Amount     decimal.Decimal `json:"amount" example:"14.37" default:"0"`                               // The non-negative amount
	CategoryID uuid.UUID       `json:"categoryId" example:"dd09bd8e-d43b-4ae4-a089-ae2b5cb38e55"`        // ID of the category
	WalletID   uuid.UUID       `json:"walletId" example:"047b5c50-0e46-4604-a4ba-9bfe6f8935fa"`          // ID of the wallet
	Note       string          `json:"note" example:"Cheese and wine" default:""`                        // Notes about the transaction
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:       editable.Date,
		Kind:       editable.Kind,
		Amount:     editable.Amount,
		CategoryID: editable.CategoryID,
		WalletID:   editable.WalletID,
		Note:       editable.Note,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`  // Data for the transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`  // List of transactions
	Error *string              `json:"error"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Kind     models.Kind      `form:"kind"`                         // By kind
	Category ledger_uuid.UUID `form:"category" filterField:"false"` // By ID of the category
	Wallet   ledger_uuid.UUID `form:"wallet" filterField:"false"`   // By ID of the wallet
	Note     string           `form:"note" filterField:"false"`     // By note
	Match    string           `form:"match" filterField:"false"`    // By glob pattern on the note
	From     time.Time        `form:"from" filterField:"false" time_format:"2006-01-02"` // Only transactions on or after this date
	To       time.Time        `form:"to" filterField:"false" time_format:"2006-01-02"`   // Only transactions on or before this date
	Offset   uint             `form:"offset" filterField:"false"`   // The offset of the first transaction returned. Defaults to 0.
	Limit    int              `form:"limit" filterField:"false"`    // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		Kind: f.Kind,
	}
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Transaction{}, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateTransaction creates a new transaction.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model()

	if err := models.DB.Create(&transaction).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransactions returns a list of transactions filtered by the query
// parameters, sorted by date descending with the insertion order as
// stable tiebreak.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("date(date) DESC, created_at ASC").
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Category") {
		q = q.Where("category_id = ?", filter.Category.UUID)
	}

	if slices.Contains(setFields, "Wallet") {
		q = q.Where("wallet_id = ?", filter.Wallet.UUID)
	}

	if !filter.From.IsZero() {
		q = q.Where("date(date) >= date(?)", filter.From)
	}

	if !filter.To.IsZero() {
		q = q.Where("date(date) <= date(?)", filter.To)
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", "%"+filter.Note+"%")
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	// Glob matching is applied in memory, on the already filtered rows.
	if filter.Match != "" {
		matched := make([]models.Transaction, 0, len(transactions))
		for _, transaction := range transactions {
			if glob.Glob(filter.Match, transaction.Note) {
				matched = append(matched, transaction)
			}
		}
		transactions = matched
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// UpdateTransaction updates the transaction with the ID in the URL.
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	// Binding over the stored values keeps fields absent from the
	// request unchanged.
	editable := TransactionEditable{
		Date:       transaction.Date,
		Kind:       transaction.Kind,
		Amount:     transaction.Amount,
		CategoryID: transaction.CategoryID,
		WalletID:   transaction.WalletID,
		Note:       transaction.Note,
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction.Date = editable.Date
	transaction.Kind = editable.Kind
	transaction.Amount = editable.Amount
	transaction.CategoryID = editable.CategoryID
	transaction.WalletID = editable.WalletID
	transaction.Note = editable.Note

	// Save instead of Updates so that the hooks validate the merged
	// values, not the previously stored ones.
	if err := models.DB.Save(&transaction).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// DeleteTransaction deletes the transaction with the ID in the URL.
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
