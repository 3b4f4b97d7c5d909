package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// WalletEditable represents all user configurable parameters of a wallet.
type WalletEditable struct {
	Name           string          `json:"name" example:"Checking" default:""`                         // Name of the wallet
	Currency       string          `json:"currency" example:"EUR" default:""`                          // Optional ISO-4217 currency code
	InitialBalance decimal.Decimal `json:"initialBalance" example:"1337.42" default:"0"`               // Balance before the first transaction
	Note           string          `json:"note" example:"Joint account at the local bank" default:""`  // Notes about the wallet
	Archived       bool            `json:"archived" example:"true" default:"false"`                    // Is the wallet archived?
}

func (editable WalletEditable) model() models.Wallet {
	return models.Wallet{
		Name:           editable.Name,
		Currency:       editable.Currency,
		InitialBalance: editable.InitialBalance,
		Note:           editable.Note,
		Archived:       editable.Archived,
	}
}

// Wallet is the API representation of a wallet, adding the computed
// balance to the model.
type Wallet struct {
	models.Wallet
	Balance decimal.Decimal `json:"balance" example:"1437.42"` // Initial balance plus the signed sum of all transactions
}

func newWallet(model models.Wallet) (Wallet, error) {
	balance, err := model.Balance(models.DB)
	if err != nil {
		return Wallet{}, err
	}

	return Wallet{
		Wallet:  model,
		Balance: balance,
	}, nil
}

type WalletResponse struct {
	Data  *Wallet `json:"data"`  // Data for the wallet
	Error *string `json:"error"` // The error, if any occurred
}

type WalletListResponse struct {
	Data  []Wallet `json:"data"`  // List of wallets
	Error *string  `json:"error"` // The error, if any occurred
}

type WalletQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Currency string `form:"currency"`                   // By currency code
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the wallet archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first wallet returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of wallets to return. Defaults to 50.
}

func (f WalletQueryFilter) model() models.Wallet {
	return models.Wallet{
		Currency: f.Currency,
		Archived: f.Archived,
	}
}

// RegisterWalletRoutes registers the routes for wallets with
// the RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsWalletList)
		r.GET("", GetWallets)
		r.POST("", CreateWallet)
	}

	{
		r.OPTIONS("/:id", OptionsWalletDetail)
		r.GET("/:id", GetWallet)
		r.PATCH("/:id", UpdateWallet)
		r.DELETE("/:id", DeleteWallet)
	}
}

func OptionsWalletList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsWalletDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Wallet{}, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateWallet creates a new wallet.
func CreateWallet(c *gin.Context) {
	var editable WalletEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	wallet := editable.model()

	if err := models.DB.Create(&wallet).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	data, err := newWallet(wallet)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, WalletResponse{Data: &data})
}

// GetWallets returns a list of wallets filtered by the query parameters.
func GetWallets(c *gin.Context) {
	var filter WalletQueryFilter
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var wallets []models.Wallet
	if err := q.Find(&wallets).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), WalletListResponse{Error: &e})
		return
	}

	data := make([]Wallet, 0, len(wallets))
	for _, wallet := range wallets {
		apiResource, err := newWallet(wallet)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), WalletListResponse{Error: &e})
			return
		}

		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, WalletListResponse{Data: data})
}

// GetWallet returns a specific wallet with its computed balance.
func GetWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	var wallet models.Wallet
	if err := models.DB.First(&wallet, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	data, err := newWallet(wallet)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// UpdateWallet updates the wallet with the ID in the URL.
func UpdateWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	var wallet models.Wallet
	if err := models.DB.First(&wallet, uri.ID.UUID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	// Binding over the stored values keeps fields absent from the
	// request unchanged.
	editable := WalletEditable{
		Name:           wallet.Name,
		Currency:       wallet.Currency,
		InitialBalance: wallet.InitialBalance,
		Note:           wallet.Note,
		Archived:       wallet.Archived,
	}

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	wallet.Name = editable.Name
	wallet.Currency = editable.Currency
	wallet.InitialBalance = editable.InitialBalance
	wallet.Note = editable.Note
	wallet.Archived = editable.Archived

	// Save instead of Updates so that the hooks validate the merged
	// values, not the previously stored ones.
	if err := models.DB.Save(&wallet).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	data, err := newWallet(wallet)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// DeleteWallet deletes the wallet with the ID in the URL.
func DeleteWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var wallet models.Wallet
	if err := models.DB.First(&wallet, uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&wallet).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
