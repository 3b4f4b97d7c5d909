// Package v1 implements the v1 HTTP API of the ledger.
package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	ledger_uuid "github.com/pocketledger/backend/internal/uuid"
)

type URIID struct {
	ID ledger_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	Month string `uri:"month" binding:"required" example:"2024-01"` // Year and month in YYYY-MM format
}

// stringFilters applies the name, note and search filters to a gorm query.
//
// An explicitly empty name or note filters for the empty value, search
// matches a substring in either field.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}
