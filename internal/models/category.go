package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a label for transactions, organized as a forest.
//
// A category with a nil ParentID is a root. Children must have the same
// kind as their parent so that rollup reports stay consistent.
type Category struct {
	DefaultModel
	Name     string     `json:"name" gorm:"uniqueIndex:category_parent_name" example:"Groceries" default:""`      // Name of the category
	Kind     Kind       `json:"kind" example:"expense"`                                                           // Whether transactions in this category are income or expense
	ParentID *uuid.UUID `json:"parentId" gorm:"uniqueIndex:category_parent_name" example:"601b2ee2-a4e0-4640-888c-53f83d7b7a79"` // ID of the parent category, nil for root categories
	Parent   *Category  `json:"-"`                                                                                // The parent category
	Note     string     `json:"note" example:"Everything bought at the supermarket" default:""`                   // Notes about the category
	Archived bool       `json:"archived" example:"true" default:"false"`                                          // Is the category archived?
}

func (Category) Self() string {
	return "Category"
}

// BeforeSave trims whitespace and verifies that the parent exists and has
// the same kind as the category.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if !c.Kind.Valid() {
		return ErrKindInvalid
	}

	if c.ParentID == nil || *c.ParentID == uuid.Nil {
		c.ParentID = nil
		return nil
	}

	if *c.ParentID == c.ID {
		return ErrCategoryParentIsSelf
	}

	var parent Category
	err := tx.First(&parent, "id = ?", *c.ParentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			return ErrCategoryParentNotFound
		}
		return err
	}

	if parent.Kind != c.Kind {
		return ErrCategoryKindMismatch
	}

	return nil
}

// Children returns the direct children of the category.
func (c Category) Children(db *gorm.DB) ([]Category, error) {
	var children []Category

	err := db.Where(&Category{ParentID: &c.ID}).Find(&children).Error
	if err != nil {
		return nil, err
	}

	return children, nil
}
