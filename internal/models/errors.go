package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrCategoryNameNotUnique   = errors.New("the category name must be unique for its parent")
	ErrCategoryKindMismatch    = errors.New("the parent category must have the same kind as the category")
	ErrCategoryParentNotFound  = errors.New("the parent category does not exist")
	ErrCategoryParentIsSelf    = errors.New("a category cannot be its own parent")
	ErrWalletNameNotUnique     = errors.New("the wallet name must be unique")
	ErrAmountNegative          = errors.New("the amount must not be negative")
	ErrTransactionKindMismatch = errors.New("the transaction kind must match the kind of its category")
	ErrKindInvalid             = errors.New("the kind must be either income or expense")
)
