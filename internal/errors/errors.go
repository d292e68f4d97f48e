// Package errors provides sentinel errors shared by the store and service layers.
package errors

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")

	// ErrDuplicateName is returned by stores when a write trips a
	// case-insensitive unique index on the name column.
	ErrDuplicateName = errors.New("name already in use")

	// ErrInvalidReference is returned when a product write names a
	// category that does not exist.
	ErrInvalidReference = errors.New("referenced category does not exist")

	// ErrCategoryInUse is returned when deleting a category that still
	// has products referencing it.
	ErrCategoryInUse = errors.New("category has associated products")
)
