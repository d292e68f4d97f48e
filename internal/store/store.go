// Package store provides interfaces and implementations for catalog storage operations.
package store

import "context"

// Category represents a category row.
type Category struct {
	ID   int64
	Name string
}

// Product represents a product row.
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
}

// ProductSummary is the read projection of a product joined with its
// category's name, used for list and detail views.
type ProductSummary struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string
}

// CategoryStore is an interface for category storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type CategoryStore interface {
	// FindByID retrieves a single category by its identifier.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Category, error)

	// FindAll returns every category ordered by name ascending.
	FindAll(ctx context.Context) ([]Category, error)

	// FindPage returns one page of categories ordered by name ascending,
	// together with the total number of categories.
	FindPage(ctx context.Context, offset, limit int32) ([]Category, int64, error)

	// NameExists reports whether a category other than excludeID has a
	// case-insensitively equal name. excludeID <= 0 means no exclusion.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// Exists reports whether a category with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// HasProducts reports whether any product references the category.
	HasProducts(ctx context.Context, id int64) (bool, error)

	// Create adds a new category.
	// Returns ErrDuplicateName if the name is already taken.
	Create(ctx context.Context, name string) (*Category, error)

	// Update renames an existing category.
	// Returns ErrCategoryNotFound if the row is absent and ErrDuplicateName
	// if the new name is already taken.
	Update(ctx context.Context, id int64, name string) (*Category, error)

	// Delete removes a category by its ID.
	// Returns ErrCategoryNotFound if the row is absent and ErrCategoryInUse
	// if products still reference it.
	Delete(ctx context.Context, id int64) error
}

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindByID retrieves a product joined with its category name.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductSummary, error)

	// FindPage returns one page of the product-category join ordered by
	// product name, together with the total number of products.
	FindPage(ctx context.Context, offset, limit int32) ([]ProductSummary, int64, error)

	// NameExists reports whether a product other than excludeID has a
	// case-insensitively equal name. excludeID <= 0 means no exclusion.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// Create adds a new product.
	// Returns ErrDuplicateName or ErrInvalidReference on constraint violations.
	Create(ctx context.Context, name string, categoryID int64) (*Product, error)

	// Update modifies an existing product.
	// Returns ErrProductNotFound if the row is absent, ErrDuplicateName or
	// ErrInvalidReference on constraint violations.
	Update(ctx context.Context, id int64, name string, categoryID int64) (*Product, error)

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if the row is absent.
	Delete(ctx context.Context, id int64) error
}
