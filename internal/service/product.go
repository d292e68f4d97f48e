package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/store"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/paginate"
)

// ProductService defines the methods for managing products.
type ProductService interface {
	// List returns one page of products joined with their category names.
	// A pageIndex below 1 is clamped to 1.
	List(ctx context.Context, pageIndex, pageSize int) (*paginate.Page[ProductDto], error)

	// FindByID retrieves a single product with its category name.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// IsNameUnique reports whether no product other than excludeID has a
	// case-insensitively equal name. excludeID <= 0 means no exclusion.
	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)

	// Create adds a new product after checking name uniqueness and that the
	// referenced category exists.
	Create(ctx context.Context, dto ProductCreateDto) Result

	// Update modifies an existing product with the same two checks.
	Update(ctx context.Context, id int64, dto ProductCreateDto) Result

	// Delete removes a product. Nothing references products, so no
	// referential guard is needed.
	Delete(ctx context.Context, id int64) Result
}

// ProductDto is the read projection of a product joined with its category's name.
type ProductDto struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// ProductCreateDto carries the writable fields of a product.
type ProductCreateDto struct {
	Name       string `json:"name" validate:"required,max=100"`
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
}

// Products implements ProductService. It needs the category store for the
// foreign-key existence check on writes.
type Products struct {
	repository store.ProductStore
	categories store.CategoryStore
}

// NewProducts creates a new ProductService with the provided stores.
func NewProducts(repo store.ProductStore, categories store.CategoryStore) *Products {
	return &Products{repository: repo, categories: categories}
}

// List returns one page of the product-category projection.
func (s *Products) List(ctx context.Context, pageIndex, pageSize int) (*paginate.Page[ProductDto], error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	products, total, err := s.repository.FindPage(ctx, paginate.Offset(pageIndex, pageSize), int32(pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products page: %w", err)
	}
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = toProductDto(p)
	}
	return paginate.New(dtos, total, pageIndex, pageSize), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Products) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	dto := toProductDto(*product)
	return &dto, nil
}

// IsNameUnique reports whether the name is free, excluding excludeID when positive.
func (s *Products) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	exists, err := s.repository.NameExists(ctx, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check product name uniqueness: %w", err)
	}
	return !exists, nil
}

// Create adds a new product. Uniqueness and the category existence check are
// separate queries before the insert; the store's constraints are the
// backstop for concurrent writers.
func (s *Products) Create(ctx context.Context, dto ProductCreateDto) Result {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return Fail(CodeValidation, "Product name is required.")
	}

	if res, ok := s.checkWrite(ctx, name, 0, dto.CategoryID, "creating"); !ok {
		return res
	}

	if _, err := s.repository.Create(ctx, name, dto.CategoryID); err != nil {
		return s.writeFailure(err, "creating")
	}
	return Ok("Product created.")
}

// Update modifies a product. A missing row surfaces as NotFound from the
// store's update rather than silently no-opping.
func (s *Products) Update(ctx context.Context, id int64, dto ProductCreateDto) Result {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return Fail(CodeValidation, "Product name is required.")
	}

	if res, ok := s.checkWrite(ctx, name, id, dto.CategoryID, "updating"); !ok {
		return res
	}

	if _, err := s.repository.Update(ctx, id, name, dto.CategoryID); err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			return Fail(CodeNotFound, "Product not found.")
		}
		return s.writeFailure(err, "updating")
	}
	return Ok("Product updated.")
}

// Delete removes a product by its ID.
func (s *Products) Delete(ctx context.Context, id int64) Result {
	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			return Fail(CodeNotFound, "Product not found.")
		}
		return Fail(CodePersistence, "Error deleting product: "+err.Error())
	}
	return Ok("Product deleted.")
}

// checkWrite runs the uniqueness and category-existence checks shared by
// Create and Update. The second return value is false when the caller must
// return the Result as-is.
func (s *Products) checkWrite(ctx context.Context, name string, excludeID, categoryID int64, verb string) (Result, bool) {
	exists, err := s.repository.NameExists(ctx, name, excludeID)
	if err != nil {
		return Fail(CodePersistence, "Error "+verb+" product: "+err.Error()), false
	}
	if exists {
		return Fail(CodeDuplicateName, "A product with this name already exists."), false
	}

	categoryExists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return Fail(CodePersistence, "Error "+verb+" product: "+err.Error()), false
	}
	if !categoryExists {
		return Fail(CodeInvalidReference, "Selected category does not exist."), false
	}
	return Result{}, true
}

// writeFailure maps constraint-violation backstops from the store to their
// Result codes; anything else is a persistence failure.
func (s *Products) writeFailure(err error, verb string) Result {
	switch {
	case errors.Is(err, caterrors.ErrDuplicateName):
		return Fail(CodeDuplicateName, "A product with this name already exists.")
	case errors.Is(err, caterrors.ErrInvalidReference):
		return Fail(CodeInvalidReference, "Selected category does not exist.")
	}
	return Fail(CodePersistence, "Error "+verb+" product: "+err.Error())
}

func toProductDto(p store.ProductSummary) ProductDto {
	return ProductDto{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}
