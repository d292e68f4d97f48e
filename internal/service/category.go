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

// CategoryService defines the methods for managing categories.
// It abstracts the underlying business logic and data access.
type CategoryService interface {
	// List returns one page of categories ordered by name ascending.
	// A pageIndex below 1 is clamped to 1.
	List(ctx context.Context, pageIndex, pageSize int) (*paginate.Page[CategoryDto], error)

	// ListAll returns every category ordered by name, for selection controls.
	ListAll(ctx context.Context) ([]CategoryDto, error)

	// FindByID retrieves a single category.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindByID(ctx context.Context, id int64) (*CategoryDto, error)

	// IsNameUnique reports whether no category other than excludeID has a
	// case-insensitively equal name. excludeID <= 0 means no exclusion.
	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)

	// Create adds a new category after checking name uniqueness.
	Create(ctx context.Context, dto CategoryCreateDto) Result

	// Update renames an existing category after checking name uniqueness.
	Update(ctx context.Context, id int64, dto CategoryCreateDto) Result

	// Delete removes a category unless products still reference it.
	Delete(ctx context.Context, id int64) Result
}

// CategoryDto represents the data transfer object for a category.
type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryCreateDto carries the writable fields of a category.
type CategoryCreateDto struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Categories implements CategoryService on top of a CategoryStore.
type Categories struct {
	repository store.CategoryStore
}

// NewCategories creates a new CategoryService with the provided store.
func NewCategories(repo store.CategoryStore) *Categories {
	return &Categories{repository: repo}
}

// List returns one page of categories ordered by name ascending.
func (s *Categories) List(ctx context.Context, pageIndex, pageSize int) (*paginate.Page[CategoryDto], error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	categories, total, err := s.repository.FindPage(ctx, paginate.Offset(pageIndex, pageSize), int32(pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories page: %w", err)
	}
	return paginate.New(toCategoryDtos(categories), total, pageIndex, pageSize), nil
}

// ListAll returns every category ordered by name.
func (s *Categories) ListAll(ctx context.Context) ([]CategoryDto, error) {
	categories, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return toCategoryDtos(categories), nil
}

// FindByID retrieves a category by its ID and returns it as a CategoryDto.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *Categories) FindByID(ctx context.Context, id int64) (*CategoryDto, error) {
	category, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, caterrors.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch category by ID %d: %w", id, err)
	}
	dto := toCategoryDto(*category)
	return &dto, nil
}

// IsNameUnique reports whether the name is free, excluding excludeID when positive.
func (s *Categories) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	exists, err := s.repository.NameExists(ctx, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	return !exists, nil
}

// Create adds a new category after checking name uniqueness. The check and
// the insert are separate queries; the store's unique index is the backstop
// for concurrent writers.
func (s *Categories) Create(ctx context.Context, dto CategoryCreateDto) Result {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return Fail(CodeValidation, "Category name is required.")
	}

	exists, err := s.repository.NameExists(ctx, name, 0)
	if err != nil {
		return Fail(CodePersistence, "Error creating category: "+err.Error())
	}
	if exists {
		return Fail(CodeDuplicateName, "A category with this name already exists.")
	}

	if _, err := s.repository.Create(ctx, name); err != nil {
		if errors.Is(err, caterrors.ErrDuplicateName) {
			return Fail(CodeDuplicateName, "A category with this name already exists.")
		}
		return Fail(CodePersistence, "Error creating category: "+err.Error())
	}
	return Ok("Category created.")
}

// Update renames a category. The existence check is implicit in the store's
// update, which reports ErrCategoryNotFound instead of silently no-opping on
// a missing row.
func (s *Categories) Update(ctx context.Context, id int64, dto CategoryCreateDto) Result {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return Fail(CodeValidation, "Category name is required.")
	}

	exists, err := s.repository.NameExists(ctx, name, id)
	if err != nil {
		return Fail(CodePersistence, "Error updating category: "+err.Error())
	}
	if exists {
		return Fail(CodeDuplicateName, "A category with this name already exists.")
	}

	if _, err := s.repository.Update(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, caterrors.ErrCategoryNotFound):
			return Fail(CodeNotFound, "Category not found.")
		case errors.Is(err, caterrors.ErrDuplicateName):
			return Fail(CodeDuplicateName, "A category with this name already exists.")
		}
		return Fail(CodePersistence, "Error updating category: "+err.Error())
	}
	return Ok("Category updated.")
}

// Delete removes a category after confirming it exists and no products
// reference it. The store's FK constraint is the backstop for a product
// created between the check and the delete.
func (s *Categories) Delete(ctx context.Context, id int64) Result {
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		if errors.Is(err, caterrors.ErrCategoryNotFound) {
			return Fail(CodeNotFound, "Category not found.")
		}
		return Fail(CodePersistence, "Error deleting category: "+err.Error())
	}

	inUse, err := s.repository.HasProducts(ctx, id)
	if err != nil {
		return Fail(CodePersistence, "Error deleting category: "+err.Error())
	}
	if inUse {
		return Fail(CodeCategoryInUse, "Cannot delete category that has associated products.")
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, caterrors.ErrCategoryNotFound):
			return Fail(CodeNotFound, "Category not found.")
		case errors.Is(err, caterrors.ErrCategoryInUse):
			return Fail(CodeCategoryInUse, "Cannot delete category that has associated products.")
		}
		return Fail(CodePersistence, "Error deleting category: "+err.Error())
	}
	return Ok("Category deleted.")
}

func toCategoryDto(c store.Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}

func toCategoryDtos(categories []store.Category) []CategoryDto {
	dtos := make([]CategoryDto, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDto(c)
	}
	return dtos
}
