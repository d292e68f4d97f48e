package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
)

// Memory is an in-memory implementation of CategoryStore and ProductStore
// behind a single mutex, honoring the same uniqueness and referential
// contracts as the PostgreSQL stores. Used by unit tests and local runs
// without a database.
type Memory struct {
	mu             sync.RWMutex
	categories     map[int64]Category
	products       map[int64]Product
	nextCategoryID int64
	nextProductID  int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories:     make(map[int64]Category),
		products:       make(map[int64]Product),
		nextCategoryID: 1,
		nextProductID:  1,
	}
}

// Categories returns the store's CategoryStore view.
func (m *Memory) Categories() CategoryStore { return (*memoryCategories)(m) }

// Products returns the store's ProductStore view.
func (m *Memory) Products() ProductStore { return (*memoryProducts)(m) }

type memoryCategories Memory

func (s *memoryCategories) FindByID(_ context.Context, id int64) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, caterrors.ErrCategoryNotFound
	}
	return &c, nil
}

func (s *memoryCategories) FindAll(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedCategories(), nil
}

func (s *memoryCategories) FindPage(_ context.Context, offset, limit int32) ([]Category, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedCategories()
	total := int64(len(all))
	return pageSlice(all, offset, limit), total, nil
}

func (s *memoryCategories) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoryNameTaken(name, excludeID), nil
}

func (s *memoryCategories) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.categories[id]
	return ok, nil
}

func (s *memoryCategories) HasProducts(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.CategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryCategories) Create(_ context.Context, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryNameTaken(name, 0) {
		return nil, caterrors.ErrDuplicateName
	}
	c := Category{ID: s.nextCategoryID, Name: name}
	s.nextCategoryID++
	s.categories[c.ID] = c
	return &c, nil
}

func (s *memoryCategories) Update(_ context.Context, id int64, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return nil, caterrors.ErrCategoryNotFound
	}
	if s.categoryNameTaken(name, id) {
		return nil, caterrors.ErrDuplicateName
	}
	c := Category{ID: id, Name: name}
	s.categories[id] = c
	return &c, nil
}

func (s *memoryCategories) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return caterrors.ErrCategoryNotFound
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return caterrors.ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *memoryCategories) sortedCategories() []Category {
	list := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (s *memoryCategories) categoryNameTaken(name string, excludeID int64) bool {
	for _, c := range s.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

type memoryProducts Memory

func (s *memoryProducts) FindByID(_ context.Context, id int64) (*ProductSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, caterrors.ErrProductNotFound
	}
	summary := s.toSummary(p)
	return &summary, nil
}

func (s *memoryProducts) FindPage(_ context.Context, offset, limit int32) ([]ProductSummary, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]ProductSummary, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, s.toSummary(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	return pageSlice(all, offset, limit), total, nil
}

func (s *memoryProducts) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryProducts) Create(_ context.Context, name string, categoryID int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Name, name) {
			return nil, caterrors.ErrDuplicateName
		}
	}
	if _, ok := s.categories[categoryID]; !ok {
		return nil, caterrors.ErrInvalidReference
	}
	p := Product{ID: s.nextProductID, Name: name, CategoryID: categoryID}
	s.nextProductID++
	s.products[p.ID] = p
	return &p, nil
}

func (s *memoryProducts) Update(_ context.Context, id int64, name string, categoryID int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return nil, caterrors.ErrProductNotFound
	}
	for _, p := range s.products {
		if p.ID != id && strings.EqualFold(p.Name, name) {
			return nil, caterrors.ErrDuplicateName
		}
	}
	if _, ok := s.categories[categoryID]; !ok {
		return nil, caterrors.ErrInvalidReference
	}
	p := Product{ID: id, Name: name, CategoryID: categoryID}
	s.products[id] = p
	return &p, nil
}

func (s *memoryProducts) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return caterrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memoryProducts) toSummary(p Product) ProductSummary {
	return ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: s.categories[p.CategoryID].Name,
	}
}

func pageSlice[T any](all []T, offset, limit int32) []T {
	start := int(offset)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(limit)
	if end > len(all) {
		end = len(all)
	}
	return append([]T(nil), all[start:end]...)
}
