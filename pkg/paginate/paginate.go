// Package paginate provides a generic page container for offset-based
// pagination over counted result sets.
package paginate

// Page holds one page of items together with the metadata needed to render
// pagination controls.
type Page[T any] struct {
	Items       []T   `json:"items"`
	PageIndex   int   `json:"page_index"`
	PageSize    int   `json:"page_size"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// New builds a Page from an already-fetched slice and the total row count.
// pageIndex is 1-based and clamped to 1; pageSize must be positive.
// TotalPages is ceil(totalCount/pageSize); an empty result set yields
// TotalPages == 0 with both navigation flags false.
func New[T any](items []T, totalCount int64, pageIndex, pageSize int) *Page[T] {
	if pageIndex < 1 {
		pageIndex = 1
	}
	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrevious: pageIndex > 1,
		HasNext:     pageIndex < totalPages,
	}
}

// Offset returns the 0-based row offset for a 1-based page index.
func Offset(pageIndex, pageSize int) int32 {
	if pageIndex < 1 {
		pageIndex = 1
	}
	return int32((pageIndex - 1) * pageSize)
}
