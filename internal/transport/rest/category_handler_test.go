package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/service"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/paginate"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockCategoryService is a mock implementation of the CategoryService interface.
type mockCategoryService struct {
	page       *paginate.Page[service.CategoryDto]
	categories []service.CategoryDto
	category   *service.CategoryDto
	result     service.Result
	error      error
}

func (m *mockCategoryService) List(_ context.Context, _, _ int) (*paginate.Page[service.CategoryDto], error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.page, nil
}

func (m *mockCategoryService) ListAll(_ context.Context) ([]service.CategoryDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.categories, nil
}

func (m *mockCategoryService) FindByID(_ context.Context, _ int64) (*service.CategoryDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.category, nil
}

func (m *mockCategoryService) IsNameUnique(_ context.Context, _ string, _ int64) (bool, error) {
	return true, m.error
}

func (m *mockCategoryService) Create(_ context.Context, _ service.CategoryCreateDto) service.Result {
	return m.result
}

func (m *mockCategoryService) Update(_ context.Context, _ int64, _ service.CategoryCreateDto) service.Result {
	return m.result
}

func (m *mockCategoryService) Delete(_ context.Context, _ int64) service.Result {
	return m.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCategoryRouter(svc service.CategoryService) http.Handler {
	mux := chi.NewRouter()
	NewCategoryHandler(svc, testLogger()).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func Test_CategoryHandler_List(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCategoryService
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - one page",
			mockService: mockCategoryService{
				page: paginate.New([]service.CategoryDto{{ID: 1, Name: "Tools"}}, 1, 1, 10),
			},
			target:       "/api/v1/categories?page=1&page_size=10",
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Tools"`,
		},
		{
			name:         "Success - default paging",
			mockService:  mockCategoryService{page: paginate.New([]service.CategoryDto{}, 0, 1, 10)},
			target:       "/api/v1/categories",
			expectedCode: http.StatusOK,
			expectedBody: `"total_pages":0`,
		},
		{
			name:         "Error - invalid page parameter",
			mockService:  mockCategoryService{},
			target:       "/api/v1/categories?page=abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid page number",
		},
		{
			name:         "Error - service failure",
			mockService:  mockCategoryService{error: assert.AnError},
			target:       "/api/v1/categories",
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Failed to fetch categories",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCategoryRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_CategoryHandler_ListAll(t *testing.T) {
	router := newCategoryRouter(&mockCategoryService{
		categories: []service.CategoryDto{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Garden"}},
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/categories/all", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Tools"`)
	assert.Contains(t, rec.Body.String(), `"name":"Garden"`)
}

func Test_CategoryHandler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCategoryService
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - category found",
			mockService:  mockCategoryService{category: &service.CategoryDto{ID: 1, Name: "Tools"}},
			target:       "/api/v1/categories/1",
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Tools"`,
		},
		{
			name:         "Error - not found",
			mockService:  mockCategoryService{error: caterrors.ErrCategoryNotFound},
			target:       "/api/v1/categories/42",
			expectedCode: http.StatusNotFound,
			expectedBody: "Category with ID 42 not found",
		},
		{
			name:         "Error - invalid ID",
			mockService:  mockCategoryService{},
			target:       "/api/v1/categories/abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid ID",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCategoryRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_CategoryHandler_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCategoryService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - category created",
			mockService:  mockCategoryService{result: service.Ok("Category created.")},
			body:         `{"name":"Tools"}`,
			expectedCode: http.StatusCreated,
			expectedBody: `"success":true`,
		},
		{
			name:         "Conflict - duplicate name",
			mockService:  mockCategoryService{result: service.Fail(service.CodeDuplicateName, "A category with this name already exists.")},
			body:         `{"name":"Tools"}`,
			expectedCode: http.StatusConflict,
			expectedBody: "already exists",
		},
		{
			name:         "Bad request - missing name",
			mockService:  mockCategoryService{},
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: "validation_errors",
		},
		{
			name:         "Bad request - name too long",
			mockService:  mockCategoryService{},
			body:         `{"name":"` + strings.Repeat("x", 101) + `"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: "validation_errors",
		},
		{
			name:         "Bad request - malformed body",
			mockService:  mockCategoryService{},
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid request body",
		},
		{
			name:         "Error - persistence failure",
			mockService:  mockCategoryService{result: service.Fail(service.CodePersistence, "Error creating category: boom")},
			body:         `{"name":"Tools"}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCategoryRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodPost, "/api/v1/categories", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_CategoryHandler_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCategoryService
		target       string
		body         string
		expectedCode int
	}{
		{
			name:         "Success - category updated",
			mockService:  mockCategoryService{result: service.Ok("Category updated.")},
			target:       "/api/v1/categories/1",
			body:         `{"name":"Hardware"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Not found",
			mockService:  mockCategoryService{result: service.Fail(service.CodeNotFound, "Category not found.")},
			target:       "/api/v1/categories/99",
			body:         `{"name":"Hardware"}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Conflict - duplicate name",
			mockService:  mockCategoryService{result: service.Fail(service.CodeDuplicateName, "A category with this name already exists.")},
			target:       "/api/v1/categories/1",
			body:         `{"name":"Garden"}`,
			expectedCode: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCategoryRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodPut, tc.target, tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_CategoryHandler_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockCategoryService
		expectedCode int
	}{
		{
			name:         "Success - category deleted",
			mockService:  mockCategoryService{result: service.Ok("Category deleted.")},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Not found",
			mockService:  mockCategoryService{result: service.Fail(service.CodeNotFound, "Category not found.")},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Conflict - category in use",
			mockService:  mockCategoryService{result: service.Fail(service.CodeCategoryInUse, "Cannot delete category that has associated products.")},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCategoryRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodDelete, "/api/v1/categories/1", "")
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
