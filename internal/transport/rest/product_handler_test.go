package rest

import (
	"context"
	"net/http"
	"testing"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/service"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/paginate"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface.
type mockProductService struct {
	page    *paginate.Page[service.ProductDto]
	product *service.ProductDto
	result  service.Result
	error   error
}

func (m *mockProductService) List(_ context.Context, _, _ int) (*paginate.Page[service.ProductDto], error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.page, nil
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) IsNameUnique(_ context.Context, _ string, _ int64) (bool, error) {
	return true, m.error
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) service.Result {
	return m.result
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductCreateDto) service.Result {
	return m.result
}

func (m *mockProductService) Delete(_ context.Context, _ int64) service.Result {
	return m.result
}

func newProductRouter(svc service.ProductService) http.Handler {
	mux := chi.NewRouter()
	NewProductHandler(svc, testLogger()).RegisterRoutes(mux)
	return mux
}

func Test_ProductHandler_List(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - joined projection",
			mockService: mockProductService{
				page: paginate.New([]service.ProductDto{
					{ID: 1, Name: "Hammer", CategoryID: 1, CategoryName: "Tools"},
				}, 1, 1, 10),
			},
			target:       "/api/v1/products",
			expectedCode: http.StatusOK,
			expectedBody: `"category_name":"Tools"`,
		},
		{
			name:         "Error - invalid page_size parameter",
			mockService:  mockProductService{},
			target:       "/api/v1/products?page_size=0",
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid page_size number",
		},
		{
			name:         "Error - service failure",
			mockService:  mockProductService{error: assert.AnError},
			target:       "/api/v1/products",
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Failed to fetch products",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProductRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_ProductHandler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		target       string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 7, Name: "Hammer", CategoryID: 1, CategoryName: "Tools"},
			},
			target:       "/api/v1/products/7",
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Hammer"`,
		},
		{
			name:         "Error - not found",
			mockService:  mockProductService{error: caterrors.ErrProductNotFound},
			target:       "/api/v1/products/42",
			expectedCode: http.StatusNotFound,
			expectedBody: "Product with ID 42 not found",
		},
		{
			name:         "Error - invalid ID",
			mockService:  mockProductService{},
			target:       "/api/v1/products/-1",
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid ID",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProductRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_ProductHandler_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  mockProductService{result: service.Ok("Product created.")},
			body:         `{"name":"Hammer","category_id":1}`,
			expectedCode: http.StatusCreated,
			expectedBody: `"success":true`,
		},
		{
			name:         "Conflict - duplicate name",
			mockService:  mockProductService{result: service.Fail(service.CodeDuplicateName, "A product with this name already exists.")},
			body:         `{"name":"hammer","category_id":1}`,
			expectedCode: http.StatusConflict,
			expectedBody: "already exists",
		},
		{
			name:         "Unprocessable - invalid category reference",
			mockService:  mockProductService{result: service.Fail(service.CodeInvalidReference, "Selected category does not exist.")},
			body:         `{"name":"Saw","category_id":99}`,
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "does not exist",
		},
		{
			name:         "Bad request - missing category",
			mockService:  mockProductService{},
			body:         `{"name":"Hammer"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: "validation_errors",
		},
		{
			name:         "Bad request - malformed body",
			mockService:  mockProductService{},
			body:         `{"name"`,
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid request body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProductRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodPost, "/api/v1/products", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}
}

func Test_ProductHandler_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
	}{
		{
			name:         "Success - product updated",
			mockService:  mockProductService{result: service.Ok("Product updated.")},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Not found",
			mockService:  mockProductService{result: service.Fail(service.CodeNotFound, "Product not found.")},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Unprocessable - invalid category reference",
			mockService:  mockProductService{result: service.Fail(service.CodeInvalidReference, "Selected category does not exist.")},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProductRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodPut, "/api/v1/products/1", `{"name":"Hammer","category_id":2}`)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_ProductHandler_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{result: service.Ok("Product deleted.")},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Not found",
			mockService:  mockProductService{result: service.Fail(service.CodeNotFound, "Product not found.")},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProductRouter(&tc.mockService)
			rec := doRequest(t, router, http.MethodDelete, "/api/v1/products/1", "")
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
