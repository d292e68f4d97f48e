package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	caterrors "github.com/ankitjagtap00/Machine-test-ProductCat/internal/errors"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/service"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ProductHandler serves the product routes.
type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler with the provided service.
func NewProductHandler(service service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest.products"),
	}
}

// RegisterRoutes registers the HTTP routes for product operations.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// List returns one page of products joined with their category names.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	page, size, ok := parsePaging(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list products", "page", page, "page_size", size)
	list, err := h.service.List(r.Context(), page, size)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	dto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}
	res := h.service.Create(r.Context(), dto)
	if res.Success {
		mLogger.InfoContext(r.Context(), "Product created successfully", "Name", dto.Name, "CategoryID", dto.CategoryID)
	} else {
		mLogger.WarnContext(r.Context(), "Product creation failed", "Name", dto.Name, "code", res.Code, "message", res.Message)
	}
	respondResult(w, mLogger, http.StatusCreated, res)
}

// Update modifies an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}
	res := h.service.Update(r.Context(), id, dto)
	if res.Success {
		mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", id, "Name", dto.Name)
	} else {
		mLogger.WarnContext(r.Context(), "Product update failed", "ID", id, "code", res.Code, "message", res.Message)
	}
	respondResult(w, mLogger, http.StatusOK, res)
}

// DeleteByID deletes a product by its ID.
func (h *ProductHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	res := h.service.Delete(r.Context(), id)
	if !res.Success {
		mLogger.WarnContext(r.Context(), "Product deletion failed", "ID", id, "code", res.Code, "message", res.Message)
		respondResult(w, mLogger, http.StatusOK, res)
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeProduct decodes and validates a product payload.
// Returns false after writing the error response when the payload is invalid.
func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (service.ProductCreateDto, bool) {
	var dto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := h.validate.Struct(dto); err != nil {
		if respondValidationErrors(w, r, mLogger, err) {
			return dto, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	return dto, true
}
