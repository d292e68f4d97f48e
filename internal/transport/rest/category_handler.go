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

// CategoryHandler serves the category routes.
type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler with the provided service.
func NewCategoryHandler(service service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest.categories"),
	}
}

// RegisterRoutes registers the HTTP routes for category operations.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/all", h.ListAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// List returns one page of categories ordered by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	page, size, ok := parsePaging(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list categories", "page", page, "page_size", size)
	list, err := h.service.List(r.Context(), page, size)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving category list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// ListAll returns every category for selection controls.
func (h *CategoryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a category by its ID.
func (h *CategoryHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrCategoryNotFound) {
			mLogger.WarnContext(r.Context(), "Category not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving category", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve category with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create handles the creation of a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	var dto service.CategoryCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		if respondValidationErrors(w, r, mLogger, err) {
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	res := h.service.Create(r.Context(), dto)
	if res.Success {
		mLogger.InfoContext(r.Context(), "Category created successfully", "Name", dto.Name)
	} else {
		mLogger.WarnContext(r.Context(), "Category creation failed", "Name", dto.Name, "code", res.Code, "message", res.Message)
	}
	respondResult(w, mLogger, http.StatusCreated, res)
}

// Update renames an existing category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto service.CategoryCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		if respondValidationErrors(w, r, mLogger, err) {
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	res := h.service.Update(r.Context(), id, dto)
	if res.Success {
		mLogger.InfoContext(r.Context(), "Category updated successfully", "ID", id, "Name", dto.Name)
	} else {
		mLogger.WarnContext(r.Context(), "Category update failed", "ID", id, "code", res.Code, "message", res.Message)
	}
	respondResult(w, mLogger, http.StatusOK, res)
}

// DeleteByID deletes a category by its ID unless products still reference it.
func (h *CategoryHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := loggerWithReqID(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	res := h.service.Delete(r.Context(), id)
	if !res.Success {
		mLogger.WarnContext(r.Context(), "Category deletion failed", "ID", id, "code", res.Code, "message", res.Message)
		respondResult(w, mLogger, http.StatusOK, res)
		return
	}
	mLogger.InfoContext(r.Context(), "Category deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
