// Package rest provides HTTP handlers for the catalog's category and product operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/service"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/web"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Original controllers used a fixed page size of 10; the API keeps it as the
// default and caps client-supplied sizes.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// resultStatus maps a failed Result's classification to an HTTP status code.
func resultStatus(res service.Result) int {
	switch res.Code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeDuplicateName, service.CodeCategoryInUse:
		return http.StatusConflict
	case service.CodeInvalidReference:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondResult writes a service Result with okStatus on success and the
// mapped failure status otherwise. The Result itself is the body either way,
// so failure messages are suitable for direct display.
func respondResult(w http.ResponseWriter, logger *slog.Logger, okStatus int, res service.Result) {
	status := okStatus
	if !res.Success {
		status = resultStatus(res)
	}
	web.RespondJSON(w, logger, status, res)
}

// respondValidationErrors translates validator errors into a field-keyed map.
// Returns false if err was not a validation error.
func respondValidationErrors(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	errorResponse := make(map[string]string)
	for _, fieldErr := range validationErrors {
		errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
	web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
	return true
}

// parsePaging reads the page and page_size query parameters with their defaults.
func parsePaging(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (page, size int, ok bool) {
	page, ok = web.ParsePage(w, r, logger, "page", 1, 0)
	if !ok {
		return 0, 0, false
	}
	size, ok = web.ParsePage(w, r, logger, "page_size", defaultPageSize, maxPageSize)
	if !ok {
		return 0, 0, false
	}
	return page, size, true
}

// loggerWithReqID derives a request-scoped logger carrying the request ID.
func loggerWithReqID(logger *slog.Logger, r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return logger.With("request_id", reqID)
}
