// Package service provides the implementation of catalog business logic:
// paginated queries and uniqueness-validated mutations over categories and
// products.
package service

// FailureCode classifies a failed Result so callers can pick the right
// response without parsing messages.
type FailureCode string

const (
	CodeValidation       FailureCode = "validation"
	CodeDuplicateName    FailureCode = "duplicate_name"
	CodeInvalidReference FailureCode = "invalid_reference"
	CodeNotFound         FailureCode = "not_found"
	CodeCategoryInUse    FailureCode = "category_in_use"
	CodePersistence      FailureCode = "persistence"
)

// Result is the uniform outcome of a mutating service operation. Expected
// failures are carried as values with a message suitable for direct display,
// never as errors crossing the service boundary.
type Result struct {
	Success bool        `json:"success"`
	Code    FailureCode `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Ok builds a successful Result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail builds a failed Result with a classification code.
func Fail(code FailureCode, message string, errs ...string) Result {
	return Result{Success: false, Code: code, Message: message, Errors: errs}
}
