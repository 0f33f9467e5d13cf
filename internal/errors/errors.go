// Package errors provides custom error types for the fintrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Pipeline errors.
var (
	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
)

// Budget errors.
var (
	ErrPeriodNotFound = &AppError{Code: "PERIOD_NOT_FOUND", Message: "Budget period not found", StatusCode: http.StatusNotFound}
)

// Spending errors.
var (
	ErrSpendingEntryNotFound = &AppError{Code: "SPENDING_ENTRY_NOT_FOUND", Message: "Spending entry not found", StatusCode: http.StatusNotFound}
	ErrInvalidPrice          = &AppError{Code: "INVALID_PRICE", Message: "Price must be greater than zero", StatusCode: http.StatusBadRequest}
)

// Activity errors.
var (
	ErrActivityNotFound = &AppError{Code: "ACTIVITY_NOT_FOUND", Message: "No activity logged for this date", StatusCode: http.StatusNotFound}
)

// Portfolio errors.
var (
	ErrHoldingNotFound = &AppError{Code: "HOLDING_NOT_FOUND", Message: "ETF holding not found", StatusCode: http.StatusNotFound}
	ErrInvalidValues   = &AppError{Code: "INVALID_VALUES", Message: "Portfolio component values must be greater than zero", StatusCode: http.StatusBadRequest}
)

// Savings errors.
var (
	ErrInvalidAllocation     = &AppError{Code: "INVALID_ALLOCATION", Message: "Allocation percentages must sum to 100", StatusCode: http.StatusBadRequest}
	ErrFixedExpenseNotFound  = &AppError{Code: "FIXED_EXPENSE_NOT_FOUND", Message: "Fixed expense not found", StatusCode: http.StatusNotFound}
	ErrDuplicateFixedExpense = &AppError{Code: "DUPLICATE_FIXED_EXPENSE", Message: "A fixed expense with this name already exists for this pay period", StatusCode: http.StatusConflict}
)

// Condo errors.
var (
	ErrInstallmentNotFound = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Property tax installment not found", StatusCode: http.StatusNotFound}
)
