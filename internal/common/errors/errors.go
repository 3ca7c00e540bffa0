package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"

	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeOrderLookupFailed  ErrorCode = "ORDER_LOOKUP_FAILED"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeGenAIDisabled ErrorCode = "GENAI_DISABLED"
	ErrCodeGenAITimeout  ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIFailed   ErrorCode = "GENAI_FAILED"

	ErrCodeDependencyUnavailable ErrorCode = "DEPENDENCY_UNAVAILABLE"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Menu catalog is unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewOrderLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderLookupFailed,
		Message:   "Order lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewDependencyUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDependencyUnavailable,
		Message:   fmt.Sprintf("%s is not reachable", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatusMapping is the response status used for each code at the HTTP boundary.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeInvalidRequest:        http.StatusBadRequest,
	ErrCodeCatalogUnavailable:    http.StatusServiceUnavailable,
	ErrCodeOrderLookupFailed:     http.StatusServiceUnavailable,
	ErrCodeSessionStoreFailed:    http.StatusServiceUnavailable,
	ErrCodeDependencyUnavailable: http.StatusServiceUnavailable,
	ErrCodeGenAITimeout:          http.StatusGatewayTimeout,
	ErrCodeGenAIFailed:           http.StatusBadGateway,
	ErrCodeGenAIDisabled:         http.StatusServiceUnavailable,
}

func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable, ErrCodeOrderLookupFailed, ErrCodeSessionStoreFailed, ErrCodeDependencyUnavailable:
		return 3
	case ErrCodeGenAITimeout, ErrCodeGenAIFailed:
		return 2
	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// Normalize returns err as a *StandardError, wrapping foreign errors as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
