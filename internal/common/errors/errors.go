// Package errors provides the standardized error taxonomy for stock-query
// resolution. Every code here surfaces to the user as composed fulfillment
// text, never as an exception crossing the module boundary.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Resolution misses: zero candidates after both matching phases.
	ErrCodeLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"

	// Resolution ties: multiple candidates survived matching.
	ErrCodeAmbiguousLocation ErrorCode = "AMBIGUOUS_LOCATION"
	ErrCodeAmbiguousProduct  ErrorCode = "AMBIGUOUS_PRODUCT"

	// Infrastructure trouble: the external catalog fetch failed. The one
	// code that is retryable and worth alerting on.
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"

	// Boundary errors: the webhook payload did not match the contract.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
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

// NewLocationNotFoundError marks a location query that matched no store.
func NewLocationNotFoundError(locationText string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   "No store matched the requested location",
		Details:   locationText,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProductNotFoundError marks a product query that matched no item.
func NewProductNotFoundError(productText string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProductNotFound,
		Message:   "No inventory item matched the requested product",
		Details:   productText,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAmbiguousLocationError carries the candidate store names for the
// clarification prompt.
func NewAmbiguousLocationError(locationText string, candidates []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAmbiguousLocation,
		Message:   "Multiple stores matched the requested location",
		Details:   locationText,
		Retryable: false,
		Metadata:  map[string]interface{}{"candidates": candidates},
		Timestamp: time.Now().UTC(),
	}
}

// NewAmbiguousProductError carries the candidate item names for the
// clarification prompt.
func NewAmbiguousProductError(productText string, candidates []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAmbiguousProduct,
		Message:   "Multiple inventory items matched the requested product",
		Details:   productText,
		Retryable: false,
		Metadata:  map[string]interface{}{"candidates": candidates},
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUnavailableError wraps a failed catalog fetch.
func NewCatalogUnavailableError(cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Catalog data could not be fetched",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError marks a webhook payload that failed schema validation.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a StandardError flagged retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}
