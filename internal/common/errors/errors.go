// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"hauler-workers/internal/entitlement"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Entitlement input errors
const (
	ErrCodeUnknownTier    ErrorCode = "UNKNOWN_TIER"
	ErrCodeUnknownFeature ErrorCode = "UNKNOWN_FEATURE"
	ErrCodeInvalidUsage   ErrorCode = "INVALID_USAGE"
	ErrCodeUnknownProduct ErrorCode = "UNKNOWN_PRODUCT"

	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
)

// Hauler lookup errors
const (
	ErrCodeHaulerNotFound   ErrorCode = "HAULER_NOT_FOUND"
	ErrCodeTierLookupFailed ErrorCode = "TIER_LOOKUP_FAILED"

	ErrCodeZeebeUnavailable ErrorCode = "ZEEBE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownTierError creates a non-retryable error for an unrecognised tier value.
func NewUnknownTierError(value string) *StandardError {
	return newError(ErrCodeUnknownTier, "Unknown subscription tier", fmt.Sprintf("tier: %q", value), false)
}

// NewUnknownFeatureError creates a non-retryable error for an unrecognised feature flag.
func NewUnknownFeatureError(value string) *StandardError {
	return newError(ErrCodeUnknownFeature, "Unknown feature flag", fmt.Sprintf("feature: %q", value), false)
}

func NewInvalidUsageError(details string) *StandardError {
	return newError(ErrCodeInvalidUsage, "Invalid usage counter", details, false)
}

func NewUnknownProductError(productID string) *StandardError {
	return newError(ErrCodeUnknownProduct, "Unknown store product", fmt.Sprintf("productId: %q", productID), false)
}

// NewInputParsingFailedError creates a non-retryable error for job variables that
// could not be decoded.
func NewInputParsingFailedError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", err.Error(), false)
}

// NewValidationFailedError creates a non-retryable schema validation error.
func NewValidationFailedError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Job variables failed validation", details, false)
}

// NewHaulerNotFoundError creates a non-retryable lookup error.
func NewHaulerNotFoundError(userID string) *StandardError {
	return newError(ErrCodeHaulerNotFound, "User not found", fmt.Sprintf("userId: %s", userID), false)
}

// NewTierLookupFailedError creates a retryable database/cache error.
func NewTierLookupFailedError(err error) *StandardError {
	return newError(ErrCodeTierLookupFailed, "Database error during tier lookup", err.Error(), true)
}

// NewZeebeUnavailableError wraps a gateway failure that survived client retries.
func NewZeebeUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeZeebeUnavailable, fmt.Sprintf("Zeebe operation '%s' failed", operation), err.Error(), true)
}

// FromEntitlement translates an engine error into a StandardError. Errors that
// are not input errors become INTERNAL_ERROR.
func FromEntitlement(err error) *StandardError {
	if err == nil {
		return nil
	}

	var (
		stdErr     *StandardError
		tierErr    *entitlement.UnknownTierError
		featureErr *entitlement.UnknownFeatureError
		usageErr   *entitlement.InvalidUsageError
		productErr *entitlement.UnknownProductError
		roleErr    *entitlement.UnknownRoleError
	)

	switch {
	case stderrors.As(err, &stdErr):
		return stdErr
	case stderrors.As(err, &tierErr):
		return NewUnknownTierError(tierErr.Value)
	case stderrors.As(err, &featureErr):
		return NewUnknownFeatureError(featureErr.Value)
	case stderrors.As(err, &usageErr):
		return NewInvalidUsageError(usageErr.Error())
	case stderrors.As(err, &productErr):
		return NewUnknownProductError(productErr.ProductID)
	case stderrors.As(err, &roleErr):
		return NewValidationFailedError(roleErr.Error())
	case stderrors.Is(err, entitlement.ErrInvalidInput):
		return NewValidationFailedError(err.Error())
	default:
		return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnknownTier:        "UNKNOWN_TIER",
	ErrCodeUnknownFeature:     "UNKNOWN_FEATURE",
	ErrCodeInvalidUsage:       "INVALID_USAGE",
	ErrCodeUnknownProduct:     "UNKNOWN_PRODUCT",
	ErrCodeInputParsingFailed: "INPUT_PARSING_FAILED",
	ErrCodeValidationFailed:   "VALIDATION_FAILED",
	ErrCodeHaulerNotFound:     "HAULER_NOT_FOUND",
	ErrCodeTierLookupFailed:   "TIER_LOOKUP_FAILED",
}

// KnownCodes returns every error code a worker can report.
func KnownCodes() map[string]bool {
	codes := map[string]bool{
		string(ErrCodeZeebeUnavailable): true,
		string(ErrCodeInternal):         true,
	}
	for code := range BPMNErrorMapping {
		codes[string(code)] = true
	}
	return codes
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTierLookupFailed:
		return 3
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "UNKNOWN_") || strings.Contains(codeStr, "USAGE"):
		return "ENTITLEMENT"
	case strings.Contains(codeStr, "HAULER") || strings.Contains(codeStr, "LOOKUP"):
		return "SUBSCRIPTION"
	case strings.Contains(codeStr, "PARSING") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ZEEBE"):
		return "WORKFLOW"
	default:
		return "OTHER"
	}
}
