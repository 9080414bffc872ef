// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrConfig indicates missing or malformed local configuration.
	ErrConfig = errors.New("configuration error")

	// ErrService is the base error for remote service failures.
	ErrService = errors.New("service error")

	// ErrContentFilter indicates the request was rejected by a content filter.
	ErrContentFilter = fmt.Errorf("%w: content filter", ErrService)

	// ErrInvalidRequest indicates the request was malformed or invalid.
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrService)

	// ErrInvalidResponse indicates the service returned an unexpected response.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response", ErrService)

	// ErrAuth indicates an authentication or authorization failure.
	ErrAuth = fmt.Errorf("%w: authentication", ErrService)

	// ErrNotFound indicates the addressed resource does not exist.
	ErrNotFound = fmt.Errorf("%w: not found", ErrService)

	// ErrRateLimited indicates the service throttled the request.
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrService)

	// ErrOperation is the base error for long-running operation failures.
	ErrOperation = errors.New("operation error")

	// ErrOperationFailed indicates a long-running operation finished unsuccessfully.
	ErrOperationFailed = fmt.Errorf("%w: failed", ErrOperation)

	// ErrOperationCanceled indicates a long-running operation was canceled remotely.
	ErrOperationCanceled = fmt.Errorf("%w: canceled", ErrOperation)
)

// ServiceError provides rich context for remote service failures.
// Use errors.As to extract it from a wrapped error chain.
type ServiceError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("service error %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// OperationError describes a long-running operation that reached a terminal
// state other than success.
type OperationError struct {
	Status  OperationStatus
	Code    string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("operation %s", e.Status)
	if e.Code != "" {
		msg += fmt.Sprintf(" (%s)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }
