// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// HeaderOperationLocation is returned by services that accept a long-running
// request; it addresses the operation status resource.
const HeaderOperationLocation = "Operation-Location"

const defaultPollInterval = 2 * time.Second

// OperationStatus is the state reported by a long-running operation.
type OperationStatus string

const (
	StatusNotStarted         OperationStatus = "notStarted"
	StatusRunning            OperationStatus = "running"
	StatusCancelling         OperationStatus = "cancelling"
	StatusSucceeded          OperationStatus = "succeeded"
	StatusPartiallySucceeded OperationStatus = "partiallySucceeded"
	StatusPartiallyCompleted OperationStatus = "partiallyCompleted"
	StatusFailed             OperationStatus = "failed"
	StatusCanceled           OperationStatus = "canceled"
	StatusCancelled          OperationStatus = "cancelled"
)

// Succeeded reports whether the operation finished and produced a result.
// Partial success counts: per-item failures are reported inside the result.
func (s OperationStatus) Succeeded() bool {
	switch strings.ToLower(string(s)) {
	case "succeeded", "partiallysucceeded", "partiallycompleted":
		return true
	}
	return false
}

// Canceled reports whether the operation was canceled remotely.
func (s OperationStatus) Canceled() bool {
	switch strings.ToLower(string(s)) {
	case "canceled", "cancelled":
		return true
	}
	return false
}

// Terminal reports whether no further status change is expected.
func (s OperationStatus) Terminal() bool {
	return s.Succeeded() || s.Canceled() || strings.EqualFold(string(s), string(StatusFailed))
}

type operationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// operationEnvelope holds the fields every operation status body shares.
// Document Intelligence reports a single "error"; Language reports "errors".
type operationEnvelope struct {
	Status OperationStatus  `json:"status"`
	Error  *operationError  `json:"error"`
	Errors []operationError `json:"errors"`
}

// PollerOptions configures a [Poller].
type PollerOptions struct {
	// Interval between status requests. Defaults to two seconds.
	Interval time.Duration
}

// Poller tracks a long-running operation started by a submit request and
// decodes the final status body into T.
type Poller[T any] struct {
	client     *Client
	location   string
	interval   time.Duration
	retryAfter time.Duration

	status OperationStatus
	result T
	err    error
}

// NewPoller creates a [Poller] from the accepted response of a submit call.
// The response body is closed.
func NewPoller[T any](client *Client, resp *http.Response, opts *PollerOptions) (*Poller[T], error) {
	if resp.Body != nil {
		resp.Body.Close()
	}
	loc := resp.Header.Get(HeaderOperationLocation)
	if loc == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrInvalidResponse, HeaderOperationLocation)
	}
	p := &Poller[T]{
		client:     client,
		location:   loc,
		interval:   defaultPollInterval,
		retryAfter: parseRetryAfter(resp.Header),
		status:     StatusNotStarted,
	}
	if opts != nil && opts.Interval > 0 {
		p.interval = opts.Interval
	}
	return p, nil
}

// Location returns the operation status URL.
func (p *Poller[T]) Location() string { return p.location }

// Status returns the most recently observed status.
func (p *Poller[T]) Status() OperationStatus { return p.status }

// Done reports whether the operation reached a terminal state.
func (p *Poller[T]) Done() bool { return p.status.Terminal() }

// Poll fetches the operation status once.
func (p *Poller[T]) Poll(ctx context.Context) error {
	if p.Done() {
		return nil
	}

	var raw json.RawMessage
	resp, err := p.client.DoJSON(ctx, &Request{Method: http.MethodGet, Path: p.location}, &raw)
	if err != nil {
		return err
	}
	p.retryAfter = parseRetryAfter(resp.Header)

	var env operationEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == "" {
		return fmt.Errorf("%w: operation status body has no status", ErrInvalidResponse)
	}
	p.status = env.Status
	slog.DebugContext(ctx, "operation polled", "status", p.status)

	switch {
	case p.status.Succeeded():
		if err := json.Unmarshal(raw, &p.result); err != nil {
			return fmt.Errorf("%w: parse operation result: %v", ErrInvalidResponse, err)
		}
	case p.status.Terminal():
		opErr := &OperationError{Status: p.status, Err: ErrOperationFailed}
		if p.status.Canceled() {
			opErr.Err = ErrOperationCanceled
		}
		detail := env.Error
		if detail == nil && len(env.Errors) > 0 {
			detail = &env.Errors[0]
		}
		if detail != nil {
			opErr.Code = detail.Code
			opErr.Message = detail.Message
		}
		p.err = opErr
	}
	return nil
}

// Result returns the decoded result of a finished operation.
func (p *Poller[T]) Result() (T, error) {
	if !p.Done() {
		var zero T
		return zero, fmt.Errorf("%w: operation still %s", ErrOperation, p.status)
	}
	return p.result, p.err
}

// PollUntilDone polls at the configured interval, or the service's
// Retry-After if longer, until the operation finishes or ctx ends. The gap
// is measured from the start of the previous poll.
func (p *Poller[T]) PollUntilDone(ctx context.Context) (T, error) {
	var zero T
	limiter := rate.NewLimiter(rate.Every(p.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return zero, fmt.Errorf("wait for operation: %w", err)
		}
		polledAt := time.Now()
		if err := p.Poll(ctx); err != nil {
			return zero, err
		}
		if p.Done() {
			return p.Result()
		}
		limiter.SetLimitAt(polledAt, rate.Every(max(p.interval, p.retryAfter)))
	}
}

func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// IsOperationError reports whether err came from an unsuccessful operation.
func IsOperationError(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}
