// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderClientRequestID carries a caller-generated id used to correlate a
// request with service-side logs.
const HeaderClientRequestID = "x-ms-client-request-id"

// Handler sends a fully prepared request and returns the raw response.
type Handler func(req *http.Request) (*http.Response, error)

// Middleware wraps a [Handler] to add cross-cutting behavior.
// Middleware should call next to continue the chain, or return early to short-circuit.
type Middleware func(next Handler) Handler

// chainMiddleware applies middleware in order (first in list = outermost wrapper).
func chainMiddleware(handler Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// ClientRequestIDMiddleware stamps every request that does not already carry
// one with a random client request id.
func ClientRequestIDMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(HeaderClientRequestID) == "" {
				req.Header.Set(HeaderClientRequestID, uuid.NewString())
			}
			return next(req)
		}
	}
}
