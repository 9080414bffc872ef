// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingMiddleware returns a [Middleware] that logs each HTTP exchange using slog.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			start := time.Now()
			logger.DebugContext(ctx, "request started",
				"method", req.Method,
				"path", req.URL.Path,
				"client_request_id", req.Header.Get(HeaderClientRequestID),
			)

			resp, err := next(req)

			duration := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"duration", duration,
					"error", err,
				)
				return nil, err
			}

			logger.DebugContext(ctx, "request completed",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"duration", duration,
			)
			return resp, nil
		}
	}
}
