// Copyright (c) Microsoft. All rights reserved.

package azureai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Request describes a single call against a service endpoint.
type Request struct {
	Method string

	// Path is appended to the client endpoint. An absolute URL (as returned
	// in an Operation-Location header) is used unchanged.
	Path  string
	Query url.Values

	// Body is JSON-encoded unless RawBody is set.
	Body        any
	RawBody     io.Reader
	ContentType string
	Header      http.Header
}

// Client sends requests to one service endpoint. Every request is attempted
// exactly once; failures are returned to the caller.
type Client struct {
	endpoint   string
	auth       Auth
	httpClient *http.Client
	headers    map[string]string
	query      url.Values
	handler    Handler
}

type clientConfig struct {
	httpClient *http.Client
	headers    map[string]string
	query      url.Values
	middleware []Middleware
	logger     *slog.Logger
}

// ClientOption configures a [Client].
type ClientOption func(*clientConfig)

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = map[string]string{}
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithAPIVersion adds the api-version query parameter to every request.
func WithAPIVersion(version string) ClientOption {
	return WithQueryParam("api-version", version)
}

// WithQueryParam adds a query parameter to every request that does not
// already carry it.
func WithQueryParam(key, value string) ClientOption {
	return func(c *clientConfig) {
		if value == "" {
			return
		}
		if c.query == nil {
			c.query = url.Values{}
		}
		c.query.Set(key, value)
	}
}

// WithMiddleware adds middleware to the request pipeline.
// Middleware is applied in the order provided (first = outermost).
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *clientConfig) { c.middleware = append(c.middleware, mw...) }
}

// WithLogger sets the logger used by the built-in logging middleware.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) { c.logger = logger }
}

// NewClient creates a [Client] for endpoint. auth may be nil for anonymous
// endpoints.
func NewClient(endpoint string, auth Auth, opts ...ClientOption) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		auth:       auth,
		httpClient: cfg.httpClient,
		headers:    cfg.headers,
		query:      cfg.query,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	mws := []Middleware{ClientRequestIDMiddleware(), LoggingMiddleware(cfg.logger)}
	mws = append(mws, cfg.middleware...)
	c.handler = chainMiddleware(c.httpClient.Do, mws...)
	return c
}

// Endpoint returns the base endpoint without a trailing slash.
func (c *Client) Endpoint() string { return c.endpoint }

// HTTPClient returns the underlying http.Client.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

// Do sends req and returns the response. Responses with status >= 400 are
// consumed and returned as a [*ServiceError]. The caller must close the body
// of a successful response.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.handler(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, parseErrorResponse(resp)
	}
	return resp, nil
}

// DoJSON sends req and decodes a JSON response body into out, which may be
// nil to discard the body. The returned response has its body closed and is
// useful only for status and headers.
func (c *Client) DoJSON(ctx context.Context, req *Request, out any) (*http.Response, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrService, err)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrInvalidResponse, err)
	}
	return resp, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.resolveURL(req)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	contentType := req.ContentType
	switch {
	case req.RawBody != nil:
		bodyReader = req.RawBody
	case req.Body != nil:
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if c.auth != nil {
		if err := c.auth.Authorize(ctx, httpReq); err != nil {
			return nil, err
		}
	}
	return httpReq, nil
}

func (c *Client) resolveURL(req *Request) (string, error) {
	raw := req.Path
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = c.endpoint + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parse url %q: %v", ErrConfig, raw, err)
	}

	q := u.Query()
	for k, vs := range c.query {
		if !q.Has(k) {
			q[k] = append([]string(nil), vs...)
		}
	}
	for k, vs := range req.Query {
		q[k] = append([]string(nil), vs...)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseErrorResponse reads an error response body and returns a typed error.
// Both the Azure ({"error":{"code","message"}}) and the OpenAI
// ({"error":{"message","type","code"}}) shapes are understood.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var code string
	switch v := apiErr.Error.Code.(type) {
	case nil:
		code = apiErr.Error.Type
	case string:
		code = v
	default:
		code = fmt.Sprint(v)
	}

	svcErr := &ServiceError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Code:       code,
		RequestID:  requestID(resp.Header),
	}

	switch {
	case code == "content_filter":
		svcErr.Err = ErrContentFilter
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		svcErr.Err = ErrAuth
	case resp.StatusCode == http.StatusNotFound:
		svcErr.Err = ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		svcErr.Err = ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		svcErr.Err = ErrInvalidRequest
	default:
		svcErr.Err = ErrService
	}

	return svcErr
}

func requestID(h http.Header) string {
	for _, key := range []string{"apim-request-id", "x-request-id", "x-ms-request-id"} {
		if v := h.Get(key); v != "" {
			return v
		}
	}
	return ""
}
