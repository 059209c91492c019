package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// Resource implements hub.ResourceClient for one endpoint. T is the decoded
// single-resource payload and L the decoded collection payload.
type Resource[T, L any] struct {
	httpClient  *http.Client
	urls        hub.URLBuilder
	handleError hub.ErrorHandler
}

// NewResource creates a client for endpoint. A nil handler uses the default
// classifying handler.
func NewResource[T, L any](httpClient *http.Client, endpoint string, handler hub.ErrorHandler) *Resource[T, L] {
	if handler == nil {
		handler = hub.NewErrorHandler(endpoint, nil)
	}

	return &Resource[T, L]{
		httpClient:  httpClient,
		urls:        hub.NewURLBuilder(httpClient.BaseURL(), endpoint),
		handleError: handler,
	}
}

// Endpoint returns the resource path, e.g. "/games".
func (r *Resource[T, L]) Endpoint() string {
	return r.urls.Endpoint
}

// URL returns the absolute URL a request with opts and id would target.
func (r *Resource[T, L]) URL(opts *hub.RequestOptions, id ...int64) string {
	return r.urls.Build(opts, id...)
}

// Find implements hub.ResourceClient.Find.
func (r *Resource[T, L]) Find(ctx context.Context, opts *hub.RequestOptions) (*hub.Result[L], error) {
	return execute[L](ctx, r.call(nethttp.MethodGet, opts, nil))
}

// FindByID implements hub.ResourceClient.FindByID.
func (r *Resource[T, L]) FindByID(ctx context.Context, id int64, opts *hub.RequestOptions) (*hub.Result[T], error) {
	return execute[T](ctx, r.call(nethttp.MethodGet, opts, nil, id))
}

// Create implements hub.ResourceClient.Create. data is a JSON-encodable
// value or a *hub.Form.
func (r *Resource[T, L]) Create(ctx context.Context, data any, opts *hub.RequestOptions) (*hub.Result[T], error) {
	return execute[T](ctx, r.call(nethttp.MethodPost, opts, data))
}

// Update implements hub.ResourceClient.Update.
func (r *Resource[T, L]) Update(ctx context.Context, id int64, data any, opts *hub.RequestOptions) (*hub.Result[T], error) {
	return execute[T](ctx, r.call(nethttp.MethodPatch, opts, data, id))
}

// Delete implements hub.ResourceClient.Delete.
func (r *Resource[T, L]) Delete(ctx context.Context, id int64, opts *hub.RequestOptions) (*hub.Result[json.RawMessage], error) {
	return execute[json.RawMessage](ctx, r.call(nethttp.MethodDelete, opts, nil, id))
}

// call is one prepared operation.
type call struct {
	httpClient  *http.Client
	handleError hub.ErrorHandler
	request     *http.Request
}

func (r *Resource[T, L]) call(method string, opts *hub.RequestOptions, body any, id ...int64) call {
	if opts == nil {
		opts = &hub.RequestOptions{}
	}

	return call{
		httpClient:  r.httpClient,
		handleError: r.handleError,
		request: &http.Request{
			Method:       method,
			Path:         r.urls.Path(opts, id...),
			Endpoint:     r.urls.Endpoint,
			Query:        opts.Values(),
			Body:         body,
			Headers:      opts.CustomHeaders,
			Authenticate: opts.RequiresAuth,
			ResponseType: opts.ResponseType.OrDefault(),
		},
	}
}

// execute dispatches c and shapes the response as R. Every failure is passed
// to the resource's error handler exactly once.
func execute[R any](ctx context.Context, c call) (*hub.Result[R], error) {
	method := c.request.Method

	result, err := dispatch[R](ctx, c)
	if err != nil {
		return nil, c.handleError(method, err)
	}

	return result, nil
}

func dispatch[R any](ctx context.Context, c call) (*hub.Result[R], error) {
	if c.request.Endpoint == "" {
		return nil, hub.ErrEndpointRequired
	}

	responseType := c.request.ResponseType
	if !responseType.Valid() {
		return nil, fmt.Errorf("%w: %q", hub.ErrInvalidResponseType, responseType)
	}

	resp, err := c.httpClient.Do(ctx, c.request)
	if err != nil {
		if resp != nil && resp.Stream != nil {
			_ = resp.Stream.Close()
		}

		return nil, err
	}

	err = validate(resp, responseType)
	if err != nil {
		return nil, err
	}

	result := &hub.Result[R]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Raw:        resp.Body,
		Stream:     resp.Stream,
	}

	switch responseType {
	case hub.ResponseTypeJSON:
		if len(bytes.TrimSpace(resp.Body)) == 0 {
			return result, nil
		}

		err := json.Unmarshal(resp.Body, &result.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", hub.ErrInvalidResponse, err)
		}
	case hub.ResponseTypeText, hub.ResponseTypeBlob, hub.ResponseTypeArrayBuffer:
		err := assignRaw(&result.Data, resp.Body)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// validate rejects a missing response, a JSON body that is literally null
// and a stream response without a body. Falsy JSON values such as 0, false
// and "" are valid.
func validate(resp *http.Response, responseType hub.ResponseType) error {
	if resp == nil {
		return fmt.Errorf("%w: no response", hub.ErrInvalidResponse)
	}

	switch responseType {
	case hub.ResponseTypeStream:
		if resp.Stream == nil {
			return fmt.Errorf("%w: no response stream", hub.ErrInvalidResponse)
		}
	case hub.ResponseTypeJSON:
		if bytes.Equal(bytes.TrimSpace(resp.Body), []byte("null")) {
			return fmt.Errorf("%w: null body", hub.ErrInvalidResponse)
		}
	}

	return nil
}

// assignRaw stores body in data, which must point to a string or byte slice.
func assignRaw(data any, body []byte) error {
	switch v := data.(type) {
	case *string:
		*v = string(body)
	case *[]byte:
		*v = body
	case *json.RawMessage:
		*v = body
	default:
		return fmt.Errorf("%w: %w: %T", hub.ErrInvalidResponse, hub.ErrResponseTypeMismatch, data)
	}

	return nil
}

// withSubEndpoint returns a copy of opts targeting subEndpoint.
func withSubEndpoint(opts *hub.RequestOptions, subEndpoint string) *hub.RequestOptions {
	out := hub.RequestOptions{}
	if opts != nil {
		out = *opts
	}

	out.SubEndpoint = subEndpoint

	return &out
}

// withAuth returns a copy of opts that requires auth.
func withAuth(opts *hub.RequestOptions) *hub.RequestOptions {
	out := hub.RequestOptions{}
	if opts != nil {
		out = *opts
	}

	out.RequiresAuth = true

	return &out
}
