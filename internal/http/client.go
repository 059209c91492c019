package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// ErrNilRequest is returned by Do for a nil request.
var ErrNilRequest = errors.New("request is nil")

// Client performs single request/response cycles against the API base URL.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenSource  hub.TokenSource
	userAgent    string
	logger       hub.Logger
	debug        bool
	requestIDs   bool
	interceptors *hub.InterceptorChain

	cache       hub.Cache
	cacheTTL    time.Duration
	cachePolicy *hub.CachingPolicy

	dedupe bool
	group  singleflight.Group
}

// Request is one outgoing API call.
type Request struct {
	Method string
	// Path is appended to the base URL verbatim.
	Path string
	// Endpoint names the resource Path belongs to; it is passed to
	// interceptors as hub.Request.Endpoint.
	Endpoint string
	Query    url.Values
	// Body is nil, []byte, io.Reader, *hub.Form or a value encoded as JSON.
	Body    any
	Headers map[string]string
	// Authenticate attaches the bearer token from the token source.
	Authenticate bool
	ResponseType hub.ResponseType
}

// Response is the outcome of a request. For stream responses with a 2xx
// status Stream holds the unread body and Body is nil.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Stream     io.ReadCloser
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger hub.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables retries on connection errors, 429 and 5xx.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors runs chain around every dispatched request.
func WithInterceptors(chain *hub.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache stores cacheable GET responses in cache for ttl.
func WithCache(cache hub.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithCachingPolicy overrides the default caching policy.
func WithCachingPolicy(policy *hub.CachingPolicy) Option {
	return func(c *Client) {
		if policy != nil {
			c.cachePolicy = policy
		}
	}
}

// WithDeduplication collapses identical concurrent requests into one.
func WithDeduplication(enabled bool) Option {
	return func(c *Client) {
		c.dedupe = enabled
	}
}

// WithRequestIDs adds a random X-Request-ID to every request.
func WithRequestIDs(enabled bool) Option {
	return func(c *Client) {
		c.requestIDs = enabled
	}
}

// NewClient creates a client for baseURL. tokenSource may be nil, in which
// case authenticated requests are sent without a token.
func NewClient(baseURL string, tokenSource hub.TokenSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     baseURL,
		httpClient:  retryClient,
		tokenSource: tokenSource,
		userAgent:   constants.DefaultUserAgent,
		cacheTTL:    constants.DefaultCacheTTL,
		cachePolicy: hub.DefaultCachingPolicy(),
	}

	for _, opt := range opts {
		opt(client)
	}

	// Attempts are logged by Do; the retry logger only reports retries.
	if client.logger != nil && client.httpClient.RetryMax > 0 {
		client.httpClient.Logger = &retryLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req. A non-2xx status returns both the Response and a
// *hub.StatusError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	headers := c.buildHeaders(ctx, req, contentType)

	intercepted := &hub.Request{
		Method:   req.Method,
		Path:     req.Path,
		Endpoint: req.Endpoint,
		URL:      fullURL,
		Headers:  headers,
		Body:     body,
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	cacheKey := ""
	if c.cacheable(req, headers) {
		cacheKey = "GET " + fullURL

		if resp, ok := c.fromCache(ctx, cacheKey); ok {
			c.afterResponse(ctx, intercepted, &hub.Response{
				StatusCode: resp.StatusCode,
				Headers:    resp.Headers,
				Body:       resp.Body,
			})

			return resp, nil
		}
	}

	var resp *Response
	if c.dedupe && req.ResponseType != hub.ResponseTypeStream {
		resp, err = c.doShared(ctx, intercepted, req.ResponseType)
	} else {
		resp, err = c.send(ctx, intercepted, req.ResponseType)
	}

	if err != nil {
		return resp, err
	}

	c.updateCache(ctx, req, cacheKey, resp)

	return resp, nil
}

// Get sends an unauthenticated GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends body as a POST.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends body as a PUT.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch sends body as a PATCH.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// buildHeaders sets the defaults, then the bearer token, then the caller's
// headers. A caller header replaces any earlier value for the same key.
func (c *Client) buildHeaders(ctx context.Context, req *Request, contentType string) http.Header {
	headers := make(http.Header)
	headers.Set(constants.HeaderAccept, constants.DefaultAccept)
	headers.Set(constants.HeaderUserAgent, c.userAgent)

	if contentType != "" {
		headers.Set(constants.HeaderContentType, contentType)
	}

	if req.Authenticate {
		if source := c.tokenSource; source != nil {
			if token, ok := source.Token(ctx); ok && token != "" {
				headers.Set(constants.HeaderAuthorization, "Bearer "+token)
			}
		}
	}

	_, isForm := req.Body.(*hub.Form)

	for key, value := range req.Headers {
		if isForm && http.CanonicalHeaderKey(key) == constants.HeaderContentType && needsBoundary(value) {
			// The generated header already carries the boundary.
			continue
		}

		headers.Set(key, value)
	}

	if c.requestIDs && headers.Get(constants.HeaderRequestID) == "" {
		headers.Set(constants.HeaderRequestID, uuid.New().String())
	}

	return headers
}

func needsBoundary(contentType string) bool {
	lower := strings.ToLower(strings.TrimSpace(contentType))

	return strings.HasPrefix(lower, "multipart/form-data") && !strings.Contains(lower, "boundary=")
}

func (c *Client) send(ctx context.Context, req *hub.Request, responseType hub.ResponseType) (*Response, error) {
	var rawBody interface{}
	if len(req.Body) > 0 {
		rawBody = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = req.Headers.Clone()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.afterResponse(ctx, req, &hub.Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}

	success := httpResp.StatusCode >= constants.HTTPStatusOK && httpResp.StatusCode < constants.HTTPStatusMultipleChoices

	if success && responseType == hub.ResponseTypeStream {
		resp.Stream = httpResp.Body
	} else {
		defer func() { _ = httpResp.Body.Close() }()

		resp.Body, err = io.ReadAll(httpResp.Body)
		if err != nil {
			c.afterResponse(ctx, req, &hub.Response{StatusCode: resp.StatusCode, Headers: resp.Headers, Error: err})

			return nil, fmt.Errorf("reading response body: %w", err)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(resp.Body),
		})
	}

	var statusErr error
	if !success {
		statusErr = hub.NewStatusError(resp.StatusCode, resp.Body)
	}

	c.afterResponse(ctx, req, &hub.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      statusErr,
	})

	if statusErr != nil {
		return resp, statusErr
	}

	return resp, nil
}

func (c *Client) afterResponse(ctx context.Context, req *hub.Request, resp *hub.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

type sharedResult struct {
	resp *Response
	err  error
}

// doShared joins an identical in-flight request when there is one. The
// shared request ignores cancellation; each caller stops waiting when its
// own ctx is done.
func (c *Client) doShared(ctx context.Context, req *hub.Request, responseType hub.ResponseType) (*Response, error) {
	key := strings.Join([]string{
		req.Method,
		req.URL,
		req.Headers.Get(constants.HeaderAuthorization),
		string(responseType),
		string(req.Body),
	}, "\n")

	shared := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		resp, err := c.send(shared, req, responseType)

		return sharedResult{resp: resp, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("executing request: %w", ctx.Err())
	case out := <-ch:
		result, _ := out.Val.(sharedResult)

		return result.resp, result.err
	}
}

func (c *Client) cacheable(req *Request, headers http.Header) bool {
	return c.cache != nil &&
		req.Method == http.MethodGet &&
		req.ResponseType != hub.ResponseTypeStream &&
		headers.Get(constants.HeaderAuthorization) == "" &&
		c.cachePolicy.ShouldCache(http.MethodGet, req.Path, constants.HTTPStatusOK)
}

func (c *Client) fromCache(ctx context.Context, key string) (*Response, bool) {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("Cache hit", map[string]interface{}{"key": key})
	}

	return &Response{
		StatusCode: entry.StatusCode,
		Headers:    entry.Headers,
		Body:       entry.Data,
	}, true
}

// updateCache stores cacheable responses and drops everything cached after
// a successful mutation.
func (c *Client) updateCache(ctx context.Context, req *Request, key string, resp *Response) {
	if c.cache == nil {
		return
	}

	if req.Method != http.MethodGet {
		err := c.cache.Clear(ctx)
		if err != nil && c.logger != nil {
			c.logger.Warn("clearing response cache failed", map[string]interface{}{"error": err.Error()})
		}

		return
	}

	if key == "" || !c.cachePolicy.ShouldCache(req.Method, req.Path, resp.StatusCode) {
		return
	}

	err := c.cache.Set(ctx, key, &hub.CacheEntry{
		Data:       resp.Body,
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		ETag:       resp.Headers.Get("ETag"),
		ExpiresAt:  time.Now().Add(c.cacheTTL),
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("storing cached response failed", map[string]interface{}{"error": err.Error()})
	}
}

// encodeBody returns the wire bytes of body and the content type it implies.
func encodeBody(body any) ([]byte, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *hub.Form:
		return encodeForm(v)
	case []byte:
		return v, "", nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, "", fmt.Errorf("reading request body: %w", err)
		}

		return data, "application/octet-stream", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}

		return data, "application/json", nil
	}
}

// retryLogger adapts hub.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger hub.Logger
}

var _ retryablehttp.LeveledLogger = (*retryLogger)(nil)

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		value := keysAndValues[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}

		out[fmt.Sprint(keysAndValues[i])] = value
	}

	return out
}
