package client

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/fivetwenty-io/ps2hub/internal/auth"
	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// Client implements the hub.Client interface.
type Client struct {
	httpClient    *http.Client
	tokenSource   hub.TokenSource
	baseURL       string
	classify      hub.ErrorClassifier
	errorHandlers map[string]hub.ErrorHandler

	// Resource clients
	games       *GamesClient
	tutorials   *TutorialsClient
	snippets    *SnippetsClient
	users       *UsersClient
	roles       *RolesClient
	submissions *SubmissionsClient
	categories  *CategoriesClient
}

var _ hub.Client = (*Client)(nil)

// createTokenSource picks the token source for config. See hub.Config for
// the precedence.
func createTokenSource(config *hub.Config) hub.TokenSource {
	switch {
	case config.TokenSource != nil:
		return config.TokenSource
	case config.AccessToken != "":
		return auth.StaticSource(config.AccessToken)
	case config.CookieJar != nil:
		return auth.NewCookieJarSource(config.CookieJar, config.BaseURL, config.CookieName)
	default:
		return auth.NewIncomingRequestSource(config.CookieName)
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *hub.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	} else if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPClient(&nethttp.Client{Timeout: config.HTTPTimeout}))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.RequestIDs {
		httpOpts = append(httpOpts, http.WithRequestIDs(true))
	}

	if config.Deduplicate {
		httpOpts = append(httpOpts, http.WithDeduplication(true))
	}

	if config.Cache != nil {
		httpOpts = append(httpOpts, http.WithCache(config.Cache, config.CacheTTL))
	}

	if chain := interceptorsFor(config); chain != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// interceptorsFor combines the configured chain with the metrics pair,
// leaving config.Interceptors untouched.
func interceptorsFor(config *hub.Config) *hub.InterceptorChain {
	if config.Metrics == nil {
		return config.Interceptors
	}

	chain := config.Interceptors.Clone()
	onRequest, onResponse := config.Metrics.Interceptors()

	return chain.AddRequestInterceptor(onRequest).AddResponseInterceptor(onResponse)
}

// New creates a new API client.
func New(config *hub.Config) (*Client, error) {
	if config == nil {
		return nil, hub.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, hub.ErrBaseURLRequired
	}

	tokenSource := createTokenSource(config)
	httpClient := http.NewClient(config.BaseURL, tokenSource, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:    httpClient,
		tokenSource:   tokenSource,
		baseURL:       config.BaseURL,
		classify:      config.ErrorClassifier,
		errorHandlers: config.ErrorHandlers,
	}

	client.initializeResourceClients()

	return client, nil
}

// handlerFor returns the configured handler for endpoint or fallback.
func (c *Client) handlerFor(endpoint string, fallback hub.ErrorHandler) hub.ErrorHandler {
	if handler, ok := c.errorHandlers[endpoint]; ok && handler != nil {
		return handler
	}

	if fallback != nil {
		return fallback
	}

	return hub.NewErrorHandler(endpoint, c.classify)
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.games = NewGamesClient(c.httpClient, c.handlerFor("/games", nil))
	c.tutorials = NewTutorialsClient(c.httpClient, c.handlerFor("/tutorials", nil))
	c.snippets = NewSnippetsClient(c.httpClient, c.handlerFor("/snippets", nil))
	c.users = NewUsersClient(c.httpClient, c.handlerFor("/users", usersErrorHandler(c.classify)))
	c.roles = NewRolesClient(c.httpClient, c.handlerFor("/roles", nil))
	c.submissions = NewSubmissionsClient(c.httpClient, c.handlerFor("/submissions", submissionsErrorHandler(c.classify)))
	c.categories = NewCategoriesClient(c.httpClient, c.handlerFor("/categories", nil))
}

// BaseURL implements hub.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TokenSource returns the token source requests authenticate with.
func (c *Client) TokenSource() hub.TokenSource {
	return c.tokenSource
}

// Resource implements hub.Client.Resource.
func (c *Client) Resource(endpoint string) hub.RawResourceClient {
	return NewResource[json.RawMessage, json.RawMessage](c.httpClient, endpoint, c.handlerFor(endpoint, nil))
}

// Games implements hub.Client.Games.
func (c *Client) Games() hub.GamesClient {
	return c.games
}

// Tutorials implements hub.Client.Tutorials.
func (c *Client) Tutorials() hub.TutorialsClient {
	return c.tutorials
}

// Snippets implements hub.Client.Snippets.
func (c *Client) Snippets() hub.SnippetsClient {
	return c.snippets
}

// Users implements hub.Client.Users.
func (c *Client) Users() hub.UsersClient {
	return c.users
}

// Roles implements hub.Client.Roles.
func (c *Client) Roles() hub.RolesClient {
	return c.roles
}

// Submissions implements hub.Client.Submissions.
func (c *Client) Submissions() hub.SubmissionsClient {
	return c.submissions
}

// Categories implements hub.Client.Categories.
func (c *Client) Categories() hub.CategoriesClient {
	return c.categories
}
