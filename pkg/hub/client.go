package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ResourceClient performs the five CRUD operations against one endpoint. T is
// the single-resource payload and L the collection payload.
type ResourceClient[T, L any] interface {
	Find(ctx context.Context, opts *RequestOptions) (*Result[L], error)
	FindByID(ctx context.Context, id int64, opts *RequestOptions) (*Result[T], error)
	Create(ctx context.Context, data any, opts *RequestOptions) (*Result[T], error)
	Update(ctx context.Context, id int64, data any, opts *RequestOptions) (*Result[T], error)
	Delete(ctx context.Context, id int64, opts *RequestOptions) (*Result[json.RawMessage], error)
}

// RawResourceClient leaves payloads undecoded.
type RawResourceClient = ResourceClient[json.RawMessage, json.RawMessage]

// GamesClient manages /games.
type GamesClient interface {
	ResourceClient[Game, GamesList]

	Featured(ctx context.Context, opts *RequestOptions) (*Result[GamesList], error)
	ByCreator(ctx context.Context, creatorID int64, opts *RequestOptions) (*Result[GamesList], error)
}

// TutorialsClient manages /tutorials.
type TutorialsClient interface {
	ResourceClient[Tutorial, TutorialsList]

	ByCreator(ctx context.Context, creatorID int64, opts *RequestOptions) (*Result[TutorialsList], error)
}

// SnippetsClient manages /snippets.
type SnippetsClient interface {
	ResourceClient[Snippet, SnippetsList]

	ByCreator(ctx context.Context, creatorID int64, opts *RequestOptions) (*Result[SnippetsList], error)
}

// UsersClient manages /users.
type UsersClient interface {
	ResourceClient[User, ListResponse[User]]

	Me(ctx context.Context, opts *RequestOptions) (*Result[User], error)
}

// SubmissionsClient manages the moderation queue at /submissions.
type SubmissionsClient interface {
	ResourceClient[Submission, SubmissionsList]

	Pending(ctx context.Context, opts *RequestOptions) (*Result[SubmissionsList], error)
	Review(ctx context.Context, id int64, decision *ReviewDecision, opts *RequestOptions) (*Result[Submission], error)
}

// CategoriesClient manages /categories.
type CategoriesClient interface {
	ResourceClient[Category, ListResponse[Category]]
}

// RolesClient manages /roles.
type RolesClient interface {
	ResourceClient[Role, ListResponse[Role]]
}

// ContentClients provides access to user-submitted content.
type ContentClients interface {
	Games() GamesClient
	Tutorials() TutorialsClient
	Snippets() SnippetsClient
}

// AccountClients provides access to people and permissions.
type AccountClients interface {
	Users() UsersClient
	Roles() RolesClient
}

// ModerationClients provides access to review and taxonomy resources.
type ModerationClients interface {
	Submissions() SubmissionsClient
	Categories() CategoriesClient
}

// Client is the PS2 Homebrew Hub API client.
type Client interface {
	ContentClients
	AccountClients
	ModerationClients

	// Resource returns an undecoded client for any endpoint, e.g. "/comments".
	Resource(endpoint string) RawResourceClient
	// BaseURL returns the API base URL requests are sent to.
	BaseURL() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a hub.Client.
//
// # Token source precedence
//
//  1. TokenSource: used as is.
//  2. AccessToken: sent as a static bearer token.
//  3. CookieJar: the cookie named CookieName is read from the jar for BaseURL
//     on every authenticated call.
//  4. Otherwise the cookie is read from the inbound request stored with
//     WithIncomingRequest, so server-side handlers forward the caller's
//     session. Outside such a handler no token is sent.
//
// # Retries
//
// Requests are attempted once. Setting RetryMax enables retries on
// connection errors, 429 and 5xx with backoff between RetryWaitMin and
// RetryWaitMax.
type Config struct {
	// BaseURL of the API, e.g. "https://api.example.com". hubclient.New falls
	// back to the PS2HUB_API_URL environment variable when empty.
	BaseURL string
	// CookieName holding the token. Defaults to "token".
	CookieName string
	// CookieJar to read the token cookie from.
	CookieJar http.CookieJar
	// AccessToken is a fixed bearer token.
	AccessToken string
	// TokenSource overrides all other token settings.
	TokenSource TokenSource

	// HTTPClient is the underlying transport. Defaults to a client with
	// HTTPTimeout.
	HTTPClient *http.Client
	// HTTPTimeout for the default HTTP client.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries after the first attempt.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// SkipTLSVerify disables certificate checks. hubclient.New only honors
	// it when PS2HUB_DEV_MODE is set.
	SkipTLSVerify bool

	// Debug enables request/response logging when Logger is set.
	Debug bool
	// Logger receives transport logs.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// RequestIDs adds a random X-Request-ID header to every request.
	RequestIDs bool

	// Deduplicate collapses identical concurrent requests into one.
	Deduplicate bool
	// Cache stores unauthenticated GET responses when set.
	Cache Cache
	// CacheTTL is the freshness of cached responses.
	CacheTTL time.Duration
	// Metrics records request counts and latencies when set.
	Metrics *MetricsCollector
	// Interceptors run around every request.
	Interceptors *InterceptorChain

	// ErrorClassifier is used by the built-in resource error handlers.
	ErrorClassifier ErrorClassifier
	// ErrorHandlers replaces the built-in handler of a resource, keyed by
	// endpoint ("/games", "/submissions", ...).
	ErrorHandlers map[string]ErrorHandler
}
