package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Environment and defaults.
const (
	// EnvAPIURL names the environment variable holding the default API base URL.
	EnvAPIURL = "PS2HUB_API_URL"

	// EnvDevMode enables development-only settings such as SkipTLSVerify.
	EnvDevMode = "PS2HUB_DEV_MODE"

	// DefaultCookieName is the cookie that carries the bearer token.
	DefaultCookieName = "token"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "ps2hub-go-client/1.0"

	// DefaultAccept mirrors what browsers' fetch wrappers send.
	DefaultAccept = "application/json, text/plain, */*"

	// ConfigDirName is the CLI configuration directory under $HOME.
	ConfigDirName = ".ps2hub"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless RetryMax is configured.
const (
	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize bounds the in-memory response cache.
	DefaultCacheSize = 256

	// DefaultCacheTTL is how long a cached GET response stays fresh.
	DefaultCacheTTL = 1 * time.Minute

	// DefaultNATSBucket is the JetStream KV bucket for shared caching.
	DefaultNATSBucket = "ps2hub_responses"
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusMultipleChoices is the first non-success status.
	HTTPStatusMultipleChoices = 300

	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)

// Header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
)

// UI and display constants.
const (
	// NotAvailable is shown for empty table cells.
	NotAvailable = "N/A"

	// MaskedSecret replaces tokens in config output.
	MaskedSecret = "***"

	// StringTruncationLimit is the number of token characters shown before masking.
	StringTruncationLimit = 4

	// DescriptionTruncationLimit caps long text in table cells.
	DescriptionTruncationLimit = 60
)

// Format constants.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"

	// CurrencyBRL selects Brazilian real formatting.
	CurrencyBRL = "brl"

	// CurrencyUSD selects US dollar formatting.
	CurrencyUSD = "usd"
)

// Boolean string constants.
const (
	BooleanTrue  = "true"
	BooleanFalse = "false"
)

// JWT decoding.
const (
	// TokenPartsCount is the number of dot-separated segments in a JWT.
	TokenPartsCount = 3

	// TokenExpiryWarning marks tokens that expire soon in `token status`.
	TokenExpiryWarning = 5 * time.Minute
)
