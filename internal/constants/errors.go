package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API endpoint configured, use 'hub config set api <url>' or PS2HUB_API_URL")
	ErrNotAuthenticated = errors.New("not authenticated, use 'hub login' first")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrEmptyToken       = errors.New("token must not be empty")
	ErrNoTokenStored    = errors.New("no token stored for this API")
)

// Validation errors.
var (
	ErrInvalidID           = errors.New("invalid resource id")
	ErrInvalidDecision     = errors.New("decision must be 'approved' or 'rejected'")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidKeyValue     = errors.New("expected key=value")
	ErrDataRequired        = errors.New("--data or --field is required")
	ErrInvalidJSONData     = errors.New("request body is not valid JSON")
	ErrInvalidRetries      = errors.New("retries must be a non-negative integer")
	ErrInvalidJWTFormat    = errors.New("token is not a JWT")
	ErrNoExpirationClaim   = errors.New("token has no expiration claim")
	ErrWeakPassword        = errors.New("password is not strong enough")
	ErrUnknownCurrency     = errors.New("currency must be 'brl' or 'usd'")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)
