package hubclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/ps2hub/internal/client"
	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// New creates a PS2 Homebrew Hub API client. An empty config.BaseURL falls
// back to the PS2HUB_API_URL environment variable. config is not modified.
func New(ctx context.Context, config *hub.Config) (hub.Client, error) {
	if config == nil {
		return nil, hub.ErrConfigRequired
	}

	resolved := *config

	resolved.BaseURL = normalizeBaseURL(resolved.BaseURL)
	if resolved.BaseURL == "" {
		resolved.BaseURL = normalizeBaseURL(os.Getenv(constants.EnvAPIURL))
	}

	if resolved.BaseURL == "" {
		return nil, fmt.Errorf("%w (set %s)", hub.ErrBaseURLRequired, constants.EnvAPIURL)
	}

	if resolved.SkipTLSVerify && resolved.HTTPClient == nil {
		httpClient, err := createInsecureHTTPClient(resolved.HTTPTimeout)
		if err != nil {
			return nil, err
		}

		resolved.HTTPClient = httpClient
	}

	apiClient, err := client.New(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// normalizeBaseURL trims whitespace and trailing slashes and defaults the
// scheme to https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.EnvDevMode)

	return devMode == constants.BooleanTrue || devMode == "1"
}

// createInsecureHTTPClient returns a client that skips certificate checks,
// for local backends with self-signed certificates.
func createInsecureHTTPClient(timeout time.Duration) (*http.Client, error) {
	if !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set %s=true)", hub.ErrSkipTLSOnlyInDev, constants.EnvDevMode)
	}

	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- Protected by development environment check above
		},
	}, nil
}

// NewWithEndpoint creates a new client with just an API base URL (no auth).
func NewWithEndpoint(ctx context.Context, baseURL string) (hub.Client, error) {
	return New(ctx, &hub.Config{
		BaseURL: baseURL,
	})
}

// NewWithToken creates a new client that sends token on authenticated calls.
func NewWithToken(ctx context.Context, baseURL, token string) (hub.Client, error) {
	return New(ctx, &hub.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}

// NewWithCookieJar creates a new client that reads the session cookie from
// jar on every authenticated call, the way a browser session would.
func NewWithCookieJar(ctx context.Context, baseURL string, jar http.CookieJar) (hub.Client, error) {
	return New(ctx, &hub.Config{
		BaseURL:   baseURL,
		CookieJar: jar,
	})
}
