// Package auth provides the token sources that feed the bearer token into
// authenticated requests. Sources only read tokens; issuing and refreshing
// them is left to the API's login flow.
package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// StaticSource always yields the same token. The empty string yields none.
type StaticSource string

// Token implements hub.TokenSource.
func (s StaticSource) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

// CookieJarSource reads the token cookie that a jar holds for the API base
// URL, the way a browser would send it.
type CookieJarSource struct {
	jar     http.CookieJar
	baseURL *url.URL
	name    string
}

// NewCookieJarSource creates a source reading cookieName from jar for
// baseURL. An empty cookieName means "token".
func NewCookieJarSource(jar http.CookieJar, baseURL, cookieName string) *CookieJarSource {
	if cookieName == "" {
		cookieName = constants.DefaultCookieName
	}

	// An unparsable base URL leaves the source without a token.
	parsed, err := url.Parse(baseURL)
	if err != nil {
		parsed = nil
	}

	return &CookieJarSource{jar: jar, baseURL: parsed, name: cookieName}
}

// Token implements hub.TokenSource. It reads the jar on every call.
func (s *CookieJarSource) Token(context.Context) (string, bool) {
	if s == nil || s.jar == nil || s.baseURL == nil {
		return "", false
	}

	for _, cookie := range s.jar.Cookies(s.baseURL) {
		if cookie.Name == s.name && cookie.Value != "" {
			return cookie.Value, true
		}
	}

	return "", false
}

// IncomingRequestSource reads the token cookie from the inbound request
// stored in the context with hub.WithIncomingRequest. It lets a server that
// renders pages forward the visitor's session to the API.
type IncomingRequestSource struct {
	name string
}

// NewIncomingRequestSource creates a source for cookieName. An empty
// cookieName means "token".
func NewIncomingRequestSource(cookieName string) *IncomingRequestSource {
	if cookieName == "" {
		cookieName = constants.DefaultCookieName
	}

	return &IncomingRequestSource{name: cookieName}
}

// Token implements hub.TokenSource. Outside a request handler no token is
// available.
func (s *IncomingRequestSource) Token(ctx context.Context) (string, bool) {
	r, ok := hub.IncomingRequest(ctx)
	if !ok {
		return "", false
	}

	cookie, err := r.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

var (
	_ hub.TokenSource = StaticSource("")
	_ hub.TokenSource = (*CookieJarSource)(nil)
	_ hub.TokenSource = (*IncomingRequestSource)(nil)
	_ hub.TokenSource = (*ConfigTokenSource)(nil)
)
