package hub

import (
	"context"
	"net/http"
)

// TokenSource yields the current bearer token. It is consulted on every
// authenticated request and must not cache across calls on its own. The
// boolean is false when no token is available in the current context, which
// is not an error.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, bool)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, bool) {
	return f(ctx)
}

type incomingRequestKey struct{}

// WithIncomingRequest stores the inbound request a server is handling, so
// token sources can read its cookies when rendering server-side.
func WithIncomingRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, incomingRequestKey{}, r)
}

// IncomingRequest returns the request stored by WithIncomingRequest.
func IncomingRequest(ctx context.Context) (*http.Request, bool) {
	r, ok := ctx.Value(incomingRequestKey{}).(*http.Request)

	return r, ok && r != nil
}
