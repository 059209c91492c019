package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// UsersClient implements hub.UsersClient.
type UsersClient struct {
	*Resource[hub.User, hub.ListResponse[hub.User]]
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, handler hub.ErrorHandler) *UsersClient {
	return &UsersClient{
		Resource: NewResource[hub.User, hub.ListResponse[hub.User]](httpClient, "/users", handler),
	}
}

// Me implements hub.UsersClient.Me. The request is always authenticated.
func (c *UsersClient) Me(ctx context.Context, opts *hub.RequestOptions) (*hub.Result[hub.User], error) {
	// The sub-endpoint replaces the id suffix.
	return c.FindByID(ctx, 0, withSubEndpoint(withAuth(opts), "/me"))
}

// usersErrorHandler marks 401 answers as needing a sign in.
func usersErrorHandler(classify hub.ErrorClassifier) hub.ErrorHandler {
	base := hub.NewErrorHandler("/users", classify)

	return func(op string, err error) error {
		wrapped := base(op, err)
		if hub.IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", hub.ErrSignInRequired, wrapped)
		}

		return wrapped
	}
}
