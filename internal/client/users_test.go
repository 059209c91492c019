package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

func TestUsersClient(t *testing.T) {
	t.Parallel()

	tests := []TestOperation{
		{
			Name:           "me",
			ExpectedMethod: "GET",
			ExpectedPath:   "/users/me",
			ExpectAuth:     true,
			Response:       `{"id":5,"username":"ps2dev","role":{"id":1,"name":"user"}}`,
			Call: func(ctx context.Context, c *Client) (interface{}, error) {
				return dataOf(c.Users().Me(ctx, nil))
			},
			Check: func(t *testing.T, data interface{}) {
				t.Helper()

				user, ok := data.(hub.User)
				require.True(t, ok)
				assert.Equal(t, "ps2dev", user.Username)
				require.NotNil(t, user.Role)
				assert.Equal(t, "user", user.Role.Name)
			},
		},
		{
			Name:           "find by id is public",
			ExpectedMethod: "GET",
			ExpectedPath:   "/users/5",
			Response:       `{"id":5,"username":"ps2dev"}`,
			Call: func(ctx context.Context, c *Client) (interface{}, error) {
				return dataOf(c.Users().FindByID(ctx, 5, nil))
			},
		},
		{
			Name:           "update profile",
			ExpectedMethod: "PATCH",
			ExpectedPath:   "/users/5",
			ExpectAuth:     true,
			ExpectBody:     `{"bio":"Homebrew fan"}`,
			Response:       `{"id":5,"username":"ps2dev","bio":"Homebrew fan"}`,
			Call: func(ctx context.Context, c *Client) (interface{}, error) {
				return dataOf(c.Users().Update(ctx, 5, map[string]string{"bio": "Homebrew fan"}, hub.NewRequestOptions().WithAuth()))
			},
		},
	}

	RunOperationTests(t, tests)
}

func TestUsersClient_MeRequiresSignIn(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Empty(t, request.Header.Get("Authorization"))
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New(&hub.Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Users().Me(context.Background(), nil)
	require.ErrorIs(t, err, hub.ErrSignInRequired)
	assert.True(t, hub.IsUnauthorized(err))
	assert.Equal(t, hub.ErrorKindStatus, hub.KindOf(err))
}
