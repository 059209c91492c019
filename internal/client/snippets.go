package client

import (
	"context"

	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// SnippetsClient implements hub.SnippetsClient.
type SnippetsClient struct {
	*Resource[hub.Snippet, hub.SnippetsList]
}

// NewSnippetsClient creates a new snippets client.
func NewSnippetsClient(httpClient *http.Client, handler hub.ErrorHandler) *SnippetsClient {
	return &SnippetsClient{
		Resource: NewResource[hub.Snippet, hub.SnippetsList](httpClient, "/snippets", handler),
	}
}

// ByCreator implements hub.SnippetsClient.ByCreator.
func (c *SnippetsClient) ByCreator(ctx context.Context, creatorID int64, opts *hub.RequestOptions) (*hub.Result[hub.SnippetsList], error) {
	return c.Find(ctx, withSubEndpoint(opts, creatorPath(creatorID)))
}
