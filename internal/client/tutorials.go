package client

import (
	"context"

	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// TutorialsClient implements hub.TutorialsClient.
type TutorialsClient struct {
	*Resource[hub.Tutorial, hub.TutorialsList]
}

// NewTutorialsClient creates a new tutorials client.
func NewTutorialsClient(httpClient *http.Client, handler hub.ErrorHandler) *TutorialsClient {
	return &TutorialsClient{
		Resource: NewResource[hub.Tutorial, hub.TutorialsList](httpClient, "/tutorials", handler),
	}
}

// ByCreator implements hub.TutorialsClient.ByCreator.
func (c *TutorialsClient) ByCreator(ctx context.Context, creatorID int64, opts *hub.RequestOptions) (*hub.Result[hub.TutorialsList], error) {
	return c.Find(ctx, withSubEndpoint(opts, creatorPath(creatorID)))
}
