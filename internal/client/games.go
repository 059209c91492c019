package client

import (
	"context"
	"strconv"

	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// GamesClient implements hub.GamesClient.
type GamesClient struct {
	*Resource[hub.Game, hub.GamesList]
}

// NewGamesClient creates a new games client.
func NewGamesClient(httpClient *http.Client, handler hub.ErrorHandler) *GamesClient {
	return &GamesClient{
		Resource: NewResource[hub.Game, hub.GamesList](httpClient, "/games", handler),
	}
}

// Featured implements hub.GamesClient.Featured.
func (c *GamesClient) Featured(ctx context.Context, opts *hub.RequestOptions) (*hub.Result[hub.GamesList], error) {
	return c.Find(ctx, withSubEndpoint(opts, "/featured"))
}

// ByCreator implements hub.GamesClient.ByCreator.
func (c *GamesClient) ByCreator(ctx context.Context, creatorID int64, opts *hub.RequestOptions) (*hub.Result[hub.GamesList], error) {
	return c.Find(ctx, withSubEndpoint(opts, creatorPath(creatorID)))
}

func creatorPath(creatorID int64) string {
	return "/creator/" + strconv.FormatInt(creatorID, 10)
}
