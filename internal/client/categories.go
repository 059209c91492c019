package client

import (
	"github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// CategoriesClient implements hub.CategoriesClient.
type CategoriesClient struct {
	*Resource[hub.Category, hub.ListResponse[hub.Category]]
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *http.Client, handler hub.ErrorHandler) *CategoriesClient {
	return &CategoriesClient{
		Resource: NewResource[hub.Category, hub.ListResponse[hub.Category]](httpClient, "/categories", handler),
	}
}

// RolesClient implements hub.RolesClient.
type RolesClient struct {
	*Resource[hub.Role, hub.ListResponse[hub.Role]]
}

// NewRolesClient creates a new roles client.
func NewRolesClient(httpClient *http.Client, handler hub.ErrorHandler) *RolesClient {
	return &RolesClient{
		Resource: NewResource[hub.Role, hub.ListResponse[hub.Role]](httpClient, "/roles", handler),
	}
}
