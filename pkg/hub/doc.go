// Package hub provides types, interfaces, and helpers for working with the
// PS2 Homebrew Hub REST API.
//
// # Overview
//
// The hub package defines the domain types (Game, Tutorial, Snippet, User,
// Submission) and the interfaces for resource clients (GamesClient,
// SubmissionsClient, ...). The concrete implementation is built by the
// hubclient package, which wires configuration, transport and the token
// source. Most consumers import hubclient to construct a client and then use
// the interfaces declared here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ps2hub/pkg/hub"
//	  "github.com/fivetwenty-io/ps2hub/pkg/hubclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := hubclient.New(ctx, &hub.Config{BaseURL: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  featured, err := cli.Games().Featured(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = featured.Data
//	}
//
// # Request options
//
// Every operation takes a *RequestOptions, which may be nil. SubEndpoint
// replaces the "/{id}" suffix, Params become the query string, RequiresAuth
// attaches the bearer token and ResponseType selects how the body is exposed
// in the Result:
//
//	opts := hub.NewRequestOptions().WithAuth().WithParam("page", "2")
//	games, err := cli.Games().Find(ctx, opts)
//
// File uploads use a Form as the request body:
//
//	form := hub.NewForm().AddField("title", "Pong").AddFileBytes("cover", "cover.png", "image/png", png)
//	created, err := cli.Games().Create(ctx, form, hub.NewRequestOptions().WithAuth())
//
// # Errors
//
// Each resource client passes every failure through its ErrorHandler. The
// default handler returns an *Error whose Kind is one of transport, status or
// invalid_response. Helpers such as IsNotFound, IsUnauthorized and KindOf
// branch on it without string matching.
//
// # Interceptors and caching
//
// An InterceptorChain runs around every request; LoggingInterceptor,
// HeaderInterceptor, RequestIDInterceptor and the MetricsCollector pair are
// provided. A Cache (MemoryCache, NATSKVCache, or a CacheChain of both) can
// store unauthenticated GET responses.
package hub
