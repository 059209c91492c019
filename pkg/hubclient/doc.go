// Package hubclient provides the primary entry point for constructing a
// PS2 Homebrew Hub API client that implements the hub.Client interface.
//
// It layers configuration defaults, HTTP transport and token lookup on top
// of the resource interfaces and types defined in the hub package. Most
// applications import hubclient to build a client, then use the returned
// hub.Client to reach resource clients such as Games(), Tutorials() or
// Submissions().
//
// Quick start
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
//
//	  // Base URL from PS2HUB_API_URL, no token.
//	  cli, err := hubclient.New(ctx, &hub.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token you already have:
//	  cli, err = hubclient.NewWithToken(ctx, "https://api.example.com", "eyJhbGciOi...")
//	  if err != nil { log.Fatal(err) }
//
//	  featured, err := cli.Games().Featured(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = featured.Data
//
//	  // Authenticated calls opt in per request.
//	  me, err := cli.Users().Me(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = me.Data.Username
//	}
//
// # Server-side use
//
// Without a token or cookie jar, the client reads the "token" cookie from the
// inbound request stored with hub.WithIncomingRequest, so an HTTP handler can
// forward its caller's session:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	  ctx := hub.WithIncomingRequest(r.Context(), r)
//	  me, err := cli.Users().Me(ctx, nil)
//	  ...
//	}
//
// # TLS and development mode
//
// For local development, you can set Config.SkipTLSVerify=true. This is gated
// by the environment variable PS2HUB_DEV_MODE to avoid accidental insecure
// usage in production environments.
package hubclient
