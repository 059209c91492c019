package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ps2hub/internal/auth"
	"github.com/fivetwenty-io/ps2hub/internal/constants"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
	"github.com/fivetwenty-io/ps2hub/pkg/hubclient"
)

// CreateClient builds an API client from the CLI configuration. The stored
// login token is read from the config file on every authenticated call; a
// --token flag or PS2HUB_TOKEN replaces it.
func CreateClient(ctx context.Context) (hub.Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	hubConfig, err := buildHubConfig(config)
	if err != nil {
		return nil, err
	}

	client, err := hubclient.New(ctx, hubConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, nil
}

func buildHubConfig(config *Config) (*hub.Config, error) {
	if config.API == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	verbose := viper.GetBool("verbose")

	hubConfig := &hub.Config{
		BaseURL:     config.API,
		CookieName:  config.CookieName,
		HTTPTimeout: constants.DefaultHTTPTimeout,
		RetryMax:    config.Retries,
		Logger:      NewLogger(os.Stderr, verbose),
		Debug:       verbose,
		RequestIDs:  true,
	}

	if token := viper.GetString("token"); token != "" {
		hubConfig.AccessToken = token
	} else {
		path, err := configFilePath()
		if err != nil {
			return nil, err
		}

		hubConfig.TokenSource = auth.NewConfigTokenSource(NewConfigPersister(path), config.API)
	}

	cache, err := buildCache(config)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		hubConfig.Cache = cache
		hubConfig.CacheTTL = constants.DefaultCacheTTL
	}

	return hubConfig, nil
}

// buildCache returns nil when caching is off. The NATS backend sits behind
// a memory layer so repeated reads in one run stay local.
func buildCache(config *Config) (hub.Cache, error) {
	switch hub.CacheType(config.Cache) {
	case "", hub.CacheTypeNone:
		return nil, nil
	case hub.CacheTypeMemory:
		return hub.NewCacheBuilder().WithMemoryConfig(constants.DefaultCacheSize).Build()
	case hub.CacheTypeNATS:
		shared, err := hub.NewCacheBuilder().
			WithType(hub.CacheTypeNATS).
			WithNATSConfig(&hub.NATSKVConfig{
				URL:    config.NATSURL,
				Bucket: constants.DefaultNATSBucket,
				TTL:    constants.DefaultCacheTTL,
			}).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to open shared cache: %w", err)
		}

		return hub.NewCacheChain(hub.NewMemoryCache(constants.DefaultCacheSize), shared), nil
	default:
		return nil, fmt.Errorf("%w: %s", hub.ErrUnsupportedCacheType, config.Cache)
	}
}
