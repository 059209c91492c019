package commands

import (
	"sync"

	"github.com/fivetwenty-io/ps2hub/internal/auth"
)

// ConfigPersister implements the auth.ConfigStore interface over the config
// file. Every call reads the file so a login from another shell is seen.
type ConfigPersister struct {
	path  string
	mutex sync.Mutex
}

var _ auth.ConfigStore = (*ConfigPersister)(nil)

// NewConfigPersister creates a new config persister for the file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// LoadToken returns the token saved for apiURL, or "".
func (p *ConfigPersister) LoadToken(apiURL string) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(p.path)
	if err != nil {
		return "", err
	}

	return config.Tokens[normalizeAPIURL(apiURL)], nil
}

// UpdateToken saves token for apiURL. An empty token removes the entry.
func (p *ConfigPersister) UpdateToken(apiURL, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(p.path)
	if err != nil {
		return err
	}

	key := normalizeAPIURL(apiURL)

	if token == "" {
		delete(config.Tokens, key)
	} else {
		if config.Tokens == nil {
			config.Tokens = make(map[string]string)
		}

		config.Tokens[key] = token
	}

	return writeConfigFile(p.path, config)
}
