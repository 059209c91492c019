package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrNoConfigPersister is returned when a token is stored without a persister.
var ErrNoConfigPersister = errors.New("no config persister configured")

// ConfigStore loads and persists the token saved for an API.
type ConfigStore interface {
	LoadToken(apiURL string) (string, error)
	UpdateToken(apiURL, token string) error
}

// ConfigTokenSource reads the token saved for an API from the CLI config.
// It loads the store on every call so a login in another process is picked
// up without restarting.
type ConfigTokenSource struct {
	store  ConfigStore
	apiURL string
	mutex  sync.Mutex

	// lastErr is the most recent load failure, for diagnostics.
	lastErr error
}

// NewConfigTokenSource creates a source for apiURL backed by store.
func NewConfigTokenSource(store ConfigStore, apiURL string) *ConfigTokenSource {
	return &ConfigTokenSource{store: store, apiURL: apiURL}
}

// Token implements hub.TokenSource. A load failure is reported as no token.
func (s *ConfigTokenSource) Token(context.Context) (string, bool) {
	if s.store == nil {
		return "", false
	}

	token, err := s.store.LoadToken(s.apiURL)

	s.mutex.Lock()
	s.lastErr = err
	s.mutex.Unlock()

	if err != nil || token == "" {
		return "", false
	}

	return token, true
}

// Err returns the error of the last load, if any.
func (s *ConfigTokenSource) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lastErr
}

// Store saves token for the source's API.
func (s *ConfigTokenSource) Store(token string) error {
	if s.store == nil {
		return ErrNoConfigPersister
	}

	return s.store.UpdateToken(s.apiURL, token)
}
