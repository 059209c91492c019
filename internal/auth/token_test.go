package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/internal/auth"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

func TestStaticSource(t *testing.T) {
	t.Parallel()

	token, ok := auth.StaticSource("abc").Token(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = auth.StaticSource("").Token(context.Background())
	assert.False(t, ok)
}

func TestCookieJarSource(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, err := url.Parse("https://api.example.com")
	require.NoError(t, err)

	source := auth.NewCookieJarSource(jar, "https://api.example.com", "")
	ctx := context.Background()

	_, ok := source.Token(ctx)
	assert.False(t, ok, "empty jar")

	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "first"}})

	token, ok := source.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "first", token)

	// Rotation is visible on the next call.
	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "second"}})

	token, _ = source.Token(ctx)
	assert.Equal(t, "second", token)
}

func TestCookieJarSource_CustomNameAndNilJar(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, _ := url.Parse("https://api.example.com")
	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "ignored"}, {Name: "session", Value: "s-1"}})

	token, ok := auth.NewCookieJarSource(jar, "https://api.example.com", "session").Token(context.Background())
	require.True(t, ok)
	assert.Equal(t, "s-1", token)

	_, ok = auth.NewCookieJarSource(nil, "https://api.example.com", "").Token(context.Background())
	assert.False(t, ok)

	_, ok = auth.NewCookieJarSource(jar, "://bad", "").Token(context.Background())
	assert.False(t, ok)
}

func TestIncomingRequestSource(t *testing.T) {
	t.Parallel()

	source := auth.NewIncomingRequestSource("")

	_, ok := source.Token(context.Background())
	assert.False(t, ok, "no request in context")

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "visitor-token"})

	token, ok := source.Token(hub.WithIncomingRequest(context.Background(), req))
	require.True(t, ok)
	assert.Equal(t, "visitor-token", token)

	bare := httptest.NewRequest(http.MethodGet, "/profile", nil)
	_, ok = source.Token(hub.WithIncomingRequest(context.Background(), bare))
	assert.False(t, ok)
}

type memoryStore struct {
	tokens map[string]string
	err    error
}

func (s *memoryStore) LoadToken(apiURL string) (string, error) {
	return s.tokens[apiURL], s.err
}

func (s *memoryStore) UpdateToken(apiURL, token string) error {
	s.tokens[apiURL] = token

	return nil
}

func TestConfigTokenSource(t *testing.T) {
	t.Parallel()

	store := &memoryStore{tokens: map[string]string{}}
	source := auth.NewConfigTokenSource(store, "https://api.example.com")
	ctx := context.Background()

	_, ok := source.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, source.Store("saved"))

	token, ok := source.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "saved", token)

	errBroken := errors.New("config unreadable")
	store.err = errBroken

	_, ok = source.Token(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, source.Err(), errBroken)
}

func TestConfigTokenSource_NoStore(t *testing.T) {
	t.Parallel()

	source := auth.NewConfigTokenSource(nil, "https://api.example.com")

	_, ok := source.Token(context.Background())
	assert.False(t, ok)
	require.ErrorIs(t, source.Store("x"), auth.ErrNoConfigPersister)
}
