package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/internal/client"
	hubhttp "github.com/fivetwenty-io/ps2hub/internal/http"
	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// countingHandler records every error it sees.
type countingHandler struct {
	calls atomic.Int32
	ops   []string
	errs  []error
}

func (h *countingHandler) handle(op string, err error) error {
	h.calls.Add(1)
	h.ops = append(h.ops, op)
	h.errs = append(h.errs, err)

	return err
}

func newRaw(t *testing.T, baseURL string, source hub.TokenSource, handler hub.ErrorHandler) *client.Resource[json.RawMessage, json.RawMessage] {
	t.Helper()

	return client.NewResource[json.RawMessage, json.RawMessage](hubhttp.NewClient(baseURL, source), "/games", handler)
}

func TestResource_FeaturedEndToEnd(t *testing.T) {
	t.Parallel()

	const body = `[{"id":1,"title":"Pong","featured":true}]`

	var gotURL string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotURL = request.Method + " " + request.URL.String()
		_, _ = io.WriteString(writer, body)
	}))
	defer server.Close()

	resource := newRaw(t, server.URL, nil, nil)

	result, err := resource.Find(context.Background(), &hub.RequestOptions{SubEndpoint: "/featured"})
	require.NoError(t, err)
	assert.Equal(t, "GET /games/featured", gotURL)
	assert.Equal(t, server.URL+"/games/featured", resource.URL(&hub.RequestOptions{SubEndpoint: "/featured"}))
	assert.JSONEq(t, body, string(result.Data))
	assert.Equal(t, body, string(result.Raw))
}

func TestResource_AuthHeaderPresence(t *testing.T) {
	t.Parallel()

	var seen []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = append(seen, request.Header.Get("Authorization"))
		_, _ = io.WriteString(writer, `{}`)
	}))
	defer server.Close()

	tokenReads := 0
	source := hub.TokenSourceFunc(func(context.Context) (string, bool) {
		tokenReads++

		return "rotating-" + strconv.Itoa(tokenReads), true
	})

	resource := newRaw(t, server.URL, source, nil)
	ctx := context.Background()

	_, err := resource.FindByID(ctx, 1, hub.NewRequestOptions().WithAuth())
	require.NoError(t, err)
	_, err = resource.FindByID(ctx, 1, nil)
	require.NoError(t, err)
	_, err = resource.FindByID(ctx, 1, &hub.RequestOptions{RequiresAuth: false})
	require.NoError(t, err)
	_, err = resource.FindByID(ctx, 1, hub.NewRequestOptions().WithAuth())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer rotating-1", "", "", "Bearer rotating-2"}, seen)
	assert.Equal(t, 2, tokenReads, "token is read only for authenticated calls")
}

func TestResource_ResponseValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		responseType hub.ResponseType
		invalid      bool
	}{
		{"null", "null", hub.ResponseTypeJSON, true},
		{"null with whitespace", " null\n", hub.ResponseTypeJSON, true},
		{"zero", "0", hub.ResponseTypeJSON, false},
		{"false", "false", hub.ResponseTypeJSON, false},
		{"empty string", `""`, hub.ResponseTypeJSON, false},
		{"empty body", "", hub.ResponseTypeJSON, false},
		{"object", `{"id":3}`, hub.ResponseTypeJSON, false},
		{"null as text", "null", hub.ResponseTypeText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				_, _ = io.WriteString(writer, tt.body)
			}))
			defer server.Close()

			handler := &countingHandler{}
			resource := newRaw(t, server.URL, nil, handler.handle)

			_, err := resource.FindByID(context.Background(), 3, &hub.RequestOptions{ResponseType: tt.responseType})

			if tt.invalid {
				require.ErrorIs(t, err, hub.ErrInvalidResponse)
				assert.Equal(t, int32(1), handler.calls.Load())
				assert.Equal(t, []string{http.MethodGet}, handler.ops)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int32(0), handler.calls.Load())
		})
	}
}

func TestResource_TypedDecoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, `{"id":9,"title":"Hello PS2","code":"printf(\"hi\");","language":"c"}`)
	}))
	defer server.Close()

	snippets := client.NewSnippetsClient(hubhttp.NewClient(server.URL, nil), nil)

	result, err := snippets.FindByID(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.Data.ID)
	assert.Equal(t, "c", result.Data.Language)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestResource_ShapeMismatchIsInvalidResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, `{"id":"not a number"}`)
	}))
	defer server.Close()

	games := client.NewGamesClient(hubhttp.NewClient(server.URL, nil), nil)

	_, err := games.FindByID(context.Background(), 1, nil)
	require.Error(t, err)
	assert.Equal(t, hub.ErrorKindInvalidResponse, hub.KindOf(err))
}

func TestResource_ResponseTypes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, "# Markdown body")
	}))
	defer server.Close()

	resource := newRaw(t, server.URL, nil, nil)
	ctx := context.Background()

	text, err := resource.FindByID(ctx, 1, hub.NewRequestOptions().WithResponseType(hub.ResponseTypeText))
	require.NoError(t, err)
	assert.Equal(t, "# Markdown body", text.Text())
	assert.Equal(t, "# Markdown body", string(text.Data))

	blob, err := resource.FindByID(ctx, 1, hub.NewRequestOptions().WithResponseType(hub.ResponseTypeArrayBuffer))
	require.NoError(t, err)
	assert.Equal(t, []byte("# Markdown body"), blob.Raw)

	stream, err := resource.FindByID(ctx, 1, hub.NewRequestOptions().WithResponseType(hub.ResponseTypeStream))
	require.NoError(t, err)

	defer stream.Close()

	data, err := io.ReadAll(stream.Stream)
	require.NoError(t, err)
	assert.Equal(t, "# Markdown body", string(data))

	_, err = resource.FindByID(ctx, 1, hub.NewRequestOptions().WithResponseType("document"))
	require.ErrorIs(t, err, hub.ErrInvalidResponseType)
}

func TestResource_RawResponseIntoStructData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, "# Markdown body")
	}))
	t.Cleanup(server.Close)

	for _, responseType := range []hub.ResponseType{hub.ResponseTypeText, hub.ResponseTypeBlob, hub.ResponseTypeArrayBuffer} {
		t.Run(string(responseType), func(t *testing.T) {
			t.Parallel()

			handler := &countingHandler{}
			games := client.NewResource[hub.Game, hub.GamesList](hubhttp.NewClient(server.URL, nil), "/games", handler.handle)

			result, err := games.FindByID(context.Background(), 1, hub.NewRequestOptions().WithResponseType(responseType))
			require.ErrorIs(t, err, hub.ErrResponseTypeMismatch)
			assert.Nil(t, result)
			assert.Equal(t, hub.ErrorKindInvalidResponse, hub.KindOf(err))
			assert.Equal(t, int32(1), handler.calls.Load())
		})
	}
}

func TestResource_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	handler := &countingHandler{}
	resource := client.NewResource[json.RawMessage, json.RawMessage](hubhttp.NewClient(server.URL, nil), "", handler.handle)

	_, err := resource.Find(context.Background(), nil)
	require.ErrorIs(t, err, hub.ErrEndpointRequired)
	assert.Equal(t, int32(1), handler.calls.Load())
	assert.Zero(t, hits.Load())
}

func TestResource_StatusFailureHandledOnce(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(writer, `{"statusCode":404,"message":"Game not found"}`)
	}))
	defer server.Close()

	handler := &countingHandler{}
	resource := newRaw(t, server.URL, nil, handler.handle)

	_, err := resource.Delete(context.Background(), 404, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), handler.calls.Load())
	assert.Equal(t, []string{http.MethodDelete}, handler.ops)
	assert.True(t, hub.IsNotFound(err))
}

func TestResource_HandlerReturnValueIsSurfaced(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	errFriendly := errors.New("the hub is having trouble, try again later")
	resource := newRaw(t, server.URL, nil, func(op string, err error) error {
		return errFriendly
	})

	_, err := resource.Find(context.Background(), nil)
	require.ErrorIs(t, err, errFriendly)
}

func TestResource_Cancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-request.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	handler := &countingHandler{}
	classify := hub.NewErrorHandler("/games", nil)
	resource := newRaw(t, server.URL, nil, func(op string, err error) error {
		return classify(op, handler.handle(op, err))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := resource.Find(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, hub.ErrorKindTransport, hub.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), handler.calls.Load())
}

func TestResource_CreateMultipartWithAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/games", request.URL.Path)
		assert.Equal(t, "Bearer session-token", request.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data; boundary="))

		err := request.ParseMultipartForm(1 << 20)
		if !assert.NoError(t, err) {
			return
		}

		assert.Equal(t, "Pong", request.FormValue("title"))

		file, header, err := request.FormFile("coverImage")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()

		data, _ := io.ReadAll(file)
		assert.Equal(t, "cover.png", header.Filename)
		assert.Equal(t, "png-bytes", string(data))

		writer.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(writer, `{"id":77,"title":"Pong"}`)
	}))
	defer server.Close()

	games := client.NewGamesClient(hubhttp.NewClient(server.URL, hub.TokenSourceFunc(func(context.Context) (string, bool) {
		return "session-token", true
	})), nil)

	form := hub.NewForm().
		AddField("title", "Pong").
		AddFileBytes("coverImage", "cover.png", "image/png", []byte("png-bytes"))

	result, err := games.Create(context.Background(), form, &hub.RequestOptions{
		RequiresAuth:  true,
		CustomHeaders: map[string]string{"Content-Type": "multipart/form-data"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, int64(77), result.Data.ID)
}

func TestResource_GetAndDeleteSendNoBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		assert.Empty(t, body, request.Method)
		assert.Empty(t, request.Header.Get("Content-Type"), request.Method)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resource := newRaw(t, server.URL, nil, nil)
	ctx := context.Background()

	_, err := resource.Find(ctx, nil)
	require.NoError(t, err)

	deleted, err := resource.Delete(ctx, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, deleted.StatusCode)
	assert.Empty(t, deleted.Data)
}

func TestResource_DoesNotMutateOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, `[]`)
	}))
	defer server.Close()

	games := client.NewGamesClient(hubhttp.NewClient(server.URL, nil), nil)
	opts := hub.NewRequestOptions().WithParam("page", "1")

	_, err := games.Featured(context.Background(), opts)
	require.NoError(t, err)
	_, err = games.ByCreator(context.Background(), 4, opts)
	require.NoError(t, err)

	assert.Empty(t, opts.SubEndpoint)
	assert.False(t, opts.RequiresAuth)
}
