package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

// NewTestClient creates a client for baseURL with a static token.
func NewTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()

	client, err := New(&hub.Config{BaseURL: baseURL, AccessToken: token})
	require.NoError(t, err)

	return client
}

// TestOperation is one request/response round trip against a stub server.
type TestOperation struct {
	Name           string
	ExpectedMethod string
	ExpectedPath   string
	ExpectedQuery  string
	// ExpectAuth requires "Authorization: Bearer test-token".
	ExpectAuth bool
	// ExpectBody is compared as JSON when set.
	ExpectBody string
	StatusCode int
	Response   string
	WantErr    bool
	WantKind   hub.ErrorKind
	// Call runs the operation and returns its decoded data.
	Call func(context.Context, *Client) (interface{}, error)
	// Check inspects the decoded data of a successful call.
	Check func(*testing.T, interface{})
}

// RunOperationTests runs each operation against its own server.
func RunOperationTests(t *testing.T, tests []TestOperation) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedMethod, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, testCase.ExpectedQuery, request.URL.RawQuery)

				if testCase.ExpectAuth {
					assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
				} else {
					assert.Empty(t, request.Header.Get("Authorization"))
				}

				if testCase.ExpectBody != "" {
					body, err := io.ReadAll(request.Body)
					assert.NoError(t, err)
					assert.JSONEq(t, testCase.ExpectBody, string(body))
				}

				writer.Header().Set("Content-Type", "application/json")

				status := testCase.StatusCode
				if status == 0 {
					status = http.StatusOK
				}

				writer.WriteHeader(status)
				_, _ = io.WriteString(writer, testCase.Response)
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL, "test-token")

			data, err := testCase.Call(context.Background(), client)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.WantKind != "" {
					assert.Equal(t, testCase.WantKind, hub.KindOf(err))
				}

				return
			}

			require.NoError(t, err)

			if testCase.Check != nil {
				testCase.Check(t, data)
			}
		})
	}
}

// dataOf adapts a typed operation to TestOperation.Call.
func dataOf[R any](result *hub.Result[R], err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}
