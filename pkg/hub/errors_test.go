package hub_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ps2hub/pkg/hub"
)

func TestNewStatusError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"message string", `{"statusCode":404,"message":"Game not found"}`, "Game not found"},
		{"message list", `{"message":["title should not be empty","title too short"]}`, "title should not be empty; title too short"},
		{"error field", `{"error":"Unauthorized"}`, "Unauthorized"},
		{"plain text", "upstream unavailable\n", "upstream unavailable"},
		{"empty object", `{}`, ""},
		{"empty body", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := hub.NewStatusError(http.StatusNotFound, []byte(tt.body))
			assert.Equal(t, tt.expected, err.Message)
			assert.Equal(t, "Not Found", err.Status)
		})
	}
}

func TestStatusError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "request failed with status 403: Forbidden resource",
		hub.NewStatusError(http.StatusForbidden, []byte(`{"message":"Forbidden resource"}`)).Error())
	assert.Equal(t, "request failed with status 500",
		(&hub.StatusError{StatusCode: http.StatusInternalServerError}).Error())
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, hub.ErrorKindInvalidResponse, hub.ClassifyError(fmt.Errorf("GET: %w", hub.ErrInvalidResponse)))
	assert.Equal(t, hub.ErrorKindStatus, hub.ClassifyError(hub.NewStatusError(http.StatusBadRequest, nil)))
	assert.Equal(t, hub.ErrorKindTransport, hub.ClassifyError(context.Canceled))
	assert.Equal(t, hub.ErrorKindTransport, hub.ClassifyError(errors.New("dial tcp: connection refused")))
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	handler := hub.NewErrorHandler("/games", nil)
	cause := hub.NewStatusError(http.StatusNotFound, []byte(`{"message":"Game not found"}`))

	err := handler(http.MethodGet, cause)

	var hubErr *hub.Error
	require.ErrorAs(t, err, &hubErr)
	assert.Equal(t, http.MethodGet, hubErr.Op)
	assert.Equal(t, "/games", hubErr.Resource)
	assert.Equal(t, hub.ErrorKindStatus, hubErr.Kind)
	assert.Equal(t, http.StatusNotFound, hubErr.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "GET /games: status: request failed with status 404: Game not found", err.Error())

	assert.True(t, hub.IsNotFound(err))
	assert.False(t, hub.IsUnauthorized(err))
	assert.Equal(t, hub.ErrorKindStatus, hub.KindOf(err))
}

func TestNewErrorHandler_CustomClassifier(t *testing.T) {
	t.Parallel()

	handler := hub.NewErrorHandler("/submissions", func(error) hub.ErrorKind {
		return hub.ErrorKindTransport
	})

	err := handler(http.MethodPatch, hub.ErrInvalidResponse)
	assert.Equal(t, hub.ErrorKindTransport, hub.KindOf(err))
	assert.True(t, hub.IsInvalidResponse(err))
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, hub.IsUnauthorized(hub.NewStatusError(http.StatusUnauthorized, nil)))
	assert.True(t, hub.IsForbidden(fmt.Errorf("wrapped: %w", hub.NewStatusError(http.StatusForbidden, nil))))
	assert.Equal(t, 0, hub.StatusCodeOf(context.DeadlineExceeded))
	assert.Equal(t, hub.ErrorKind(""), hub.KindOf(nil))
	assert.Equal(t, hub.ErrorKindTransport, hub.KindOf(context.DeadlineExceeded))
}
