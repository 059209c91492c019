package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/ps2hub/pkg/forms"
)

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		score    int
		status   bool
	}{
		{"Ab1!efgh", 4, true},
		{"abc", 0, false},
		{"abcdefgh", 1, false},
		{"Abcdefgh", 2, false},
		{"Abcdefg1", 3, false},
		{"A1!", 2, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			t.Parallel()

			got := forms.CheckPassword(tt.password)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.status, got.Status)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCheckPassword_DenyList(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"Longitude753", "Password123!"} {
		got := forms.CheckPassword(password)
		assert.False(t, got.Status, password)
		assert.Zero(t, got.Score, password)
		assert.Equal(t, "This password is not allowed", got.Message)
	}

	assert.True(t, forms.CheckPassword("Longitude753!").Status, "only exact matches are denied")
}
