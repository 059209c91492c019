package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/ps2hub/pkg/forms"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	var (
		nilPointer *string
		nilMap     map[string]string
		nilSlice   []string
	)

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"typed nil pointer", nilPointer, false},
		{"nil map", nilMap, false},
		{"nil slice", nilSlice, false},
		{"empty string", "", true},
		{"zero", 0, true},
		{"false", false, true},
		{"empty slice", []string{}, true},
		{"value", "Pong", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, forms.Required(tt.value))
		})
	}
}

func TestLengthPredicates(t *testing.T) {
	t.Parallel()

	atLeast3 := forms.MinLength(3)
	atMost5 := forms.MaxLength(5)

	assert.False(t, atLeast3("ab"))
	assert.True(t, atLeast3("abc"))
	assert.True(t, atLeast3("ção"), "counts runes, not bytes")
	assert.True(t, atMost5("hello"))
	assert.False(t, atMost5("hello!"))
	assert.True(t, atMost5("ééééé"))
	assert.True(t, forms.MinLength(0)(""))
}
