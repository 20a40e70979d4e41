package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string   `json:"title" validate:"required"`
	Link  string   `json:"link" validate:"omitempty,url"`
	Tags  []string `json:"tags" validate:"min=1"`
	Name  string   `json:"name" validate:"min=2"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		err := ValidateStruct(sample{Title: "A", Tags: []string{"go"}, Name: "Al"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateStruct(sample{Link: "not a url", Name: "A"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
		assert.Contains(t, err.Error(), "link must be a valid URL")
		assert.Contains(t, err.Error(), "tags must contain at least 1 item(s)")
		assert.Contains(t, err.Error(), "name must be at least 2 characters")
	})
}

func TestParseLifetime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"3600", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLifetime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "xd", "soon"} {
		_, err := ParseLifetime(bad)
		assert.Error(t, err, bad)
	}
}
