package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, 0, c.Count(""))
	assert.Greater(t, c.Count("Hello, world!"), 0)

	short := c.Count("The policy covers hospitalisation.")
	long := c.Count(strings.Repeat("The policy covers hospitalisation. ", 20))
	assert.Greater(t, long, short)
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
		{"привет", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Estimate(tt.text), "text length %d", len(tt.text))
		assert.Equal(t, tt.want, Estimator{}.Count(tt.text))
	}
}
