package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldLower(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Revenue", "revenue"},
		{"ÜBER Straße", "über straße"},
		{"ÀÉÎ", "àéî"},
		// Kelvin sign lowercases to a one-byte 'k' and is kept as is
		{"\u212Aelvin", "\u212Aelvin"},
		{"bad\xffbyte", "bad\xffbyte"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := foldLower(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.in))
		})
	}
}

func TestContextWindow(t *testing.T) {
	t.Run("short paragraph", func(t *testing.T) {
		p := "Revenue grew fast."
		assert.Equal(t, p, contextWindow(p, 0, 7))
	})

	t.Run("clipped on the left", func(t *testing.T) {
		p := strings.Repeat("x ", 30) + "target" + strings.Repeat(" y", 40)
		got := contextWindow(p, 60, 66)
		assert.Equal(t, "..."+p[10:116], got)
	})

	t.Run("exactly fifty characters before", func(t *testing.T) {
		p := strings.Repeat("x", 49) + " target"
		got := contextWindow(p, 50, 56)
		assert.Equal(t, p, got)
	})

	t.Run("counts runes", func(t *testing.T) {
		p := strings.Repeat("é", 51) + "hit"
		got := contextWindow(p, 102, 105)
		assert.Equal(t, "..."+strings.Repeat("é", 50)+"hit", got)
	})
}
