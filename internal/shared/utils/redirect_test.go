package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	allowed := []string{"https://widget.example.com", "http://localhost:5173/"}

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"empty", "", ""},
		{"relative path", "/settings?tab=tz", "/settings?tab=tz"},
		{"protocol relative", "//evil.example.com/x", ""},
		{"backslash trick", "/\\evil.example.com", ""},
		{"allowed origin", "https://widget.example.com/done", "https://widget.example.com/done"},
		{"allowed origin with trailing slash in config", "http://localhost:5173/cb", "http://localhost:5173/cb"},
		{"foreign origin", "https://evil.example.com/", ""},
		{"javascript scheme", "javascript:alert(1)", ""},
		{"bare word", "settings", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeRedirect(tt.target, allowed))
		})
	}
}
