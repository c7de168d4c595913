package opener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenURL(t *testing.T) {
	var opened []string
	o := NewWithFunc(func(target string) error {
		opened = append(opened, target)
		return nil
	})

	tests := []struct {
		url string
		ok  bool
	}{
		{"https://example.com/report", true},
		{"http://127.0.0.1:17890", true},
		{"mailto:support@example.com", true},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"ftp://example.com", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		err := o.OpenURL(tt.url)
		if tt.ok {
			assert.NoError(t, err, tt.url)
		} else {
			assert.Error(t, err, tt.url)
		}
	}

	require.Equal(t, []string{
		"https://example.com/report",
		"http://127.0.0.1:17890",
		"mailto:support@example.com",
	}, opened)
}
