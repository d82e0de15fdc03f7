package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int64
		wantErr bool
	}{
		{name: "valid id", path: "/articles/123", want: 123},
		{name: "not a number", path: "/articles/abc", wantErr: true},
		{name: "zero", path: "/articles/0", wantErr: true},
		{name: "negative", path: "/articles/-5", wantErr: true},
		{name: "empty", path: "/articles/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.path, "/articles/")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/articles/123", "/articles/:id"},
		{"/articles/456/", "/articles/:id"},
		{"/articles/123?fields=title", "/articles/:id"},
		{"/articles", "/articles"},
		{"/articles?q=rates", "/articles"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}
