package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/distribution/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageReference(t *testing.T) {
	sha := "sha256:" + strings.Repeat("a", 64)
	tests := []struct {
		name     string
		imageRef string
		wantName string
		wantRef  string
	}{
		{
			name:     "simple image with latest tag",
			imageRef: "myapp:latest",
			wantName: "myapp",
			wantRef:  "latest",
		},
		{
			name:     "simple image with custom tag",
			imageRef: "myapp:v1.0.0",
			wantName: "myapp",
			wantRef:  "v1.0.0",
		},
		{
			name:     "simple image with digest",
			imageRef: "myapp@" + sha,
			wantName: "myapp",
			wantRef:  sha,
		},
		{
			name:     "tag and digest keeps the digest",
			imageRef: "myapp:v1@" + sha,
			wantName: "myapp",
			wantRef:  sha,
		},
		{
			name:     "registry with image and tag",
			imageRef: "registry.example.com/myapp:latest",
			wantName: "registry.example.com/myapp",
			wantRef:  "latest",
		},
		{
			name:     "registry with port and image and tag",
			imageRef: "registry.example.com:5000/myapp:v1.0",
			wantName: "registry.example.com:5000/myapp",
			wantRef:  "v1.0",
		},
		{
			name:     "simple image without tag (defaults to latest)",
			imageRef: "myapp",
			wantName: "myapp",
			wantRef:  "latest",
		},
		{
			name:     "docker hub namespace",
			imageRef: "library/redis:7-alpine",
			wantName: "redis",
			wantRef:  "7-alpine",
		},
		{
			name:     "nested path image with tag",
			imageRef: "registry.example.com/path/to/myapp:latest",
			wantName: "registry.example.com/path/to/myapp",
			wantRef:  "latest",
		},
		{
			name:     "localhost registry with port",
			imageRef: "localhost:5000/myapp:latest",
			wantName: "localhost:5000/myapp",
			wantRef:  "latest",
		},
		{
			name:     "IP address registry with port",
			imageRef: "192.168.1.100:5000/myapp:latest",
			wantName: "192.168.1.100:5000/myapp",
			wantRef:  "latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotRef, err := ParseImageReference(tt.imageRef)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gotName, "name mismatch")
			assert.Equal(t, tt.wantRef, gotRef, "reference mismatch")
		})
	}
}

func TestValidateImageReference(t *testing.T) {
	sha := "sha256:" + strings.Repeat("a", 64)
	tests := []struct {
		name    string
		ref     string
		wantErr string
	}{
		{"bare name", "nginx", ""},
		{"name and tag", "nginx:latest", ""},
		{"numeric tag", "alpine:3.20", ""},
		{"namespaced", "library/redis:7-alpine", ""},
		{"registry with port", "registry.example.com:5000/myapp:v1.0", ""},
		{"localhost registry", "localhost/app", ""},
		{"digest", "alpine@" + sha, ""},
		{"uppercase tag allowed", "app:V1", ""},
		{"uppercase registry host allowed", "Registry.Example.com/app", ""},

		{"empty", "", "cannot be empty"},
		{"uppercase repository", "NGINX", "must be lowercase"},
		{"uppercase nested", "myorg/MyApp:v1", "must be lowercase"},
		{"leading separator", "-app", "invalid reference format"},
		{"trailing slash", "app/", "invalid reference format"},
		{"empty tag", "nginx:", "invalid reference format"},
		{"tag starts with dot", "nginx:.x", "invalid reference format"},
		{"tag too long", "nginx:" + strings.Repeat("a", 129), "invalid reference format"},
		{"short digest", "alpine@sha256:abc", "invalid reference format"},
		{"bad registry port", "registry.example.com:http/app", "invalid reference format"},
		{"too long", strings.Repeat("a", 513), "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageReference(tt.ref)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateImageReference_WrapsLibraryErrors(t *testing.T) {
	err := ValidateImageReference("nginx:")
	require.Error(t, err)
	assert.True(t, errors.Is(err, reference.ErrReferenceInvalidFormat))
	assert.Contains(t, err.Error(), `"nginx:"`)
}
