package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/templui/nocturne/internal/config"
)

func TestNew_WithoutBucket(t *testing.T) {
	_, err := New(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://avatars.s3.eu-central-1.amazonaws.com",
		PublicBaseURL(S3Config{Bucket: "avatars", Region: "eu-central-1"}))
	assert.Equal(t, "http://localhost:9000/avatars",
		PublicBaseURL(S3Config{Bucket: "avatars", Endpoint: "http://localhost:9000/"}))
}

func TestS3Storage_URLRoundTrip(t *testing.T) {
	s := &S3Storage{publicURL: "http://localhost:9000/avatars"}

	url := s.URL("public/avatars/a.png")
	assert.Equal(t, "http://localhost:9000/avatars/public/avatars/a.png", url)

	path, ok := s.Path(url)
	assert.True(t, ok)
	assert.Equal(t, "public/avatars/a.png", path)

	_, ok = s.Path("https://gravatar.com/avatar/x")
	assert.False(t, ok)
}
