package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/startupathon-api/pkg/config"
)

func TestMinIOStorageURLs(t *testing.T) {
	s, err := newMinIOStorage(config.MinIOConfig{
		Endpoint: "localhost:9000",
		Bucket:   "media",
		Folder:   "/startupathon/",
	})
	require.NoError(t, err)

	key, err := s.objectKey("challenges/challenge 1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "startupathon/challenges/challenge 1.jpg", key)

	ref := s.urlFor(key)
	assert.Equal(t, "http://localhost:9000/media/startupathon/challenges/challenge%201.jpg", ref)

	back, ok := s.keyFromRef(ref)
	require.True(t, ok)
	assert.Equal(t, key, back)

	_, ok = s.keyFromRef("/uploads/challenges/a.jpg")
	assert.False(t, ok)
}

func TestMinIOStoragePublicURL(t *testing.T) {
	s, err := newMinIOStorage(config.MinIOConfig{
		Endpoint:  "minio:9000",
		UseSSL:    true,
		Bucket:    "media",
		PublicURL: "https://cdn.example/media/",
	})
	require.NoError(t, err)

	key, err := s.objectKey("completers/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/media/completers/a.png", s.urlFor(key))

	_, err = s.objectKey("../a.png")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
