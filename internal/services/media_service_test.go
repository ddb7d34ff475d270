package services

import (
	"context"
	"strings"
	"testing"

	"gathero_backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalMedia(t *testing.T) MediaService {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return NewMediaService(store, 3600, 15)
}

func TestMediaUploadGeneratesFreshKeys(t *testing.T) {
	media := newLocalMedia(t)
	ctx := context.Background()

	first, err := media.Upload(ctx, strings.NewReader("a"), "image/png")
	require.NoError(t, err)
	second, err := media.Upload(ctx, strings.NewReader("a"), "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "identical payloads must still get distinct keys")
	assert.True(t, strings.HasPrefix(first, "events/"))
	assert.True(t, strings.HasSuffix(first, ".png"))
}

func TestMediaRemoveIsBestEffort(t *testing.T) {
	media := newLocalMedia(t)
	ctx := context.Background()

	key, err := media.Upload(ctx, strings.NewReader("a"), "image/png")
	require.NoError(t, err)

	assert.True(t, media.Remove(ctx, key))
	assert.False(t, media.Remove(ctx, key), "second delete reports false, not an error")
	assert.False(t, media.Remove(ctx, ""))
}

func TestMediaSignedURL(t *testing.T) {
	media := newLocalMedia(t)
	ctx := context.Background()

	key := "events/cover.png"
	assert.Equal(t, "/api/v1/files/events/cover.png", media.SignedURL(ctx, &key))

	empty := ""
	assert.Equal(t, "", media.SignedURL(ctx, nil))
	assert.Equal(t, "", media.SignedURL(ctx, &empty))
}
