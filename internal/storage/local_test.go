package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return store
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store := newLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "events/cover.png", strings.NewReader("png-bytes"), "image/png"))

	exists, err := store.Exists(ctx, "events/cover.png")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, "events/cover.png")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestLocalStorageDelete(t *testing.T) {
	store := newLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "events/cover.png", strings.NewReader("x"), "image/png"))
	require.NoError(t, store.Delete(ctx, "events/cover.png"))

	exists, err := store.Exists(ctx, "events/cover.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is an error; callers decide whether that
	// matters.
	assert.Error(t, store.Delete(ctx, "events/cover.png"))
}

func TestLocalStorageURLs(t *testing.T) {
	store := newLocalStorage(t)
	ctx := context.Background()

	url, err := store.GetURL(ctx, "events/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/events/cover.png", url)

	signed, err := store.GetSignedURL(ctx, "events/cover.png", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, url, signed, "local backend has no signing, falls back to plain URL")
}
