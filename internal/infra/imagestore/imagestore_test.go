package imagestore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore("http://localhost:8080/api/v1/images/")
	ctx := context.Background()

	stored, err := store.Put(ctx, "wardrobe/1/items/a.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api/v1/images/wardrobe/1/items/a.png", stored.URL)
	require.Equal(t, int64(9), stored.Size)
	require.NotEmpty(t, stored.ETag)

	reader, mimeType, err := store.Get(ctx, "wardrobe/1/items/a.png")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
	require.Equal(t, "image/png", mimeType)

	require.NoError(t, store.Delete(ctx, "wardrobe/1/items/a.png"))
	_, _, err = store.Get(ctx, "wardrobe/1/items/a.png")
	require.ErrorIs(t, err, wardrobe.ErrImageNotFound)
}

func TestPublicURLAndKeyFromURL(t *testing.T) {
	url := PublicURL("https://cdn.example.com/", "/wardrobe/1/base/x.jpg")
	require.Equal(t, "https://cdn.example.com/wardrobe/1/base/x.jpg", url)

	key, ok := KeyFromURL("https://cdn.example.com", url)
	require.True(t, ok)
	require.Equal(t, "wardrobe/1/base/x.jpg", key)

	_, ok = KeyFromURL("https://cdn.example.com", "https://elsewhere.com/x.jpg")
	require.False(t, ok)
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"https://acct.r2.cloudflarestorage.com": "acct.r2.cloudflarestorage.com",
		"http://localhost:9000/bucket":          "localhost:9000",
		"  minio:9000 ":                         "minio:9000",
		"":                                      "",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeEndpoint(in), in)
	}
}
