package objstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMem(t *testing.T) Store {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Driver:        "mem",
		PublicBaseURL: "http://storage.internal:9000/game-bundles/",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestUploadAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store := openMem(t)

	key := "pong/1.0.0/game.bundle.js"

	err := store.Upload(ctx, key, strings.NewReader("console.log('v1')"), "application/javascript")
	require.NoError(t, err)

	// Second upload at the same key replaces the object
	err = store.Upload(ctx, key, strings.NewReader("console.log('v2')"), "application/javascript")
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := openMem(t)

	key := "pong/1.0.0/game.bundle.js"
	require.NoError(t, store.Upload(ctx, key, strings.NewReader("bundle"), "application/javascript"))
	require.NoError(t, store.Delete(ctx, key))

	// Deleting an object that is already gone is not an error
	require.NoError(t, store.Delete(ctx, key))
}

func TestPublicURL(t *testing.T) {
	store := openMem(t)

	url := store.PublicURL("pong/1.0.0/game.bundle.js")
	assert.Equal(t, "http://storage.internal:9000/game-bundles/pong/1.0.0/game.bundle.js", url)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "ftp"})
	require.Error(t, err)
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pong/1.0.0/game.bundle.js", "pong/1.0.0/game.bundle.js"},
		{"/leading/slash", "leading/slash"},
		{"a/../../etc/passwd", "a/etc/passwd"},
		{"a//b/./c", "a/b/c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeKey(tt.in), "input %q", tt.in)
	}
}
