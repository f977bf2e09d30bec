package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nammacity/city-buddy-api/models"
	"github.com/nammacity/city-buddy-api/storage"
)

// pngHeader is enough for content type sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestValidateImage(t *testing.T) {
	ct, err := storage.ValidateImage(pngHeader)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	ct, err = storage.ValidateImage(jpeg)
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	gif := []byte("GIF89a\x01\x00\x01\x00")
	ct, err = storage.ValidateImage(gif)
	assert.NoError(t, err)
	assert.Equal(t, "image/gif", ct)
}

func TestValidateImage_Rejects(t *testing.T) {
	_, err := storage.ValidateImage(nil)
	assert.ErrorIs(t, err, storage.ErrEmptyBlob)

	oversized := make([]byte, storage.MaxBlobSize+1)
	copy(oversized, pngHeader)
	_, err = storage.ValidateImage(oversized)
	assert.ErrorIs(t, err, storage.ErrBlobTooLarge)

	_, err = storage.ValidateImage([]byte("just some text, not an image"))
	assert.ErrorIs(t, err, storage.ErrUnsupportedFormat)
}

func TestTieredBlobStore_PutLocal(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewTieredBlobStore("", dir)
	assert.NoError(t, err)
	assert.False(t, store.RemoteAvailable())

	ref, tier, err := store.Put(context.Background(), pngHeader)
	assert.NoError(t, err)
	assert.Equal(t, models.TierLocal, tier)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	// the reference resolves to the exact bytes that went in
	data, err := os.ReadFile(ref)
	assert.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestTieredBlobStore_PutRejectsBadImage(t *testing.T) {
	store, err := storage.NewTieredBlobStore("", t.TempDir())
	assert.NoError(t, err)

	_, _, err = store.Put(context.Background(), []byte("nope"))
	assert.ErrorIs(t, err, storage.ErrUnsupportedFormat)

	_, _, err = store.Put(context.Background(), nil)
	assert.ErrorIs(t, err, storage.ErrEmptyBlob)
}

func TestTieredBlobStore_DistinctReferences(t *testing.T) {
	store, err := storage.NewTieredBlobStore("", t.TempDir())
	assert.NoError(t, err)

	refA, _, err := store.Put(context.Background(), pngHeader)
	assert.NoError(t, err)
	refB, _, err := store.Put(context.Background(), pngHeader)
	assert.NoError(t, err)

	assert.NotEqual(t, refA, refB)
}
