package files_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toppingfrozen/ordertrack/internal/adapter/config"
	"github.com/toppingfrozen/ordertrack/internal/adapter/storage/files"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

func TestStore_SaveAndPath(t *testing.T) {
	dir := t.TempDir()
	store, err := files.NewStore(&config.Uploads{Dir: dir, MaxSizeBytes: 1024})
	require.NoError(t, err)

	content := "jpeg bytes"
	stored, err := store.Save("photo.JPG", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "receipt-"))
	assert.True(t, strings.HasSuffix(stored, ".jpg"))

	path, err := store.Path(stored)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestStore_SaveRejects(t *testing.T) {
	dir := t.TempDir()
	store, err := files.NewStore(&config.Uploads{Dir: dir, MaxSizeBytes: 16})
	require.NoError(t, err)

	_, err = store.Save("shell.sh", 4, strings.NewReader("boom"))
	assert.Equal(t, domain.ErrBadRequest, err)

	_, err = store.Save("big.jpg", 32, strings.NewReader(strings.Repeat("a", 32)))
	assert.Equal(t, domain.ErrBadRequest, err)

	_, err = store.Save("empty.jpg", 0, strings.NewReader(""))
	assert.Equal(t, domain.ErrBadRequest, err)
}

func TestStore_PathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := files.NewStore(&config.Uploads{Dir: dir, MaxSizeBytes: 1024})
	require.NoError(t, err)

	_, err = store.Path("../secrets.txt")
	assert.Equal(t, domain.ErrBadRequest, err)

	_, err = store.Path(filepath.Join("sub", "file.jpg"))
	assert.Equal(t, domain.ErrBadRequest, err)

	_, err = store.Path("missing.jpg")
	assert.Equal(t, domain.ErrDataNotFound, err)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := files.NewStore(&config.Uploads{Dir: dir, MaxSizeBytes: 1024})
	require.NoError(t, err)

	stored, err := store.Save("photo.png", 3, strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(stored))

	_, err = store.Path(stored)
	assert.Equal(t, domain.ErrDataNotFound, err)
}
