package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

func TestConfigStore_LoadDefaultsWhenMissing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestConfigStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg := domain.DefaultConfig()
	cfg.ChunkSize = 256
	cfg.EmbeddingModel = "text-embedding-3-small"
	cfg.EmbeddingDimensions = 1536

	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 256, loaded.ChunkSize)
	assert.Equal(t, "text-embedding-3-small", loaded.EmbeddingModel)
	assert.Equal(t, 1536, loaded.EmbeddingDimensions)
}

func TestConfigStore_RejectsInvalidSave(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg := domain.DefaultConfig()
	cfg.ChunkSize = 0

	assert.ErrorIs(t, store.Save(cfg), domain.ErrInvalidInput)
}

func TestConfigStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o600))

	_, err = store.Load()
	assert.Error(t, err)
}
