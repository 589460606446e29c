package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/lifexp/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type artifact struct {
	ID     string    `json:"id"`
	Values []float64 `json:"values"`
}

func newArtifact() artifact {
	return artifact{
		ID:     uuid.New().String(),
		Values: []float64{0.5, 1.5},
	}
}

func TestBlobStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	blob := NewJsonBlob(dir)

	k := storage.Key{Name: "model", Label: "latest"}
	a := newArtifact()
	require.NoError(t, blob.Store(k, a))

	_, err := os.Stat(filepath.Join(dir, "model_latest.json"))
	require.NoError(t, err)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	var loaded artifact
	require.NoError(t, blob.Load(k, &loaded))
	assert.Equal(t, a, loaded)

	err = blob.Load(storage.Key{Name: "other"}, &loaded)
	assert.ErrorIs(t, err, storage.NotFoundErr)
}

func TestBlobStorage_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.json"), []byte("{"), 0o644))

	var loaded artifact
	err := NewJsonBlob(dir).Load(storage.Key{Name: "model"}, &loaded)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}

func TestMemoryStorage(t *testing.T) {
	memory := NewMemoryStorage()
	k := storage.Key{Name: "model", Label: "latest"}
	a := newArtifact()
	require.NoError(t, memory.Store(k, a))

	var loaded artifact
	require.NoError(t, memory.Load(k, &loaded))
	assert.Equal(t, a, loaded)

	assert.ErrorIs(t, memory.Load(storage.Key{Name: "model"}, &loaded), storage.NotFoundErr)

	var wrong []int
	assert.ErrorIs(t, memory.Load(k, &wrong), storage.CouldNotLoadErr)
}

func TestVoidStorage(t *testing.T) {
	void := storage.NewVoidStorage()
	require.NoError(t, void.Store(storage.Key{Name: "model"}, newArtifact()))
	var loaded artifact
	assert.ErrorIs(t, void.Load(storage.Key{Name: "model"}, &loaded), storage.NotFoundErr)
}
