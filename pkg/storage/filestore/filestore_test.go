package filestore_test

import (
	"builtat/pkg/storage"
	"builtat/pkg/storage/filestore"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissing(t *testing.T) {
	s, err := filestore.New(t.TempDir(), "builtAtSubdomains")
	require.NoError(t, err)

	data, found, err := s.Load(context.Background())
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, data)
}

func TestStore_StoreAndReplace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	s, err := filestore.New(dir, "builtAtSubdomains")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "builtAtSubdomains.json"), s.Path())

	ctx := context.Background()
	require.NoError(t, s.Store(ctx, []byte(`[{"name":"Api","url":"https://api.built.at"}]`)))
	require.NoError(t, s.Store(ctx, []byte(`[]`)))

	data, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[]`, string(data))

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNew_InvalidName(t *testing.T) {
	for _, name := range []string{"", " ", "..", "a/b", `a\b`} {
		_, err := filestore.New(t.TempDir(), name)
		require.ErrorIs(t, err, storage.ErrInvalidSlotName, "name %q", name)
	}
}
