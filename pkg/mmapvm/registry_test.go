package mmapvm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_OpenReturnsSameManagerForSamePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")

	r := NewRegistry(4)
	defer r.CloseAll()

	m1, err := r.Open(path, CreateOptions{})
	require.NoError(t, err)

	m2, err := r.Open(path, CreateOptions{})
	require.NoError(t, err)

	require.Same(t, m1, m2)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_EvictsLeastRecentlyUsedPastCapacity(t *testing.T) {
	dir := t.TempDir()

	r := NewRegistry(2)
	defer r.CloseAll()

	a, err := r.Open(filepath.Join(dir, "a.bin"), CreateOptions{})
	require.NoError(t, err)
	_, err = r.Open(filepath.Join(dir, "b.bin"), CreateOptions{})
	require.NoError(t, err)

	// Touch a again so b becomes the least recently used.
	_, err = r.Open(filepath.Join(dir, "a.bin"), CreateOptions{})
	require.NoError(t, err)

	_, err = r.Open(filepath.Join(dir, "c.bin"), CreateOptions{})
	require.NoError(t, err)

	require.Equal(t, 2, r.Len())
	require.True(t, a.IsAlive())
}

func TestRegistry_CloseRemovesEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")

	r := NewRegistry(4)
	defer r.CloseAll()

	m, err := r.Open(path, CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, r.Close(path))
	require.False(t, m.IsAlive())
	require.Equal(t, 0, r.Len())
}

func TestRegistry_CloseAllClosesEveryManager(t *testing.T) {
	dir := t.TempDir()

	r := NewRegistry(4)

	m1, err := r.Open(filepath.Join(dir, "a.bin"), CreateOptions{})
	require.NoError(t, err)
	m2, err := r.Open(filepath.Join(dir, "b.bin"), CreateOptions{})
	require.NoError(t, err)

	require.NoError(t, r.CloseAll())
	require.False(t, m1.IsAlive())
	require.False(t, m2.IsAlive())
	require.Equal(t, 0, r.Len())
}
