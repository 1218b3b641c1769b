package favorites_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/popkornpick/internal/favorites"
)

func TestBadgerStore_GetMissing(t *testing.T) {
	s, err := favorites.OpenInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(favorites.Key)
	assert.ErrorIs(t, err, favorites.ErrKeyNotFound)
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	s, err := favorites.OpenInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(favorites.Key, []byte(`[1,2]`)))
	v, err := s.Get(favorites.Key)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(v))

	require.NoError(t, s.Set(favorites.Key, []byte(`[]`)))
	v, err = s.Get(favorites.Key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "favorites")

	s, err := favorites.Open(dir, nil)
	require.NoError(t, err)
	m := favorites.NewManager(s, nil)
	m.Load()
	m.Toggle(10)
	m.Toggle(20)
	require.NoError(t, s.Close())

	s, err = favorites.Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []int{10, 20}, favorites.NewManager(s, nil).Load())
}
