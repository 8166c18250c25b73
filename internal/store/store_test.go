package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Save("web", "default", `{"port":8080}`)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ConfigID)

	got, err := s.Load("web")
	require.NoError(t, err)
	assert.Equal(t, saved.ConfigID, got.ConfigID)
	assert.Equal(t, "default", got.Context)
	assert.Equal(t, `{"port":8080}`, got.Payload)
}

func TestSaveOverwritesKeepingIdentity(t *testing.T) {
	s := openTestStore(t)

	first, err := s.Save("web", "default", `{"port":8080}`)
	require.NoError(t, err)

	second, err := s.Save("web", "staging", `{"port":9090}`)
	require.NoError(t, err)
	assert.Equal(t, first.ConfigID, second.ConfigID)

	got, err := s.Load("web")
	require.NoError(t, err)
	assert.Equal(t, "staging", got.Context)
	assert.Equal(t, `{"port":9090}`, got.Payload)
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load("nope")
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestListOrderedByName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save("zeta", "default", `1`)
	require.NoError(t, err)
	_, err = s.Save("alpha", "default", `2`)
	require.NoError(t, err)

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "zeta", records[1].Name)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save("web", "default", `{}`)
	require.NoError(t, err)
	require.NoError(t, s.Delete("web"))

	_, err = s.Load("web")
	require.ErrorIs(t, err, ErrConfigNotFound)

	err = s.Delete("web")
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestClosedStore(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Save("web", "default", `{}`)
	require.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.Load("web")
	require.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.List()
	require.ErrorIs(t, err, ErrStoreClosed)
	require.ErrorIs(t, s.Delete("web"), ErrStoreClosed)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.Save("web", "default", `{"a":1}`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load("web")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got.Payload)
	assert.FileExists(t, filepath.Join(dir, DatabaseFile))
}
