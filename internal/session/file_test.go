package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nocturne", "session.json")
	store := NewFileStore(path)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, state)

	expires := time.Date(2025, 3, 8, 22, 0, 0, 0, time.UTC)
	saved := &State{
		Token:     "tok-1",
		ExpiresAt: &expires,
		User:      &model.User{ID: "u1", Email: "owl@example.com"},
		Profile:   &model.Profile{ID: "u1"},
	}
	require.NoError(t, store.Save(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.True(t, expires.Equal(*loaded.ExpiresAt))
	assert.Equal(t, "owl@example.com", loaded.User.Email)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	state, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestFileStore_SaveNilClears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(&State{Token: "tok-1"}))

	require.NoError(t, store.Save(nil))

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()

	assert.ErrorContains(t, err, "corrupt session file")
}
