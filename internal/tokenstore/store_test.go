package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasora/console-go/internal/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFile(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	saved := &Saved{
		Tokens:   models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "Bearer"},
		TenantID: "t-1",
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", loaded.Tokens.AccessToken)
	assert.Equal(t, "ref", loaded.Tokens.RefreshToken)
	assert.Equal(t, "t-1", loaded.TenantID)
	assert.False(t, loaded.SavedAt.IsZero())

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	require.NoError(t, store.Clear(), "clearing an empty store is fine")
}

func TestFileStoreEmptyPairTreatedAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFile(path)

	require.NoError(t, store.Save(&Saved{}))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTokens)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemory()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)

	original := &Saved{Tokens: models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	loaded.Tokens.AccessToken = "mutated"

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", again.Tokens.AccessToken, "callers get copies")

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoTokens)
}
