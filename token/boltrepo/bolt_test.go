package boltrepo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-finance-client/internal/errors"
	"github.com/jrsteele09/go-finance-client/internal/seal"
	"github.com/jrsteele09/go-finance-client/token"
	"github.com/jrsteele09/go-finance-client/token/boltrepo"
	"github.com/jrsteele09/go-finance-client/users"
	"github.com/stretchr/testify/require"
)

func TestRepo_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")

	repo, err := boltrepo.NewFromFile(path, nil)
	require.NoError(t, err)
	store := token.NewStore(repo)
	require.NoError(t, store.SetTokens("access", "refresh"))
	require.NoError(t, store.SetUser(&users.User{ID: "1", Name: "A"}))
	require.NoError(t, repo.Close())

	repo, err = boltrepo.NewFromFile(path, nil)
	require.NoError(t, err)
	defer repo.Close()
	store = token.NewStore(repo)

	require.Equal(t, "access", store.AccessToken())
	require.Equal(t, "refresh", store.RefreshToken())
	u, ok := store.User()
	require.True(t, ok)
	require.Equal(t, "A", u.Name)
}

func TestRepo_MissingKey(t *testing.T) {
	repo, err := boltrepo.NewFromFile(filepath.Join(t.TempDir(), "tokens.db"), nil)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.Get("nope")
	require.ErrorIs(t, err, errors.ErrKeyNotFound)
	require.NoError(t, repo.Delete("nope"))
}

func TestRepo_SealedValuesAreNotPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")
	sealer, err := seal.New("passphrase")
	require.NoError(t, err)

	repo, err := boltrepo.NewFromFile(path, nil, boltrepo.WithSealer(sealer))
	require.NoError(t, err)
	require.NoError(t, repo.Put(token.KeyRefreshToken, "very-secret-refresh-token"))

	v, err := repo.Get(token.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "very-secret-refresh-token", v)
	require.NoError(t, repo.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, bytes.Contains(raw, []byte("very-secret-refresh-token")))
}
