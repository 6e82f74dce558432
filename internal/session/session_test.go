package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken() *Token {
	return &Token{Cookies: []Cookie{
		{Name: "nauk_at", Value: "abc123", Domain: ".naukri.com", Path: "/", HTTPOnly: true, Secure: true},
		{Name: "nauk_rt", Value: "def456", Domain: ".naukri.com"},
	}}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(KeyGeneral, testToken()))

	loaded, err := store.Load(KeyGeneral)
	require.NoError(t, err)
	assert.Equal(t, testToken(), loaded)
}

func TestFileStoreSegmentsAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(KeyGeneral, testToken()))

	_, err = store.Load(KeyMNC)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreClear(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(KeyMNC, testToken()))
	require.NoError(t, store.Clear(KeyMNC))

	_, err = store.Load(KeyMNC)
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing again is not an error.
	assert.NoError(t, store.Clear(KeyMNC))
}

func TestEnsureReusesStoredSession(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(KeyGeneral, testToken()))

	loginCalls := 0
	token, err := Ensure(context.Background(), store, KeyGeneral, func(context.Context) (*Token, error) {
		loginCalls++
		return nil, errors.New("should not be called")
	})
	require.NoError(t, err)
	assert.Zero(t, loginCalls, "a present token is trusted without login")
	assert.Equal(t, testToken(), token)
}

func TestEnsureLogsInAndPersists(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	loginCalls := 0
	token, err := Ensure(context.Background(), store, KeyMNC, func(context.Context) (*Token, error) {
		loginCalls++
		return testToken(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loginCalls)
	assert.Equal(t, testToken(), token)

	saved, err := store.Load(KeyMNC)
	require.NoError(t, err)
	assert.Equal(t, testToken(), saved)
}

func TestEnsureLoginFailureIsFatal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = Ensure(context.Background(), store, KeyGeneral, func(context.Context) (*Token, error) {
		return nil, errors.New("captcha wall")
	})
	assert.ErrorContains(t, err, "interactive login failed")
}
