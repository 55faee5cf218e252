package profile

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateUserAndSignIn(t *testing.T) {
	auth, err := NewLocalAuthenticator(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	identity, err := auth.CreateUser(ctx, "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, identity.UID)
	assert.Equal(t, "ada@example.com", identity.Email, "emails normalize to lowercase")

	signedIn, err := auth.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, identity.UID, signedIn.UID)
}

func TestCreateUserValidation(t *testing.T) {
	auth, err := NewLocalAuthenticator(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = auth.CreateUser(ctx, "not-an-email", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = auth.CreateUser(ctx, "a@b.com", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrWeakPassword)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	auth, err := NewLocalAuthenticator(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = auth.CreateUser(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	_, err = auth.CreateUser(ctx, "a@b.com", "different1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmailInUse)
	assert.Equal(t, "This email is already registered", common.UserMessage(err))
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	auth, err := NewLocalAuthenticator(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = auth.CreateUser(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	// Wrong password and unknown email produce the same user message.
	_, wrongPw := auth.SignIn(ctx, "a@b.com", "wrong-password")
	_, unknown := auth.SignIn(ctx, "nobody@b.com", "secret1")

	for _, err := range []error{wrongPw, unknown} {
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		assert.Equal(t, "Login failed. Please check your credentials.", common.UserMessage(err))
	}
}

func TestUpdateDisplayName(t *testing.T) {
	auth, err := NewLocalAuthenticator(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	identity, err := auth.CreateUser(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, auth.UpdateDisplayName(ctx, identity.UID, "Ada"))

	signedIn, err := auth.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", signedIn.DisplayName)

	err = auth.UpdateDisplayName(ctx, "no-such-uid", "X")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	p := model.UserProfile{
		UID:       "u1",
		Email:     "a@b.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Currency:  "EUR",
	}
	require.NoError(t, store.Put(ctx, p))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "EUR", got.Currency)
	assert.False(t, got.LastUpdated.IsZero())
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store, err := NewSQLiteStore(newTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	p := model.UserProfile{UID: "u1", Email: "a@b.com", Currency: "USD"}
	require.NoError(t, store.Put(ctx, p))

	p.Currency = "INR"
	require.NoError(t, store.Put(ctx, p))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "INR", got.Currency)
}

func TestSQLiteStoreRejectsInvalidProfile(t *testing.T) {
	store, err := NewSQLiteStore(newTestDB(t))
	require.NoError(t, err)

	err = store.Put(context.Background(), model.UserProfile{UID: "", Email: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
