package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

func newTestGateway(t *testing.T, auth Authenticator, store Store) (*Gateway, *LocalStore) {
	t.Helper()
	local, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	g, err := NewGateway(auth, store, local, GatewayConfig{FetchTimeout: time.Second}, nil)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, local
}

func TestSignUpPersistsProfileBeforeReturning(t *testing.T) {
	store := NewMockStore()
	auth := &MockAuthenticator{}
	g, _ := newTestGateway(t, auth, store)

	p, err := g.SignUp(context.Background(), "ada@example.com", "secret1", "Ada", "Lovelace", "")

	require.NoError(t, err)
	assert.Equal(t, 1, store.Puts(), "profile write is awaited, not fire-and-forget")
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, model.DefaultCurrencyCode, p.Currency, "missing currency gets the default")

	stored, err := store.Get(context.Background(), p.UID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", stored.LastName)

	// The display-name update is the only fire-and-forget write.
	require.Eventually(t, func() bool {
		updates := auth.DisplayNameUpdates()
		return len(updates) == 1 && updates[0] == "Ada"
	}, time.Second, 10*time.Millisecond)
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		firstName string
		lastName  string
	}{
		{name: "missing email", password: "secret1", firstName: "Ada", lastName: "L"},
		{name: "missing password", email: "a@b.com", firstName: "Ada", lastName: "L"},
		{name: "missing first name", email: "a@b.com", password: "secret1", lastName: "L"},
		{name: "missing last name", email: "a@b.com", password: "secret1", firstName: "Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockStore()
			g, _ := newTestGateway(t, &MockAuthenticator{}, store)

			_, err := g.SignUp(context.Background(), tt.email, tt.password, tt.firstName, tt.lastName, "USD")

			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
			assert.Zero(t, store.Puts())
		})
	}
}

func TestSignUpFailsWhenProfileWriteFails(t *testing.T) {
	store := NewMockStore()
	store.PutErr = context.DeadlineExceeded
	g, _ := newTestGateway(t, &MockAuthenticator{}, store)

	_, err := g.SignUp(context.Background(), "a@b.com", "secret1", "Ada", "L", "USD")

	require.Error(t, err)
	assert.Nil(t, g.Current())
}

func TestSignInResolvesFromStore(t *testing.T) {
	store := NewMockStore()
	store.Seed(model.UserProfile{UID: "mock-uid", Email: "a@b.com", FirstName: "Ada", LastName: "L", Currency: "EUR"})
	g, _ := newTestGateway(t, &MockAuthenticator{}, store)

	p, err := g.SignIn(context.Background(), "a@b.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "EUR", p.Currency)
	require.NotNil(t, g.Current())
	assert.Equal(t, "mock-uid", g.Current().UID)
}

func TestSignInServesMemoryCacheWhenStoreDown(t *testing.T) {
	store := NewMockStore()
	store.Seed(model.UserProfile{UID: "mock-uid", Email: "a@b.com", FirstName: "Ada", Currency: "EUR"})
	g, _ := newTestGateway(t, &MockAuthenticator{}, store)

	_, err := g.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	// The store goes away; the cached profile still serves sign-in.
	store.GetErr = context.DeadlineExceeded

	p, err := g.SignIn(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
}

func TestSignInServesLocalStoreWhenStoreDown(t *testing.T) {
	store := NewMockStore()
	store.GetErr = context.DeadlineExceeded
	g, local := newTestGateway(t, &MockAuthenticator{}, store)

	require.NoError(t, local.Set(localKeyProfile, model.UserProfile{
		UID: "mock-uid", Email: "a@b.com", FirstName: "Ada", Currency: "GBP",
	}))

	p, err := g.SignIn(context.Background(), "a@b.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "GBP", p.Currency)
}

func TestSignInLocalStoreUIDMismatchIsSkipped(t *testing.T) {
	store := NewMockStore()
	store.GetErr = context.DeadlineExceeded
	auth := &MockAuthenticator{
		SignInFunc: func(_ context.Context, email, _ string) (Identity, error) {
			return Identity{UID: "other-uid", Email: email, DisplayName: "Grace Hopper"}, nil
		},
	}
	g, local := newTestGateway(t, auth, store)

	// Stale entry from a different account must not leak across users.
	require.NoError(t, local.Set(localKeyProfile, model.UserProfile{
		UID: "mock-uid", Email: "x@y.com", FirstName: "Ada",
	}))

	p, err := g.SignIn(context.Background(), "grace@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "Grace", p.FirstName, "falls through to the display-name profile")
	assert.Equal(t, "Hopper", p.LastName)
}

func TestSignInFallsBackToDisplayName(t *testing.T) {
	store := NewMockStore()
	store.GetErr = context.DeadlineExceeded
	auth := &MockAuthenticator{
		SignInFunc: func(_ context.Context, email, _ string) (Identity, error) {
			return Identity{UID: "mock-uid", Email: email, DisplayName: "Ada Lovelace"}, nil
		},
	}
	g, _ := newTestGateway(t, auth, store)

	p, err := g.SignIn(context.Background(), "a@b.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Lovelace", p.LastName)
	assert.Equal(t, model.DefaultCurrencyCode, p.Currency)

	// The derived profile is written back once the store recovers.
	store.GetErr = nil
	store.PutErr = nil
	require.Eventually(t, func() bool {
		return store.Puts() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestSignOutClearsCaches(t *testing.T) {
	store := NewMockStore()
	g, local := newTestGateway(t, &MockAuthenticator{}, store)

	p, err := g.SignUp(context.Background(), "a@b.com", "secret1", "Ada", "L", "USD")
	require.NoError(t, err)

	g.SignOut(p.UID)

	assert.Nil(t, g.Current())
	var stored model.UserProfile
	err = local.Get(localKeyProfile, &stored)
	assert.ErrorIs(t, err, common.ErrNotFound, "local profile entry is removed")
}

func TestSubscribeEmitsOnAuthChanges(t *testing.T) {
	store := NewMockStore()
	g, _ := newTestGateway(t, &MockAuthenticator{}, store)

	ch, cancel := g.Subscribe()
	defer cancel()

	// Subscribing emits the current state immediately.
	assert.Nil(t, <-ch)

	p, err := g.SignUp(context.Background(), "a@b.com", "secret1", "Ada", "L", "USD")
	require.NoError(t, err)

	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, p.UID, got.UID)

	g.SignOut(p.UID)
	assert.Nil(t, <-ch)
}

func TestUpdateCurrency(t *testing.T) {
	store := NewMockStore()
	g, _ := newTestGateway(t, &MockAuthenticator{}, store)

	p, err := g.SignUp(context.Background(), "a@b.com", "secret1", "Ada", "L", "USD")
	require.NoError(t, err)

	updated, err := g.UpdateCurrency(p, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
	require.NotNil(t, g.Current())
	assert.Equal(t, "EUR", g.Current().Currency)

	_, err = g.UpdateCurrency(p, "DOGE")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDarkModeRoundTrip(t *testing.T) {
	g, _ := newTestGateway(t, &MockAuthenticator{}, NewMockStore())

	assert.False(t, g.DarkMode(), "unset defaults to false")

	require.NoError(t, g.SetDarkMode(true))
	assert.True(t, g.DarkMode())

	require.NoError(t, g.SetDarkMode(false))
	assert.False(t, g.DarkMode())
}
