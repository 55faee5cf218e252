package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// DefaultFetchTimeout bounds the remote profile fetch during sign-in.
// Observed deployments ran 3-10s; the low end keeps sign-in snappy.
const DefaultFetchTimeout = 3 * time.Second

// GatewayConfig configures the gateway.
type GatewayConfig struct {
	// FetchTimeout bounds the remote profile fetch; zero means the default.
	FetchTimeout time.Duration
}

// Gateway fronts the identity provider and the profile store. Profile
// resolution goes memory cache, then durable local KV, then the remote
// store under a timeout, then a minimal profile derived from the identity's
// display name. All remote profile writes after signup are best-effort.
type Gateway struct {
	auth         Authenticator
	store        Store
	local        *LocalStore
	cache        *ristretto.Cache
	logger       *slog.Logger
	fetchTimeout time.Duration

	mu      sync.Mutex
	current *model.UserProfile
	subs    map[int]chan *model.UserProfile
	nextSub int
}

// NewGateway creates a gateway.
func NewGateway(auth Authenticator, store Store, local *LocalStore, cfg GatewayConfig, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Gateway{
		auth:         auth,
		store:        store,
		local:        local,
		cache:        cache,
		logger:       logger,
		fetchTimeout: timeout,
		subs:         make(map[int]chan *model.UserProfile),
	}, nil
}

// SignUp registers a new user. The profile document write is awaited: a
// successful return guarantees the profile is durably stored. Only the
// display-name update on the identity provider is fire-and-forget.
func (g *Gateway) SignUp(ctx context.Context, email, password, firstName, lastName, currency string) (model.UserProfile, error) {
	if strings.TrimSpace(email) == "" || password == "" ||
		strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return model.UserProfile{}, common.NewUserError("All fields are required", common.ErrInvalidInput)
	}
	if currency == "" {
		currency = model.DefaultCurrencyCode
	}

	identity, err := g.auth.CreateUser(ctx, email, password)
	if err != nil {
		return model.UserProfile{}, err
	}

	go func() {
		if err := g.auth.UpdateDisplayName(context.Background(), identity.UID, firstName); err != nil {
			g.logger.Warn("display name update failed", "uid", identity.UID, "error", err)
		}
	}()

	now := time.Now()
	p := model.UserProfile{
		UID:         identity.UID,
		Email:       identity.Email,
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		Currency:    currency,
		CreatedAt:   now,
		LastUpdated: now,
	}

	if err := g.store.Put(ctx, p); err != nil {
		return model.UserProfile{}, fmt.Errorf("profile write failed: %w", err)
	}

	g.cacheProfile(p)
	g.setCurrent(&p)
	return p, nil
}

// SignIn authenticates and resolves the user's profile through the cache
// layers.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (model.UserProfile, error) {
	identity, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		return model.UserProfile{}, err
	}

	p := g.resolveProfile(ctx, identity)
	g.setCurrent(&p)
	return p, nil
}

// SignOut clears both cache layers for uid and invalidates the active
// session if it belongs to uid.
func (g *Gateway) SignOut(uid string) {
	g.cache.Del(uid)

	var stored model.UserProfile
	if err := g.local.Get(localKeyProfile, &stored); err == nil && stored.UID == uid {
		if err := g.local.Delete(localKeyProfile); err != nil {
			g.logger.Warn("failed to clear local profile", "error", err)
		}
	}

	g.mu.Lock()
	active := g.current != nil && g.current.UID == uid
	g.mu.Unlock()
	if active {
		g.setCurrent(nil)
	}
}

// Current returns the signed-in profile, or nil.
func (g *Gateway) Current() *model.UserProfile {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil
	}
	p := *g.current
	return &p
}

// Subscribe returns a channel that receives the current profile (nil when
// signed out) immediately and on every auth-state change. The returned
// function cancels the subscription.
func (g *Gateway) Subscribe() (<-chan *model.UserProfile, func()) {
	ch := make(chan *model.UserProfile, 8)

	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	ch <- g.current
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if sub, ok := g.subs[id]; ok {
			delete(g.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// UpdateCurrency changes a user's currency preference. The remote write is
// best-effort; the cache layers update immediately.
func (g *Gateway) UpdateCurrency(p model.UserProfile, code string) (model.UserProfile, error) {
	if _, ok := model.LookupCurrency(code); !ok {
		return p, common.NewUserError("Unknown currency code", common.ErrInvalidInput)
	}

	p.Currency = code
	p.LastUpdated = time.Now()

	g.cacheProfile(p)

	g.mu.Lock()
	active := g.current != nil && g.current.UID == p.UID
	if active {
		g.current = &p
	}
	g.mu.Unlock()
	if active {
		g.notify(&p)
	}

	go func() {
		if err := g.store.Put(context.Background(), p); err != nil {
			g.logger.Warn("profile currency write failed", "uid", p.UID, "error", err)
		}
	}()
	return p, nil
}

// SetDarkMode persists the dark-mode flag in the durable local KV.
func (g *Gateway) SetDarkMode(enabled bool) error {
	return g.local.Set(localKeyDarkMode, enabled)
}

// DarkMode reads the dark-mode flag; absent means false.
func (g *Gateway) DarkMode() bool {
	var enabled bool
	if err := g.local.Get(localKeyDarkMode, &enabled); err != nil {
		return false
	}
	return enabled
}

// Close releases the in-memory cache.
func (g *Gateway) Close() {
	g.cache.Close()
}

// resolveProfile walks the cache layers for identity's profile. Every miss
// falls through to the next layer; the final fallback is a minimal profile
// built from the identity's display name, which is also written back to the
// store best-effort.
func (g *Gateway) resolveProfile(ctx context.Context, identity Identity) model.UserProfile {
	if value, ok := g.cache.Get(identity.UID); ok {
		if p, ok := value.(model.UserProfile); ok {
			return p
		}
	}

	var stored model.UserProfile
	if err := g.local.Get(localKeyProfile, &stored); err == nil && stored.UID == identity.UID {
		g.cache.Set(identity.UID, stored, 1)
		g.cache.Wait()
		return stored
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.fetchTimeout)
	defer cancel()

	p, err := g.store.Get(fetchCtx, identity.UID)
	if err == nil {
		g.cacheProfile(p)
		return p
	}

	if errors.Is(err, common.ErrNotFound) {
		g.logger.Info("no profile document, deriving minimal profile", "uid", identity.UID)
	} else {
		g.logger.Warn("profile fetch failed, deriving minimal profile", "uid", identity.UID, "error", err)
	}

	fallback := model.ProfileFromDisplayName(identity.UID, identity.Email, identity.DisplayName)
	g.cacheProfile(fallback)

	go func() {
		if err := g.store.Put(context.Background(), fallback); err != nil {
			g.logger.Warn("fallback profile write failed", "uid", fallback.UID, "error", err)
		}
	}()

	return fallback
}

// cacheProfile writes p to both cache layers.
func (g *Gateway) cacheProfile(p model.UserProfile) {
	g.cache.Set(p.UID, p, 1)
	g.cache.Wait()
	if err := g.local.Set(localKeyProfile, p); err != nil {
		g.logger.Warn("local profile write failed", "uid", p.UID, "error", err)
	}
}

// setCurrent swaps the active profile and notifies subscribers.
func (g *Gateway) setCurrent(p *model.UserProfile) {
	g.mu.Lock()
	g.current = p
	g.mu.Unlock()
	g.notify(p)
}

func (g *Gateway) notify(p *model.UserProfile) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, ch := range g.subs {
		select {
		case ch <- p:
		default:
			g.logger.Warn("auth-state subscriber too slow, dropping event", "subscriber", id)
		}
	}
}
