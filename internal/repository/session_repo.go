package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type sessionRepo struct {
	store *kv.Store
	log   zerolog.Logger

	mu         sync.RWMutex
	user       *models.Account
	token      string
	registered []models.Account

	// loaded is false while registered_users could not be read
	loaded bool
}

// NewSessionRepo loads the persisted session and registered accounts
func NewSessionRepo(ctx context.Context, store *kv.Store, log zerolog.Logger) SessionRepository {
	r := &sessionRepo{
		store: store,
		log:   log.With().Str("component", "session_repo").Logger(),
	}

	var user models.Account
	if store.Get(ctx, kv.KeyUser, &user) {
		r.user = &user
	}
	r.token = kv.GetOr(ctx, store, kv.KeyToken, "")
	r.registered = []models.Account{}
	r.loadRegisteredLocked(ctx)
	return r
}

// loadRegisteredLocked reads registered_users. A missing or corrupt value
// counts as an empty list; a medium failure leaves the repo unloaded so the
// list is never overwritten without having been read.
func (r *sessionRepo) loadRegisteredLocked(ctx context.Context) error {
	var registered []models.Account
	found, err := r.store.Lookup(ctx, kv.KeyRegisteredUsers, &registered)
	if err != nil && !errors.Is(err, kv.ErrCorrupt) {
		r.log.Error().Err(err).Msg("Could not read registered accounts")
		return fmt.Errorf("registered accounts: %w", ErrStorageUnavailable)
	}
	if found && registered != nil {
		r.registered = registered
	}
	r.loaded = true
	return nil
}

// ensureLoadedLocked retries a failed startup read before a write
func (r *sessionRepo) ensureLoadedLocked(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	return r.loadRegisteredLocked(ctx)
}

func (r *sessionRepo) findLocked(username string) (models.Account, bool, bool) {
	for _, a := range SeedAccounts() {
		if a.Username == username {
			return a, true, true
		}
	}
	for _, a := range r.registered {
		if a.Username == username {
			return a, false, true
		}
	}
	return models.Account{}, false, false
}

// Register adds a user-role account. Ids continue after the highest
// seed or registered id.
func (r *sessionRepo) Register(ctx context.Context, cred models.Credentials) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	if err := r.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	if _, _, ok := r.findLocked(cred.Username); ok {
		return nil, fmt.Errorf("%q: %w", cred.Username, ErrUsernameTaken)
	}

	maxID := 0
	for _, a := range append(SeedAccounts(), r.registered...) {
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	email := cred.Email
	if email == "" {
		email = cred.Username + "@example.com"
	}
	account := models.Account{
		ID:       maxID + 1,
		Username: cred.Username,
		Password: cred.Password,
		Email:    email,
		Role:     models.RoleUser,
	}
	r.registered = append(r.registered, account)
	r.store.Set(ctx, kv.KeyRegisteredUsers, r.registered)

	r.log.Info().Str("username", account.Username).Int("id", account.ID).Msg("Account registered")
	public := account.Public()
	return &public, nil
}

// Login checks seed accounts first, then registered ones. A failed attempt
// leaves the current session untouched.
func (r *sessionRepo) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	// seed accounts still sign in when registered_users is unreadable
	_ = r.ensureLoadedLocked(ctx)
	account, _, ok := r.findLocked(username)
	if !ok || account.Password != password {
		return nil, "", ErrInvalidCredentials
	}

	user := account.Public()
	r.user = &user
	r.token = uuid.NewString()
	r.store.Set(ctx, kv.KeyUser, user)
	r.store.Set(ctx, kv.KeyToken, r.token)

	r.log.Info().Str("username", username).Msg("Logged in")
	out := user
	return &out, r.token, nil
}

// Logout always succeeds, even when no one is signed in
func (r *sessionRepo) Logout(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.user = nil
	r.token = ""
	ctx = context.WithoutCancel(ctx)
	r.store.Remove(ctx, kv.KeyUser)
	r.store.Remove(ctx, kv.KeyToken)
}

func (r *sessionRepo) ValidateToken() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token != ""
}

func (r *sessionRepo) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

func (r *sessionRepo) CurrentUser() (*models.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.user == nil {
		return nil, false
	}
	u := *r.user
	return &u, true
}

// ResetPassword changes the password of a registered account
func (r *sessionRepo) ResetPassword(ctx context.Context, username, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	if err := r.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	_, seeded, ok := r.findLocked(username)
	if !ok {
		return fmt.Errorf("%q: %w", username, ErrAccountNotFound)
	}
	if seeded {
		return fmt.Errorf("%q: %w", username, ErrSeedAccount)
	}

	for i := range r.registered {
		if r.registered[i].Username == username {
			r.registered[i].Password = newPassword
		}
	}
	r.store.Set(ctx, kv.KeyRegisteredUsers, r.registered)
	return nil
}
