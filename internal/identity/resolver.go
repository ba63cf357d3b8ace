package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/internal/db"
	"github.com/synctv-org/authd/internal/model"
	"github.com/synctv-org/authd/internal/password"
	"github.com/synctv-org/authd/internal/provider"
)

const defaultAttempts = 3

// ProviderIdentity is what an OAuth2 exchange asserts about the caller.
type ProviderIdentity struct {
	Provider       provider.OAuth2Provider
	ProviderUserID string
	Name           string
	Email          string
	EmailVerified  bool
}

func (id ProviderIdentity) key() model.ProviderLinkKey {
	return model.ProviderLinkKey{Provider: id.Provider, ProviderUserID: id.ProviderUserID}
}

// Resolver maps credentials to exactly one user, creating or linking users
// as needed. It holds no locks; concurrent resolutions of the same identity
// are settled by the store's unique constraints.
type Resolver struct {
	store    db.Repository
	hasher   password.Hasher
	trust    EmailTrust
	log      log.FieldLogger
	attempts int

	dummyOnce   sync.Once
	dummyDigest []byte
}

func New(store db.Repository, hasher password.Hasher, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		hasher:   hasher,
		trust:    TrustVerifiedEmail,
		log:      log.StandardLogger(),
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) SignUp(ctx context.Context, email, pwd, name string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	switch {
	case email == "":
		return nil, invalidInput("email")
	case pwd == "":
		return nil, invalidInput("password")
	case name == "":
		return nil, invalidInput("name")
	}

	_, err := r.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrAlreadyExists
	case !errors.Is(err, db.ErrNotFound):
		r.log.WithError(err).Error("signup: find user by email")
		return nil, storeErr("find_user_by_email", err)
	}

	hashed, err := r.hasher.Hash(ctx, pwd)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}
	u := &model.User{
		Email:          model.EmptyNullEmail(email),
		HashedPassword: hashed,
		Name:           name,
	}
	if err := r.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		r.log.WithError(err).Error("signup: create user")
		return nil, storeErr("create_user", err)
	}
	return u, nil
}

// Login checks a local credential pair. Unknown email, OAuth-only user and
// wrong password all return ErrInvalidCredentials after comparable work.
func (r *Resolver) Login(ctx context.Context, email, pwd string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || pwd == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := r.store.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			r.log.WithError(err).Error("login: find user by email")
			return nil, storeErr("find_user_by_email", err)
		}
		r.burnVerify(ctx, pwd)
		return nil, ErrInvalidCredentials
	}
	if !u.HasPassword() {
		r.burnVerify(ctx, pwd)
		return nil, ErrInvalidCredentials
	}

	ok, err := r.hasher.Verify(ctx, pwd, u.HashedPassword)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.log.WithError(err).WithField("uid", u.ID).Warn("login: verify password")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// burnVerify runs a verification against a fixed digest.
func (r *Resolver) burnVerify(ctx context.Context, pwd string) {
	r.dummyOnce.Do(func() {
		r.dummyDigest, _ = r.hasher.Hash(context.Background(), "authd-dummy-password")
	})
	if len(r.dummyDigest) != 0 {
		_, _ = r.hasher.Verify(ctx, pwd, r.dummyDigest)
	}
}

// ResolveProvider returns the user owning a provider identity:
//  1. an existing link wins;
//  2. otherwise a trusted email is merged into the user with that email,
//     or a new verified user is created with the link;
//  3. otherwise a provider-only user without email is created with the link.
//
// Losing a uniqueness race restarts resolution from the link lookup.
func (r *Resolver) ResolveProvider(ctx context.Context, id ProviderIdentity) (*model.User, error) {
	if id.Provider == "" {
		return nil, invalidInput("provider")
	}
	if id.ProviderUserID == "" {
		return nil, invalidInput("provider user id")
	}
	id.Email = model.NormalizeEmail(id.Email)
	trusted := id.Email != "" && r.trust(ctx, id)

	for attempt := 1; attempt <= r.attempts; attempt++ {
		u, err := r.resolveOnce(ctx, id, trusted)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, db.ErrDuplicate) {
			return nil, err
		}
		r.log.WithFields(log.Fields{
			"provider": id.Provider,
			"attempt":  attempt,
		}).Debug("resolve provider: lost creation race, retrying")
	}
	return nil, ErrIdentityUnresolved
}

func (r *Resolver) resolveOnce(ctx context.Context, id ProviderIdentity, trusted bool) (*model.User, error) {
	u, err := r.store.FindUserByProvider(ctx, id.key())
	switch {
	case err == nil:
		return u, nil
	case !errors.Is(err, db.ErrNotFound):
		r.log.WithError(err).Error("resolve provider: find user by provider")
		return nil, storeErr("find_user_by_provider", err)
	}

	if !trusted {
		return r.createWithLink(ctx, id, nil)
	}

	u, err = r.store.FindUserByEmail(ctx, id.Email)
	switch {
	case err == nil:
		link := &model.UserProvider{
			Provider:       id.Provider,
			ProviderUserID: id.ProviderUserID,
			UserID:         u.ID,
		}
		if err := r.store.UpsertProviderLink(ctx, link); err != nil {
			r.log.WithError(err).Error("resolve provider: upsert provider link")
			return nil, storeErr("upsert_provider_link", err)
		}
		return u, nil
	case errors.Is(err, db.ErrNotFound):
		return r.createWithLink(ctx, id, model.EmptyNullEmail(id.Email))
	default:
		r.log.WithError(err).Error("resolve provider: find user by email")
		return nil, storeErr("find_user_by_email", err)
	}
}

// createWithLink creates a user and its first link in one transaction. A
// uniqueness violation is returned unwrapped so the caller can retry.
func (r *Resolver) createWithLink(ctx context.Context, id ProviderIdentity, email *string) (*model.User, error) {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = id.ProviderUserID
	}
	u := &model.User{
		Email:         email,
		EmailVerified: email != nil,
		Name:          name,
	}
	err := r.store.Transactional(ctx, func(tx db.Repository) error {
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.CreateProviderLink(ctx, &model.UserProvider{
			Provider:       id.Provider,
			ProviderUserID: id.ProviderUserID,
			UserID:         u.ID,
		})
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, err
		}
		r.log.WithError(err).Error("resolve provider: create user with link")
		return nil, storeErr("create_user_with_link", err)
	}
	return u, nil
}

func (r *Resolver) User(ctx context.Context, id uint) (*model.User, error) {
	u, err := r.store.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("find_user_by_id", err)
	}
	return u, nil
}

func (r *Resolver) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := r.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("find_user_by_email", err)
	}
	return u, nil
}

func (r *Resolver) ProviderLinks(ctx context.Context, userID uint) ([]*model.UserProvider, error) {
	links, err := r.store.ListProviderLinks(ctx, userID)
	if err != nil {
		return nil, storeErr("list_provider_links", err)
	}
	return links, nil
}
