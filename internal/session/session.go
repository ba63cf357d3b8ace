package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/utils"
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	idBytes    = 32
)

var ErrNotFound = errors.New("session not found")

// Backend stores session id to user id associations. Expiry is enforced by
// the backend; Get and Touch report ErrNotFound for expired ids and Delete
// of a missing id is not an error.
type Backend interface {
	Put(ctx context.Context, id string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, id string) (uint, error)
	Touch(ctx context.Context, id string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Handle is the server side view of an issued session. ID is the opaque
// token held by the browser.
type Handle struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

type Issuer struct {
	backend Backend
	ttl     time.Duration
	log     log.FieldLogger
}

type IssuerOption func(*Issuer)

func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

func WithLogger(l log.FieldLogger) IssuerOption {
	return func(i *Issuer) {
		if l != nil {
			i.log = l
		}
	}
}

func NewIssuer(backend Backend, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		backend: backend,
		ttl:     DefaultTTL,
		log:     log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue binds userID to a session. If current already belongs to userID it
// is renewed and returned unchanged; otherwise current is revoked and a
// fresh id is minted, so a pre-login id never survives authentication.
func (i *Issuer) Issue(ctx context.Context, current string, userID uint) (*Handle, error) {
	if current != "" {
		uid, err := i.backend.Get(ctx, current)
		switch {
		case err == nil && uid == userID:
			err = i.backend.Touch(ctx, current, i.ttl)
			if err == nil {
				return i.handle(current, userID), nil
			}
			// expired since Get; mint a new one
			if !errors.Is(err, ErrNotFound) {
				return nil, &StoreError{Op: "touch", Err: err}
			}
		case err == nil:
			if err := i.backend.Delete(ctx, current); err != nil {
				return nil, &StoreError{Op: "delete", Err: err}
			}
		case !errors.Is(err, ErrNotFound):
			return nil, &StoreError{Op: "get", Err: err}
		}
	}

	id, err := utils.RandToken(idBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	if err := i.backend.Put(ctx, id, userID, i.ttl); err != nil {
		i.log.WithError(err).WithField("uid", userID).Error("issue session")
		return nil, &StoreError{Op: "put", Err: err}
	}
	return i.handle(id, userID), nil
}

// Resolve returns the session for id and renews its lifetime.
func (i *Issuer) Resolve(ctx context.Context, id string) (*Handle, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	uid, err := i.backend.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get", Err: err}
	}
	if err := i.backend.Touch(ctx, id, i.ttl); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "touch", Err: err}
	}
	return i.handle(id, uid), nil
}

// Destroy revokes id. Destroying an unknown or empty id succeeds.
func (i *Issuer) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := i.backend.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		i.log.WithError(err).Error("destroy session")
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}

func (i *Issuer) handle(id string, userID uint) *Handle {
	return &Handle{ID: id, UserID: userID, ExpiresAt: time.Now().Add(i.ttl)}
}
