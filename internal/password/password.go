package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/zijiren233/stream"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// MaxLength is the longest plaintext bcrypt hashes in full.
const MaxLength = 72

var ErrTooLong = fmt.Errorf("password longer than %d bytes", MaxLength)

// Hasher is a one-way adaptive hash. Verify reports false with a nil error
// on a mismatch; an error means the digest could not be checked at all.
type Hasher interface {
	Hash(ctx context.Context, plaintext string) ([]byte, error)
	Verify(ctx context.Context, plaintext string, digest []byte) (bool, error)
}

// Bcrypt bounds the number of hashes computed at once so a burst of logins
// cannot take every CPU away from other requests.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

var _ Hasher = (*Bcrypt)(nil)

func NewBcrypt(cost, concurrency int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Bcrypt{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

func (b *Bcrypt) Cost() int {
	return b.cost
}

func (b *Bcrypt) Hash(ctx context.Context, plaintext string) ([]byte, error) {
	if len(plaintext) > MaxLength {
		return nil, ErrTooLong
	}
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)
	h, err := bcrypt.GenerateFromPassword(stream.StringToBytes(plaintext), b.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return h, nil
}

func (b *Bcrypt) Verify(ctx context.Context, plaintext string, digest []byte) (bool, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer b.sem.Release(1)
	err := bcrypt.CompareHashAndPassword(digest, stream.StringToBytes(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
