package password

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Bcrypt hashes with a bounded number of concurrent workers; bcrypt is CPU bound.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

func NewBcrypt(cost, concurrency int) *Bcrypt {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Bcrypt{cost: cost, sem: semaphore.NewWeighted(int64(concurrency))}
}

func (b *Bcrypt) Hash(ctx context.Context, plain string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer b.sem.Release(1)

	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports a mismatch as (false, nil); other failures are errors.
func (b *Bcrypt) Verify(ctx context.Context, plain, hash string) (bool, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
