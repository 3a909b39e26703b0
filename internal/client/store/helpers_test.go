package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mindcandy/internal/cryptox"
	"github.com/stretchr/testify/require"
)

var cheapHasher = cryptox.NewHasher(cryptox.Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16, SaltLen: 8})

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// flakyRepo fails batch writes while failing is set.
type flakyRepo struct {
	*kv.MemoryRepository
	mu      sync.Mutex
	failing bool
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{MemoryRepository: kv.NewMemoryRepository()}
}

func (r *flakyRepo) SetFailing(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = v
}

func (r *flakyRepo) SetMany(ctx context.Context, values map[string][]byte) error {
	r.mu.Lock()
	failing := r.failing
	r.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return r.MemoryRepository.SetMany(ctx, values)
}

func newTestStore(t *testing.T, repo kv.Repository, clock *fakeClock, strict bool) *Store {
	t.Helper()
	return New(context.Background(), repo, Options{
		Strict: strict,
		Hasher: cheapHasher,
		Now:    clock.Now,
	})
}

func registerVerified(t *testing.T, s *Store, email, username, password string) models.User {
	t.Helper()
	ctx := context.Background()

	code, err := s.GenerateVerificationCode()
	require.NoError(t, err)
	_, err = s.IssueVerificationCode(ctx, email, code)
	require.NoError(t, err)
	ok, err := s.CheckVerificationCode(ctx, email, code)
	require.NoError(t, err)
	require.True(t, ok)

	u, err := s.RegisterUser(ctx, models.RegisterInput{
		Email: email, Username: username, Password: password, Name: "Test " + username,
	})
	require.NoError(t, err)
	return u
}
