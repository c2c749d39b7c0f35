package services

import (
	"sync"
	"time"

	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/repositories"
)

// ---- shared test helpers ----

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
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

// cheapHasher keeps the real verifier format at a fraction of the cost.
func cheapHasher() *ScryptHasher {
	return &ScryptHasher{N: 1024, R: 8, P: 1, KeyLen: 64, SaltLen: 16}
}

func newTestAuth(store *repositories.Store, clock *fakeClock, single bool) *AuthService {
	return NewAuthService(store, cheapHasher(), AuthOptions{
		Secret:        "test-secret",
		SessionTTL:    time.Hour,
		SingleSession: single,
		Now:           clock.Now,
	}, logging.Discard())
}
