package challenge

import (
	"context"
	"sync"
	"time"
)

// Cache holds the active daily challenge and refreshes it from the
// challenge service when it expires.
//
// A single mutex guards the whole check-staleness-and-refresh sequence, so
// concurrent callers during a refresh wait instead of each triggering a
// redundant fetch. The refresh itself (a blocking bus round-trip) therefore
// runs while the lock is held; consistency of the cached value is preferred
// over fetch parallelism.
type Cache struct {
	fetcher Fetcher

	mu      sync.Mutex
	current *DailyChallenge

	// now is swappable in tests
	now func() time.Time
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// Current returns the active daily challenge, refreshing it first when the
// cached one expired. A nil challenge means no challenge window is open
// right now.
//
// A cached nil carries no expiry, so a "no active challenge" answer is
// re-fetched on every call until the challenge service returns one.
// A fetch error is returned as-is and leaves the cached value untouched.
func (c *Cache) Current(ctx context.Context) (*DailyChallenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.current == nil || c.current.EndDate.Before(now) {
		fetched, err := c.fetcher.FetchCurrent(ctx, now)
		if err != nil {
			return nil, err
		}
		c.current = fetched
	}

	return c.current, nil
}
