package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"clamood/console/internal/resources"
)

var ErrUnknownMutation = errors.New("operation has no invalidation entry")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type Fetcher func(ctx context.Context) (any, error)

type Snapshot struct {
	Key         Key
	Status      Status
	Data        any
	Err         error
	FetchedAt   time.Time
	Invalidated bool
	Fetching    bool
	Observers   int
}

type flight struct {
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

type entry struct {
	key         Key
	status      Status
	data        any
	err         error
	fetchedAt   time.Time
	lastUsed    time.Time
	invalidated bool
	gen         uint64
	observers   int
	flight      *flight
}

type Options struct {
	// StaleTime is how long a result is served without revalidation.
	StaleTime time.Duration
}

// Cache keeps server data keyed by resource and parameters. At most one fetch
// per key and generation is in flight; invalidation starts a new generation,
// and a response from an older generation is handed to its own callers but
// never stored.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	group     singleflight.Group
	seq       uint64
	staleTime time.Duration
	base      context.Context
	stop      context.CancelFunc
	now       func() time.Time
	log       zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Cache {
	base, stop := context.WithCancel(context.Background())
	return &Cache{
		entries:   make(map[Key]*entry),
		staleTime: opts.StaleTime,
		base:      base,
		stop:      stop,
		now:       time.Now,
		log:       log,
	}
}

// Query returns the value for key. A fresh value is returned as is; a stale
// one is returned while a background refetch runs; a missing, failed or
// invalidated one is fetched and waited for.
func (c *Cache) Query(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.lastUsed = c.now()

	if e.status == StatusSuccess && !e.invalidated {
		data := e.data
		if c.now().Sub(e.fetchedAt) >= c.staleTime && e.flight == nil {
			c.startLocked(ctx, e, fetch)
		}
		c.mu.Unlock()
		return data, nil
	}

	ch := c.startLocked(ctx, e, fetch)
	c.mu.Unlock()

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Mutate runs one write. On success every resource the operation affects is
// invalidated before Mutate returns; on failure the cache is left untouched.
func (c *Cache) Mutate(ctx context.Context, op resources.Operation, write func(ctx context.Context) (any, error)) (any, error) {
	targets, ok := Affects(op)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownMutation)
	}

	data, err := write(ctx)
	if err != nil {
		return nil, err
	}

	c.Invalidate(targets...)
	c.log.Debug().Str("operation", string(op)).Int("resources", len(targets)).Msg("mutation invalidated cache")
	return data, nil
}

// Invalidate marks every entry of the given resources stale. The next Query
// for them fetches again, whatever is already in flight.
func (c *Cache) Invalidate(rs ...Resource) int {
	set := make(map[Resource]struct{}, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if _, ok := set[key.Resource]; !ok {
			continue
		}
		e.invalidated = true
		e.gen = c.nextGenLocked()
		e.flight = nil
		n++
	}
	return n
}

// Subscription marks keys as observed by a live view. Releasing the last
// observer of a key cancels its in-flight fetch and drops the response.
type Subscription struct {
	c       *Cache
	entries []*entry
	once    sync.Once
}

func (c *Cache) Observe(keys ...Key) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	sub := &Subscription{c: c, entries: make([]*entry, 0, len(keys))}
	for _, key := range keys {
		e := c.entryLocked(key)
		e.observers++
		e.lastUsed = now
		sub.entries = append(sub.entries, e)
	}
	return sub
}

func (s *Subscription) Release() {
	s.once.Do(func() {
		s.c.release(s.entries)
	})
}

func (c *Cache) release(entries []*entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, e := range entries {
		// Entries dropped by Reset or Prune are no longer ours to count.
		if c.entries[e.key] != e {
			continue
		}
		if e.observers > 0 {
			e.observers--
		}
		e.lastUsed = now
		if e.observers > 0 || e.flight == nil {
			continue
		}

		c.cancelFlightLocked(e)
		c.log.Debug().Str("key", e.key.String()).Msg("cancelled fetch for unobserved key")
	}
}

// Reset drops every entry and cancels every fetch. Used when the session
// changes hands.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.flight != nil {
			c.cancelFlightLocked(e)
		}
	}
	c.entries = make(map[Key]*entry)
}

// Prune removes unobserved, idle entries not used within maxIdle.
func (c *Cache) Prune(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, e := range c.entries {
		if e.observers > 0 || e.flight != nil {
			continue
		}
		if now.Sub(e.lastUsed) < maxIdle {
			continue
		}
		delete(c.entries, key)
		n++
	}
	return n
}

func (c *Cache) Snapshot(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		Key:         e.key,
		Status:      e.status,
		Data:        e.data,
		Err:         e.err,
		FetchedAt:   e.fetchedAt,
		Invalidated: e.invalidated,
		Fetching:    e.flight != nil,
		Observers:   e.observers,
	}, true
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close cancels every outstanding fetch.
func (c *Cache) Close() {
	c.Reset()
	c.stop()
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, status: StatusIdle, gen: c.nextGenLocked()}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) nextGenLocked() uint64 {
	c.seq++
	return c.seq
}

func flightKey(key Key, gen uint64) string {
	return key.String() + "#" + strconv.FormatUint(gen, 10)
}

// startLocked joins or starts the fetch for the entry's current generation.
// A new fetch keeps the values of the caller that started it but not its
// cancellation; it ends when the last observer leaves or the cache closes.
func (c *Cache) startLocked(parent context.Context, e *entry, fetch Fetcher) <-chan singleflight.Result {
	if e.flight == nil || e.flight.gen != e.gen {
		ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
		stop := context.AfterFunc(c.base, cancel)
		e.flight = &flight{gen: e.gen, ctx: ctx, cancel: func() {
			stop()
			cancel()
		}}
	}
	if e.status == StatusIdle {
		e.status = StatusPending
	}

	fl := e.flight
	key := e.key
	return c.group.DoChan(flightKey(key, fl.gen), func() (any, error) {
		data, err := fetch(fl.ctx)
		c.settle(key, fl, data, err)
		return data, err
	})
}

// settle stores a response if it still belongs to the entry's generation.
func (c *Cache) settle(key Key, fl *flight, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.group.Forget(flightKey(key, fl.gen))
	cancelled := fl.ctx.Err() != nil
	fl.cancel()

	e, ok := c.entries[key]
	if ok && e.flight == fl {
		e.flight = nil
	}
	if !ok || e.gen != fl.gen || cancelled {
		c.log.Debug().Str("key", key.String()).Msg("dropping response for superseded fetch")
		return
	}

	if err != nil {
		e.status = StatusError
		e.err = err
		return
	}
	e.status = StatusSuccess
	e.data = data
	e.err = nil
	e.fetchedAt = c.now()
	e.invalidated = false
}

func (c *Cache) cancelFlightLocked(e *entry) {
	e.flight.cancel()
	e.flight = nil
	e.gen = c.nextGenLocked()
	if e.status == StatusPending {
		e.status = StatusIdle
	}
}
