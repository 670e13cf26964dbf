package store

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/internova/internova/internal/client/kvstore"
	"github.com/internova/internova/internal/client/remote"
	"github.com/internova/internova/internal/logging"
	"github.com/internova/internova/internal/models"
)

// Durable-store keys, one namespace per entity family. The names are kept
// compatible with the snapshots the original web client wrote.
const (
	keyInternships  = "local_internships"
	keyApplications = "demo_applications"
	keySaved        = "demo_saved_internships"
	keyMessages     = "local_messages"
	keyAccounts     = "local_users"
	keyCurrentUser  = "current_user"
)

// Cache freshness window: a soft bound that only gates whether a remote
// refresh is attempted, never a correctness guarantee.
const defaultCacheTTL = 30 * time.Second

// Store mediates all reads and writes for internships, applications, saved
// relations, messages and accounts between three tiers: an in-memory cache,
// the durable kvstore, and the best-effort remote backend.
//
// Writes apply to the cache first, persist to the durable store, then
// propagate to the backend best-effort; a remote failure never rolls back
// local state. Reads serve the cache, rehydrating it from the durable store
// and refreshing from the backend when the freshness window has lapsed.
// Public operations never return transport errors; they degrade to the local
// snapshot and log.
type Store struct {
	mu sync.Mutex

	log    logging.Logger
	kv     kvstore.Store
	remote remote.Client

	now func() time.Time
	rng *rand.Rand
	ttl time.Duration

	internships  []models.Internship
	applications []models.Application
	saved        map[string][]string
	messages     []models.Message
	current      *models.Account

	lastFetch map[string]time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock injects the time source (tests pin this).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCacheTTL overrides the freshness window.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithRand injects the random source used by the synthetic acceptance-rate
// baseline.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// New constructs a Store wired to the given durable store and remote client
// and rehydrates the application and saved-relation snapshots, mirroring the
// original client's startup path. Construction never fails: a broken durable
// store just yields empty caches.
func New(kv kvstore.Store, rc remote.Client, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		log:       log,
		kv:        kv,
		remote:    rc,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		ttl:       defaultCacheTTL,
		saved:     make(map[string][]string),
		lastFetch: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx := context.Background()
	s.mu.Lock()
	s.loadApplicationsLocked(ctx)
	s.loadSavedLocked(ctx)
	s.loadCurrentUserLocked(ctx)
	s.mu.Unlock()

	return s
}

// cacheFresh reports whether the last successful fetch for key is within the
// freshness window. Callers hold s.mu.
func (s *Store) cacheFresh(key string) bool {
	last, ok := s.lastFetch[key]
	if !ok {
		return false
	}
	return s.now().Sub(last) < s.ttl
}

// loadJSON deserializes the durable-store value at key into out. Missing or
// corrupt values degrade to false with a log line, never an error.
func (s *Store) loadJSON(ctx context.Context, key string, out any) bool {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "failed to read durable store", "key", key, "error", err)
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn(ctx, "corrupt durable store entry, treating as empty", "key", key, "error", err)
		return false
	}
	return true
}

// saveJSON serializes v into the durable store at key, best-effort.
func (s *Store) saveJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn(ctx, "failed to serialize durable store entry", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.log.Warn(ctx, "failed to write durable store", "key", key, "error", err)
	}
}
