// Package cardcache memoizes card data service calls for a fixed time
// window. Service failures degrade to empty results so that a flaky
// network never aborts a recommendation run.
package cardcache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/cards/scryfall"
)

// DefaultTTL is how long a memoized result stays valid. Within the
// window repeated identical calls perform no network activity.
const DefaultTTL = 5 * time.Minute

// Client is the subset of the card data client the cache fronts.
// *scryfall.Client satisfies it; tests substitute a deterministic fake.
type Client interface {
	Search(ctx context.Context, query string, opts cards.SearchOptions) ([]cards.Card, error)
	GetByName(ctx context.Context, name string) (*cards.Card, error)
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

type searchEntry struct {
	cards     []cards.Card
	timestamp time.Time
}

type nameEntry struct {
	card      *cards.Card
	found     bool
	timestamp time.Time
}

// Service is the memoizing facade over the card data client.
type Service struct {
	client Client
	ttl    time.Duration

	mu       sync.RWMutex
	searches map[string]*searchEntry
	names    map[string]*nameEntry
	stats    Stats
}

// New creates a cache with the default 5 minute window.
func New(client Client) *Service {
	return NewWithTTL(client, DefaultTTL)
}

// NewWithTTL creates a cache with a custom window. A zero ttl disables
// expiry, which only tests should rely on.
func NewWithTTL(client Client, ttl time.Duration) *Service {
	return &Service{
		client:   client,
		ttl:      ttl,
		searches: make(map[string]*searchEntry),
		names:    make(map[string]*nameEntry),
	}
}

// Search returns the cards matching a query. Each distinct
// (query, options) pair is memoized for the cache window. Errors from
// the underlying client are logged and yield an empty slice; sourcing
// strategies must tolerate an empty result for any one query.
func (s *Service) Search(ctx context.Context, query string, opts cards.SearchOptions) []cards.Card {
	key := query + "\x00" + opts.Key()

	s.mu.RLock()
	entry, ok := s.searches[key]
	s.mu.RUnlock()

	if ok && !s.expired(entry.timestamp) {
		s.recordHit()
		return entry.cards
	}
	s.recordMiss()

	result, err := s.client.Search(ctx, query, opts)
	if err != nil {
		s.recordError()
		log.Printf("[CardCache] search %q failed, returning empty result: %v", query, err)
		result = nil
	}

	s.mu.Lock()
	s.searches[key] = &searchEntry{cards: result, timestamp: time.Now()}
	s.mu.Unlock()

	return result
}

// GetByName returns one card by exact name, memoized per normalized
// name. The second return is false when the card does not exist or the
// lookup failed.
func (s *Service) GetByName(ctx context.Context, name string) (*cards.Card, bool) {
	key := cards.NormalizeName(name)

	s.mu.RLock()
	entry, ok := s.names[key]
	s.mu.RUnlock()

	if ok && !s.expired(entry.timestamp) {
		s.recordHit()
		return entry.card, entry.found
	}
	s.recordMiss()

	card, err := s.client.GetByName(ctx, name)
	found := err == nil && card != nil
	if err != nil && !scryfall.IsNotFound(err) {
		s.recordError()
		log.Printf("[CardCache] lookup %q failed: %v", name, err)
	}

	s.mu.Lock()
	s.names[key] = &nameEntry{card: card, found: found, timestamp: time.Now()}
	s.mu.Unlock()

	return card, found
}

// Clear drops all memoized entries.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = make(map[string]*searchEntry)
	s.names = make(map[string]*nameEntry)
}

// GetStats returns a snapshot of the cache counters.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Service) expired(ts time.Time) bool {
	return s.ttl > 0 && time.Since(ts) > s.ttl
}

func (s *Service) recordHit() {
	s.mu.Lock()
	s.stats.Hits++
	s.mu.Unlock()
}

func (s *Service) recordMiss() {
	s.mu.Lock()
	s.stats.Misses++
	s.mu.Unlock()
}

func (s *Service) recordError() {
	s.mu.Lock()
	s.stats.Errors++
	s.mu.Unlock()
}
