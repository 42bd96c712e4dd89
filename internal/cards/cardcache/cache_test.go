package cardcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mtgkit/deckforge/internal/cards"
)

// countingClient records how many live calls reach the service.
type countingClient struct {
	searchCalls int
	nameCalls   int
	searchErr   error
	result      []cards.Card
}

func (c *countingClient) Search(_ context.Context, _ string, _ cards.SearchOptions) ([]cards.Card, error) {
	c.searchCalls++
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.result, nil
}

func (c *countingClient) GetByName(_ context.Context, name string) (*cards.Card, error) {
	c.nameCalls++
	return &cards.Card{Name: name, TypeLine: "Instant"}, nil
}

func TestSearchMemoizesWithinWindow(t *testing.T) {
	client := &countingClient{result: []cards.Card{{Name: "Shock"}}}
	cache := New(client)

	opts := cards.SearchOptions{Format: "standard"}
	for i := 0; i < 5; i++ {
		got := cache.Search(context.Background(), "o:damage", opts)
		if len(got) != 1 {
			t.Fatalf("expected 1 card, got %d", len(got))
		}
	}

	if client.searchCalls != 1 {
		t.Errorf("expected 1 live call, got %d", client.searchCalls)
	}

	// A different options key is a distinct memo slot.
	cache.Search(context.Background(), "o:damage", cards.SearchOptions{Format: "commander"})
	if client.searchCalls != 2 {
		t.Errorf("expected 2 live calls after new options, got %d", client.searchCalls)
	}
}

func TestSearchExpiryTriggersRefetch(t *testing.T) {
	client := &countingClient{result: []cards.Card{{Name: "Shock"}}}
	cache := NewWithTTL(client, time.Nanosecond)

	cache.Search(context.Background(), "q", cards.SearchOptions{})
	time.Sleep(time.Millisecond)
	cache.Search(context.Background(), "q", cards.SearchOptions{})

	if client.searchCalls != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", client.searchCalls)
	}
}

func TestSearchErrorYieldsEmptyResult(t *testing.T) {
	client := &countingClient{searchErr: errors.New("network down")}
	cache := New(client)

	got := cache.Search(context.Background(), "q", cards.SearchOptions{})
	if len(got) != 0 {
		t.Fatalf("expected empty result on error, got %d cards", len(got))
	}

	// The empty result is cached too; no hammering a failing service.
	cache.Search(context.Background(), "q", cards.SearchOptions{})
	if client.searchCalls != 1 {
		t.Errorf("expected error result to be memoized, got %d calls", client.searchCalls)
	}

	stats := cache.GetStats()
	if stats.Errors != 1 {
		t.Errorf("expected 1 recorded error, got %d", stats.Errors)
	}
}

func TestGetByNameMemoized(t *testing.T) {
	client := &countingClient{}
	cache := New(client)

	card, ok := cache.GetByName(context.Background(), "Lightning Bolt")
	if !ok || card.Name != "Lightning Bolt" {
		t.Fatalf("expected card, got %v ok=%v", card, ok)
	}

	// Case-insensitive key.
	cache.GetByName(context.Background(), "lightning bolt")
	if client.nameCalls != 1 {
		t.Errorf("expected 1 live call, got %d", client.nameCalls)
	}
}
