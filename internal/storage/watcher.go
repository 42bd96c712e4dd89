package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mtgkit/deckforge/internal/deck"
	"github.com/mtgkit/deckforge/internal/storage/repository"
)

// reloadDebounce is how long the watcher waits after a write event
// before reloading, so editors that write in several bursts trigger a
// single reload.
const reloadDebounce = 250 * time.Millisecond

// CollectionWatcher keeps the stored collection in sync with a JSON
// export file written by the game client. The file is a flat object of
// card name to owned quantity.
type CollectionWatcher struct {
	path string
	repo repository.CollectionRepository
}

// NewCollectionWatcher builds a watcher for the export file at path.
func NewCollectionWatcher(path string, repo repository.CollectionRepository) *CollectionWatcher {
	return &CollectionWatcher{path: path, repo: repo}
}

// Run loads the file once, then reloads it on every change until the
// context is cancelled. The watch is on the parent directory because
// many writers replace the file rather than update it in place.
func (w *CollectionWatcher) Run(ctx context.Context) error {
	if err := w.reload(ctx); err != nil {
		log.Printf("[CollectionWatcher] initial load failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Printf("[CollectionWatcher] close failed: %v", closeErr)
		}
	}()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch collection directory: %w", err)
	}

	var debounce *time.Timer
	debounced := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				select {
				case debounced <- struct{}{}:
				default:
				}
			})
		case <-debounced:
			if err := w.reload(ctx); err != nil {
				log.Printf("[CollectionWatcher] reload failed: %v", err)
			}
		case err := <-watcher.Errors:
			log.Printf("[CollectionWatcher] watch error: %v", err)
		}
	}
}

// reload parses the export file and replaces the stored collection.
func (w *CollectionWatcher) reload(ctx context.Context) error {
	collection, err := LoadCollectionFile(w.path)
	if err != nil {
		return err
	}
	if err := w.repo.ReplaceAll(ctx, collection); err != nil {
		return fmt.Errorf("failed to store collection: %w", err)
	}
	log.Printf("[CollectionWatcher] loaded %d distinct cards from %s", len(collection), w.path)
	return nil
}

// LoadCollectionFile parses a collection export file into a Collection.
func LoadCollectionFile(path string) (deck.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse collection file: %w", err)
	}

	collection := deck.Collection{}
	for name, quantity := range raw {
		if quantity > 0 {
			collection.Add(name, quantity)
		}
	}
	return collection, nil
}
