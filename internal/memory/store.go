package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// Fact is a single remembered key/value pair.
type Fact struct {
	Key   string
	Value string
}

// Store is the persistent fact store: a JSON file on disk fronted by an
// in-process cache, with a best-effort semantic index mirror.
//
// Keys are stored verbatim; the dispatcher lowercases input before it
// reaches the handlers, so keys arrive already normalized.
type Store struct {
	path  string
	index *Index // optional, may be nil

	mu    sync.Mutex
	cache *orderedmap.OrderedMap[string, string]
	dirty bool
}

// NewStore creates a fact store backed by the JSON file at path.
// A missing file is created empty. index may be nil to disable
// semantic search.
func NewStore(path string, index *Index) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create memory directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			return nil, fmt.Errorf("failed to create memory file: %w", err)
		}
	}
	return &Store{path: path, index: index}, nil
}

// load populates the cache from disk if it is not already loaded.
// Caller must hold s.mu. A corrupt or unreadable file resets the
// cache to empty rather than failing.
func (s *Store) load() {
	if s.cache != nil {
		return
	}

	s.cache = orderedmap.New[string, string]()

	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Error("Error loading memory file: %v", err)
		return
	}
	if err := json.Unmarshal(data, s.cache); err != nil {
		logger.Error("Error parsing memory file: %v", err)
		s.cache = orderedmap.New[string, string]()
	}
}

// save persists the cache to disk. Caller must hold s.mu. On failure the
// cache keeps the attempted write and the dirty flag is set for later
// inspection.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.cache, "", "    ")
	if err != nil {
		logger.Error("Error serializing memory: %v", err)
		s.dirty = true
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logger.Error("Error saving memory file: %v", err)
		s.dirty = true
		return
	}
	s.dirty = false
}

// Remember stores a key/value pair, persisting the full snapshot to disk
// and mirroring the fact into the semantic index best-effort.
func (s *Store) Remember(ctx context.Context, key, value string) bool {
	s.mu.Lock()
	s.load()
	s.cache.Set(key, value)
	s.save()
	s.mu.Unlock()

	if s.index != nil {
		if err := s.index.Store(ctx, fmt.Sprintf("%s is %s", key, value), key); err != nil {
			logger.Warn("Failed to store in vector index: %v", err)
		}
	}

	return true
}

// Recall returns the value stored under key.
func (s *Store) Recall(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.cache.Get(key)
}

// Forget removes key, returning true iff it existed.
func (s *Store) Forget(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if _, ok := s.cache.Get(key); !ok {
		return false
	}
	s.cache.Delete(key)
	s.save()
	return true
}

// List returns all facts in insertion order.
func (s *Store) List() []Fact {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	facts := make([]Fact, 0, s.cache.Len())
	for pair := s.cache.Oldest(); pair != nil; pair = pair.Next() {
		facts = append(facts, Fact{Key: pair.Key, Value: pair.Value})
	}
	return facts
}

// SemanticSearch finds stored facts related to query. Returns nil when
// the index is unavailable or nothing matches; internal errors degrade
// to nil with a logged warning.
func (s *Store) SemanticSearch(ctx context.Context, query string, n int) []string {
	if s.index == nil {
		return nil
	}
	matches, err := s.index.Search(ctx, query, n)
	if err != nil {
		logger.Warn("Semantic search failed: %v", err)
		return nil
	}
	return matches
}

// ClearCache drops the in-process cache, forcing the next read to load
// from disk.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
}

// Dirty reports whether the last disk write failed and the cache holds
// unpersisted state.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}
