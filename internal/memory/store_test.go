package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "memory.json"), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestStoreRememberRecall(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if !store.Remember(ctx, "favorite color", "blue") {
		t.Error("Remember returned false")
	}

	value, ok := store.Recall("favorite color")
	if !ok {
		t.Fatal("Expected to recall stored fact")
	}
	if value != "blue" {
		t.Errorf("Expected 'blue', got '%s'", value)
	}

	if _, ok := store.Recall("unknown key"); ok {
		t.Error("Expected recall of unknown key to fail")
	}
}

func TestStoreForget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Remember(ctx, "birthday", "june 1st")

	if !store.Forget("birthday") {
		t.Error("Expected Forget to return true for existing key")
	}
	if store.Forget("birthday") {
		t.Error("Expected Forget to return false for already-removed key")
	}
	if _, ok := store.Recall("birthday"); ok {
		t.Error("Expected forgotten key to be gone")
	}
}

func TestStoreListInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Remember(ctx, "c", "3")
	store.Remember(ctx, "a", "1")
	store.Remember(ctx, "b", "2")

	facts := store.List()
	if len(facts) != 3 {
		t.Fatalf("Expected 3 facts, got %d", len(facts))
	}

	wantKeys := []string{"c", "a", "b"}
	for i, want := range wantKeys {
		if facts[i].Key != want {
			t.Errorf("Fact %d: expected key '%s', got '%s'", i, want, facts[i].Key)
		}
	}
}

func TestStorePersistsAcrossCacheClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Remember(ctx, "favorite color", "blue")
	store.ClearCache()

	value, ok := store.Recall("favorite color")
	if !ok || value != "blue" {
		t.Errorf("Expected 'blue' after cache reload, got '%s' (ok=%v)", value, ok)
	}
}

func TestStoreCorruptFileResetsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	if err := os.WriteFile(path, []byte("not json{{{"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if facts := store.List(); len(facts) != 0 {
		t.Errorf("Expected empty store after corrupt file, got %d facts", len(facts))
	}

	// The store should still accept new facts
	if !store.Remember(context.Background(), "key", "value") {
		t.Error("Remember failed after corrupt file reset")
	}
	if store.Dirty() {
		t.Error("Expected store to be clean after successful save")
	}
}

func TestStoreCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "memory.json")

	if _, err := NewStore(path, nil); err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected memory file to exist: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got '%s'", data)
	}
}

func TestStoreSemanticSearchWithoutIndex(t *testing.T) {
	store := newTestStore(t)

	if matches := store.SemanticSearch(context.Background(), "anything", 3); matches != nil {
		t.Errorf("Expected nil without an index, got %v", matches)
	}
}
