package memory

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	// Register sqlite-vec as an auto-extension so every SQLite connection
	// opened by this process has the vec0 virtual table module available.
	vec.Auto()
}

// DefaultEmbeddingDimension matches text-embedding-3-small.
const DefaultEmbeddingDimension = 1536

// Embedder produces an embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is the semantic fact index: fact text in a regular table, vectors
// in a sqlite-vec vec0 virtual table.
type Index struct {
	conn     *sql.DB
	embedder Embedder
}

// NewIndex opens (or creates) the index database at path.
func NewIndex(path string, embedder Embedder, dimension int) (*Index, error) {
	if dimension <= 0 {
		dimension = DefaultEmbeddingDimension
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	queries := []string{
		`CREATE TABLE IF NOT EXISTS facts (
			id TEXT PRIMARY KEY,
			fact_key TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS vec_facts USING vec0(
			id TEXT PRIMARY KEY,
			embedding float[%d]
		)`, dimension),
	}
	for _, query := range queries {
		if _, err := conn.Exec(query); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to initialize index tables: %w", err)
		}
	}

	return &Index{conn: conn, embedder: embedder}, nil
}

// Store embeds content and writes it to the index. Re-remembering a key
// replaces its previous entry.
func (ix *Index) Store(ctx context.Context, content, key string) error {
	embedding, err := ix.embedder.Embed(ctx, content)
	if err != nil {
		return err
	}

	// One entry per fact key: drop any prior vector for this key first.
	rows, err := ix.conn.Query(`SELECT id FROM facts WHERE fact_key = ?`, key)
	if err == nil {
		var stale []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err == nil {
				stale = append(stale, id)
			}
		}
		rows.Close()
		for _, id := range stale {
			_, _ = ix.conn.Exec(`DELETE FROM vec_facts WHERE id = ?`, id)
			_, _ = ix.conn.Exec(`DELETE FROM facts WHERE id = ?`, id)
		}
	}

	id := uuid.New().String()
	if _, err := ix.conn.Exec(
		`INSERT INTO facts (id, fact_key, content) VALUES (?, ?, ?)`,
		id, key, content,
	); err != nil {
		return fmt.Errorf("index: insert fact: %w", err)
	}

	if _, err := ix.conn.Exec(
		`INSERT INTO vec_facts (id, embedding) VALUES (?, ?)`,
		id, float32SliceToBlob(embedding),
	); err != nil {
		return fmt.Errorf("index: insert embedding: %w", err)
	}

	return nil
}

// Search returns the content of the n facts closest to query.
func (ix *Index) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		n = 3
	}

	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := ix.conn.Query(
		`SELECT f.content
		 FROM vec_facts v
		 JOIN facts f ON f.id = v.id
		 WHERE v.embedding MATCH ? AND k = ?
		 ORDER BY v.distance`,
		float32SliceToBlob(embedding), n,
	)
	if err != nil {
		// sqlite-vec may not be loaded; degrade gracefully.
		return nil, nil //nolint:nilerr
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		matches = append(matches, content)
	}
	return matches, rows.Err()
}

// Close closes the index database.
func (ix *Index) Close() error {
	return ix.conn.Close()
}

// float32SliceToBlob serialises a float32 slice to a little-endian byte
// blob, the format sqlite-vec expects for BLOB column input.
func float32SliceToBlob(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
