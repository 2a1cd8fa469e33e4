// Package sqlite provides a SQLite-backed durable-record backend, selected
// via the storage driver setting. Records are opaque JSON blobs in a single
// key/value table; the in-memory stores neither know nor care which backend
// holds their snapshots.
package sqlite

import (
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hatkhataapp/hatkhata-server/internal/store"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// writeQueueSize bounds the pending write-behind queue.
const writeQueueSize = 256

type pendingWrite struct {
	key  string
	data []byte
}

// Backend implements store.Durable on SQLite.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger

	writes    chan pendingWrite
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open creates a SQLite record backend at the given path.
// It configures WAL mode, sets pragmas, and creates the records table.
func Open(path string, logger *slog.Logger) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	b := &Backend{
		db:     db,
		logger: logger,
		writes: make(chan pendingWrite, writeQueueSize),
	}

	b.wg.Add(1)
	go b.writeLoop()

	if logger != nil {
		logger.Info("record database opened", "path", path, "driver", "sqlite")
	}

	return b, nil
}

// Load implements store.Durable.
func (b *Backend) Load(key string, dest any) error {
	var data []byte
	err := b.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return store.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("query record %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

// Save implements store.Durable. The value is serialized immediately; the
// row upsert happens on the writer goroutine.
func (b *Backend) Save(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("failed to serialize record snapshot", "key", key, "error", err)
		}
		return
	}

	select {
	case b.writes <- pendingWrite{key: key, data: data}:
	default:
		if b.logger != nil {
			b.logger.Warn("write-behind queue full, dropping snapshot", "key", key)
		}
	}
}

// Close drains pending writes and closes the database.
func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		close(b.writes)
	})
	b.wg.Wait()
	return b.db.Close()
}

func (b *Backend) writeLoop() {
	defer b.wg.Done()

	for w := range b.writes {
		_, err := b.db.Exec(`
			INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			w.key, w.data, time.Now().UTC().Format(time.RFC3339))
		if err != nil && b.logger != nil {
			b.logger.Warn("failed to persist record snapshot", "key", w.key, "error", err)
		}
	}
}
