package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// writeQueueSize bounds the pending write-behind queue. Snapshots are small
// and mutations are user-paced, so the queue should never fill in practice.
const writeQueueSize = 256

type pendingWrite struct {
	key  string
	data []byte
}

// BadgerBackend is the default Durable implementation, a Badger database
// with a single writer goroutine. Writes for a key are applied in the order
// the snapshots were taken, so the last persisted state always matches the
// last mutation.
type BadgerBackend struct {
	db     *badger.DB
	logger *slog.Logger

	writes    chan pendingWrite
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// OpenBadger opens the record database at the given path.
func OpenBadger(path string, logger *slog.Logger) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	b := &BadgerBackend{
		db:     db,
		logger: logger,
		writes: make(chan pendingWrite, writeQueueSize),
	}

	b.wg.Add(1)
	go b.writeLoop()

	if logger != nil {
		logger.Info("record database opened", "path", path, "driver", "badger")
	}

	return b, nil
}

// Load implements Durable.
func (b *BadgerBackend) Load(key string, dest any) error {
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// Save implements Durable. The value is serialized immediately; the disk
// write happens on the writer goroutine. If the queue is full the snapshot
// is dropped with a warning — a later mutation will persist a newer one.
func (b *BadgerBackend) Save(key string, value any) {
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
func (b *BadgerBackend) Close() error {
	b.closeOnce.Do(func() {
		close(b.writes)
	})
	b.wg.Wait()
	return b.db.Close()
}

// writeLoop applies queued snapshots until the queue is closed. Failures
// are logged and swallowed: in-memory state stays the source of truth for
// the running session.
func (b *BadgerBackend) writeLoop() {
	defer b.wg.Done()

	for w := range b.writes {
		err := b.db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte(w.key), w.data)
		})
		if err != nil && b.logger != nil {
			b.logger.Warn("failed to persist record snapshot", "key", w.key, "error", err)
		}
	}
}
