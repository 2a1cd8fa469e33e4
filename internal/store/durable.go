package store

import (
	"encoding/json/v2"
	"errors"
	"sync"
)

// Record keys for the persisted snapshots. Each store serializes its entire
// in-memory state under one stable key; there are no partial-record updates
// at the storage layer.
const (
	RecordLists    = "record:lists"
	RecordTags     = "record:tags"
	RecordUser     = "record:user"
	RecordSettings = "record:settings"
	RecordInstance = "record:instance"
)

// ErrRecordNotFound is returned by Durable.Load when no snapshot exists yet.
var ErrRecordNotFound = errors.New("record not found")

// Durable is the write-behind persistence backend for named whole-snapshot
// records. Save serializes synchronously (so the snapshot is captured at
// call time) and completes the disk write in the background; callers never
// wait for durability and never see write failures. Load is synchronous and
// used only during rehydration at startup.
type Durable interface {
	Load(key string, dest any) error
	Save(key string, value any)
}

// EventEmitter is the interface for broadcasting store changes.
// Stores use this to notify connected clients without depending on SSE
// implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// Memory is an in-memory Durable for tests. Saves apply synchronously, so a
// test can assert on the persisted snapshot immediately after a mutation.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte

	// FailLoads makes every Load return an error, for rehydration-failure tests.
	FailLoads bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// Load implements Durable.
func (m *Memory) Load(key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLoads {
		return errors.New("memory backend: load failure injected")
	}

	data, ok := m.records[key]
	if !ok {
		return ErrRecordNotFound
	}
	return json.Unmarshal(data, dest)
}

// Save implements Durable.
func (m *Memory) Save(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.records[key] = data
	m.mu.Unlock()
}

// Snapshot returns the raw persisted bytes for a key, or nil.
func (m *Memory) Snapshot(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[key]
}
