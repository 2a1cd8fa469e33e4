package sse

import (
	"context"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/hatkhataapp/hatkhata-server/internal/id"
)

const (
	managerQueueSize  = 1000
	clientQueueSize   = 100
	heartbeatInterval = 30 * time.Second
)

// Client is one connected event stream.
type Client struct {
	ConnectedAt time.Time
	EventChan   chan Event
	Done        chan struct{}
	ID          string
}

// Manager fans store change events out to every connected client. It
// satisfies the store's EventEmitter interface, so a single manager
// instance is handed to all four stores at construction.
type Manager struct {
	clients map[string]*Client
	events  chan Event
	logger  *slog.Logger
	wg      sync.WaitGroup
	mu      sync.RWMutex

	// closed guards against Emit racing the channel close in Shutdown.
	closedMu sync.RWMutex
	closed   bool
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		events:  make(chan Event, managerQueueSize),
		logger:  logger,
	}
}

// Start runs the fan-out loop until ctx is canceled. Call once, in its
// own goroutine, before the HTTP server starts accepting connections.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	defer m.wg.Done()

	m.logger.Info("event manager starting")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-m.events:
			if !ok {
				// Shutdown closed the queue; the drain goroutine owns
				// whatever was still buffered.
				m.logger.Info("event manager stopping")
				m.dropAllClients()
				return
			}
			m.fanOut(event)
		case <-ticker.C:
			m.fanOut(NewHeartbeatEvent())
		case <-ctx.Done():
			m.logger.Info("event manager stopping")
			m.dropAllClients()
			return
		}
	}
}

// Shutdown stops accepting events, drains what is already queued, and
// waits for the fan-out loop to exit. Bounded by ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.closedMu.Lock()
	m.closed = true
	close(m.events)
	m.closedMu.Unlock()

	drained := make(chan struct{})
	go func() {
		for event := range m.events {
			m.fanOut(event)
		}
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		m.logger.Warn("event drain timed out, queued events lost")
	}

	m.wg.Wait()
	m.logger.Info("event manager stopped")
	return nil
}

func (m *Manager) fanOut(event Event) {
	var delivered, dropped int

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		// A stuck client loses events rather than blocking everyone.
		select {
		case client.EventChan <- event:
			delivered++
		default:
			dropped++
			m.logger.Warn("slow client dropped an event",
				slog.String("client_id", client.ID),
				slog.String("event_type", string(event.Type)))
		}
	}

	if event.Type != EventHeartbeat {
		m.logger.Debug("event fanned out",
			slog.String("event_type", string(event.Type)),
			slog.Int("delivered", delivered),
			slog.Int("dropped", dropped))
	}
}

// Connect registers a new client stream.
func (m *Manager) Connect() (*Client, error) {
	clientID, err := id.Generate(id.PrefixSSE)
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:          clientID,
		EventChan:   make(chan Event, clientQueueSize),
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	m.clients[client.ID] = client
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("client connected",
		slog.String("client_id", clientID),
		slog.Int("total_clients", total))
	return client, nil
}

// Disconnect removes a client and closes its channels. Unknown IDs are
// a no-op.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, ok := m.clients[clientID]
	if ok {
		delete(m.clients, clientID)
	}
	total := len(m.clients)
	m.mu.Unlock()

	if !ok {
		return
	}

	close(client.Done)
	close(client.EventChan)

	m.logger.Info("client disconnected",
		slog.String("client_id", clientID),
		slog.Duration("duration", time.Since(client.ConnectedAt)),
		slog.Int("total_clients", total))
}

// Emit queues an event for fan-out. Anything that is not an Event is
// logged and dropped; emits after Shutdown are dropped silently, which
// covers stores flushing during teardown.
func (m *Manager) Emit(event any) {
	evt, ok := event.(Event)
	if !ok {
		m.logger.Error("emit of non-event value dropped")
		return
	}

	m.closedMu.RLock()
	defer m.closedMu.RUnlock()
	if m.closed {
		return
	}

	select {
	case m.events <- evt:
	default:
		m.logger.Error("event queue full, dropping event",
			slog.String("event_type", string(evt.Type)))
	}
}

// Clients iterates over the connected clients.
func (m *Manager) Clients() iter.Seq[*Client] {
	return func(yield func(*Client) bool) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		for _, client := range m.clients {
			if !yield(client) {
				return
			}
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) dropAllClients() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		close(client.Done)
		close(client.EventChan)
	}
	m.clients = make(map[string]*Client)
}
