package providers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/config"
	"github.com/hatkhataapp/hatkhata-server/internal/export"
	"github.com/hatkhataapp/hatkhata-server/internal/logger"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
	"github.com/hatkhataapp/hatkhata-server/internal/store"
	"github.com/hatkhataapp/hatkhata-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	Handler *sse.Handler
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		Handler: sse.NewHandler(manager, log.Logger),
		cancel:  cancel,
	}, nil
}

// Backend is a durable record backend with an explicit close. Both the
// Badger and SQLite backends satisfy it.
type Backend interface {
	store.Durable
	Close() error
}

// ProvideBackend provides the durable backend selected by configuration.
func ProvideBackend(i do.Injector) (Backend, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Data.Driver {
	case config.DriverSQLite:
		path := filepath.Join(cfg.Data.BasePath, "records.db")
		backend, err := sqlite.Open(path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("SQLite backend ready", "path", path)
		return backend, nil
	case config.DriverBadger:
		path := filepath.Join(cfg.Data.BasePath, "db")
		backend, err := store.OpenBadger(path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Badger backend ready", "path", path)
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown data driver %q", cfg.Data.Driver)
	}
}

// StoreHandle wraps the store with shutdown capability. Closing the handle
// drains the backend's write queue so queued snapshots reach disk.
type StoreHandle struct {
	*store.Store
	backend Backend
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.backend.Close()
}

// ProvideStore provides the rehydrated data store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	backend := do.MustInvoke[Backend](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	st, err := store.New(backend, sseHandle.Manager, nil, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Store rehydrated", "install_id", st.Instance.InstallID)

	return &StoreHandle{Store: st, backend: backend}, nil
}

// ProvideExporter provides the CSV exporter over the list store.
func ProvideExporter(i do.Injector) (*export.Exporter, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return export.NewExporter(storeHandle.Lists), nil
}
