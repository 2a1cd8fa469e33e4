// Package mdns provides Avahi-based mDNS advertisement so the mobile app
// can discover the server on the LAN without manual configuration.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

const (
	// ServiceType is the mDNS service type for HatKhata servers.
	ServiceType = "_hatkhata._tcp"

	// APIVersion is the current API version advertised in TXT records.
	APIVersion = "v1"

	// ServerVersion is the current server version advertised in TXT records.
	ServerVersion = "1.0.0"
)

// Service manages mDNS advertisement through the host's Avahi daemon.
// Advertisement is best-effort: a machine without D-Bus or Avahi (a
// container, typically) runs fine without discovery.
type Service struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	server *avahi.Server
	group  *avahi.EntryGroup
	logger *slog.Logger
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Start begins advertising the server. installID and name go into TXT
// records so a device showing multiple servers can label them. Should be
// called after the HTTP server is listening.
func (s *Service) Start(installID, name string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop an existing advertisement first (restart scenarios).
	s.stopLocked()

	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("connect avahi daemon: %w", err)
	}

	group, err := server.EntryGroupNew()
	if err != nil {
		server.Close()
		conn.Close()
		return fmt.Errorf("create avahi entry group: %w", err)
	}

	host, err := os.Hostname()
	if err != nil {
		host = "hatkhata-server"
	}

	txt := [][]byte{
		[]byte("id=" + installID),
		[]byte("name=" + name),
		[]byte("version=" + ServerVersion),
		[]byte("api=" + APIVersion),
	}

	err = group.AddService(
		avahi.InterfaceUnspec,
		avahi.ProtoUnspec,
		0,
		host,        // Instance name (hostname)
		ServiceType, // Service type (_hatkhata._tcp)
		"local",     // Domain
		"",          // Host (empty = this machine)
		uint16(port),
		txt,
	)
	if err != nil {
		server.Close()
		conn.Close()
		return fmt.Errorf("add avahi service: %w", err)
	}

	if err := group.Commit(); err != nil {
		server.Close()
		conn.Close()
		return fmt.Errorf("commit avahi entry group: %w", err)
	}

	s.conn = conn
	s.server = server
	s.group = group

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", name,
		"id", installID,
	)

	return nil
}

// Stop stops mDNS advertising.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Service) stopLocked() {
	if s.server == nil {
		return
	}

	s.server.Close()
	s.conn.Close()
	s.conn = nil
	s.server = nil
	s.group = nil
	s.logger.Info("mDNS advertisement stopped")
}
