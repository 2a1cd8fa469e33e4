// Package di provides dependency injection configuration for the HatKhata server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/config"
	"github.com/hatkhataapp/hatkhata-server/internal/di/providers"
	"github.com/hatkhataapp/hatkhata-server/internal/export"
	"github.com/hatkhataapp/hatkhata-server/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideBackend)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideExporter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all providers in dependency order and returns once
// the HTTP server is running.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[providers.Backend](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*export.Exporter](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
