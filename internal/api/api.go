package api

import (
	"errors"
	"net/http"

	"github.com/skybi/myday-gateway/internal/api/gateway"
	"github.com/skybi/myday-gateway/internal/config"
)

// Service represents the gateway API service
type Service struct {
	Config   *config.Config
	Upstream gateway.Upstream
	gateway  *gateway.Service
}

// Startup starts up the gateway API in the background.
// Unexpected errors of the HTTP server are sent to errs.
func (service *Service) Startup(errs chan<- error) {
	gatewayService := &gateway.Service{
		Config:   service.Config,
		Upstream: service.Upstream,
	}
	service.gateway = gatewayService
	go func() {
		if err := gatewayService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the gateway API
func (service *Service) Shutdown() {
	if service.gateway != nil {
		service.gateway.Shutdown()
		service.gateway = nil
	}
}
