package api

import (
	"errors"
	"net/http"

	"github.com/freelancetrack/invoice-server/internal/api/portal"
	"github.com/freelancetrack/invoice-server/internal/api/portal/session"
	"github.com/freelancetrack/invoice-server/internal/config"
	"github.com/freelancetrack/invoice-server/internal/storage"
)

// Service represents the invoice API service
type Service struct {
	Config   *config.Config
	Storage  storage.Driver
	Sessions session.Storage
	portal   *portal.Service
}

// Startup starts up the invoice API
func (service *Service) Startup(errs chan<- error) {
	portalService := &portal.Service{
		Config:   service.Config,
		Storage:  service.Storage,
		Sessions: service.Sessions,
	}
	service.portal = portalService
	go func() {
		if err := portalService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the invoice API
func (service *Service) Shutdown() {
	if service.portal != nil {
		service.portal.Shutdown()
		service.portal = nil
	}
}
