package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/myday-gateway/internal/api/schema"
	"github.com/skybi/myday-gateway/internal/config"
	"github.com/skybi/myday-gateway/internal/myday"
)

var shutdownTimeout = 10 * time.Second

// Upstream defines the myday operations exposed by the gateway API
type Upstream interface {
	// Expiry retrieves the expiry of the current myday session
	Expiry(ctx context.Context) (string, error)

	// SessionsByDate retrieves all sessions between the given start and end times
	SessionsByDate(ctx context.Context, startTime, endTime string) ([]myday.Session, error)

	// SessionsByCode retrieves all sessions matching the given registration code
	SessionsByCode(ctx context.Context, registrationCode uint64) ([]myday.Session, error)

	// Register registers the attendance at a session
	Register(ctx context.Context, sessionID uint64, registrationCode string) error
}

var _ Upstream = (*myday.Client)(nil)

// Service represents the gateway API service
type Service struct {
	server *http.Server

	Config   *config.Config
	Upstream Upstream

	writer *schema.Writer
}

// Startup starts up the gateway API
func (service *Service) Startup() error {
	server := &http.Server{
		Addr:              service.Config.ListenAddress(),
		Handler:           service.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the gateway API
func (service *Service) Shutdown() {
	if service.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := service.server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("could not gracefully shut down the gateway API")
			service.server.Close()
		}
		service.server = nil
	}
}

// Handler builds the HTTP handler serving the gateway API
func (service *Service) Handler() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the gateway API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(requestID)
	router.Use(hlog.AccessHandler(logAccess))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: service.Config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{headerRequestID},
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the API endpoint handlers
	service.registerEndpoints(router)

	return router
}

func (service *Service) registerEndpoints(router chi.Router) {
	// Register the operational endpoints
	router.Get("/health", service.EndpointHealth)
	router.Handle("/metrics", promhttp.Handler())

	// Register the myday session endpoints
	router.Get("/expiry", service.EndpointGetExpiry)
	router.Get("/sessions", service.EndpointGetSessions)
	router.With(service.MiddlewareLimitBody).Post("/register", service.EndpointRegister)
}

// EndpointHealth handles the 'GET /health' endpoint
func (service *Service) EndpointHealth(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteNoContent(writer)
}
