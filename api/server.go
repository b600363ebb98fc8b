package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

const notFoundMessage = "Endpoint not found"

type Server struct {
	*http.Server
	startupTime time.Time
	contacts    *services.ContactService
	db          database.Database
}

func NewServer(cfg config.Config, db database.Database, notifiers []services.Notifier) (Server, error) {
	startupTime := time.Now()
	contacts := services.NewContactService(db.ContactRequestRepo(), notifiers, cfg.Mail.Timeout)

	router := newRouter(db, withConfig(cfg), withStartupTime(startupTime), withContactService(contacts))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return Server{Server: server, startupTime: startupTime, contacts: contacts, db: db}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
	contacts    *services.ContactService
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withContactService(contacts *services.ContactService) func(*router) {
	return func(r *router) {
		r.contacts = contacts
	}
}

func newRouter(db database.Database, opts ...func(*router)) *chi.Mux {
	router := router{config: config.Default(), startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}
	if router.contacts == nil {
		router.contacts = services.NewContactService(db.ContactRequestRepo(), nil, router.config.Mail.Timeout)
	}

	cfg := router.config
	notFound := NewResponder(log.With().Str("handlerName", "notFound").Logger())

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(securityHeaders)
	chiRouter.Use(prometheusMiddleware)
	chiRouter.Use(HTTPLoggingMiddleware(cfg.Logging.Format))

	chiRouter.Use(CORSCheckMiddleware(cfg.Security.CORSOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Must be registered before mounting so sub-routers inherit them.
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, errs.NewNotFoundError(notFoundMessage))
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, errs.NewNotFoundError(notFoundMessage))
	})

	handlers, authService := initializeHandlers(db, cfg, router.contacts, router.startupTime)
	authMiddleware := newAuthMiddleware(authService)

	chiRouter.Handle("/metrics", metrics.Handler())

	chiRouter.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow, cfg.Security.RateLimitDisabled))
		setupAPIRoutes(r, handlers, authMiddleware)
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

// ShutdownGracefully stops accepting requests, waits for in-flight contact
// notifications, then closes the database, all within timeout.
func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}

	if err := s.contacts.Drain(gracefulCtx); err != nil {
		log.Warn().Err(err).Msg("Contact notifications still pending at shutdown")
	}

	if err := s.db.Close(gracefulCtx); err != nil {
		log.Error().Err(err).Msg("Error closing the database")
	}
}
