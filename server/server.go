// Package server exposes source health, run history and admin poll triggers over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/health_reporter.go -pkg mocks -skip-ensure -fmt goimports . HealthReporter
//go:generate moq -out mocks/run_reader.go -pkg mocks -skip-ensure -fmt goimports . RunReader
//go:generate moq -out mocks/triggers.go -pkg mocks -skip-ensure -fmt goimports . Triggers

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	health   HealthReporter
	runs     RunReader
	triggers Triggers
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetAdminCredentials() (user, password string)
}

// HealthReporter reports health of all configured sources
type HealthReporter interface {
	GetSourceHealth(ctx context.Context) ([]domain.HealthReport, error)
}

// RunReader reads the run log
type RunReader interface {
	RecentRuns(ctx context.Context, key string, limit int) ([]domain.RunRecord, error)
}

// Triggers schedules on-demand polls
type Triggers interface {
	TriggerSource(ctx context.Context, key string) (domain.TriggerResult, error)
	TriggerAllSources(ctx context.Context, delay time.Duration) (domain.TriggerAllResult, error)
}

// New initializes a new server instance
func New(cfg ConfigProvider, health HealthReporter, runs RunReader, triggers Triggers, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		health:   health,
		runs:     runs,
		triggers: triggers,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("ingest", "hanstudy", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes. Admin routes are mounted only if admin password is set.
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /health", s.healthHandler)
		r.HandleFunc("GET /runs", s.runsHandler)

		user, passwd := s.config.GetAdminCredentials()
		if passwd == "" {
			lgr.Printf("[INFO] admin password not set, trigger endpoints disabled")
			return
		}
		r.Mount("/admin").Route(func(admin *routegroup.Bundle) {
			admin.Use(rest.BasicAuthWithUserPasswd(user, passwd))
			admin.HandleFunc("POST /sources/trigger", s.triggerAllHandler)
			admin.HandleFunc("POST /sources/{key}/trigger", s.triggerSourceHandler)
		})
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
