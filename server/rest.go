package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/hanstudy/ingest/pkg/scheduler"
)

const (
	defaultRunsLimit = 50
	maxRunsLimit     = 500
)

// AdminAuthorizer accepts only requests that passed the basic auth middleware of admin routes
type AdminAuthorizer struct{}

// Authorize returns scheduler.ErrUnauthorized unless ctx is marked authorized by rest.BasicAuth
func (AdminAuthorizer) Authorize(ctx context.Context) error {
	if !rest.IsAuthorized(ctx) {
		return scheduler.ErrUnauthorized
	}
	return nil
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// healthHandler returns health report of all configured sources
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.health.GetSourceHealth(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get source health: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, report)
}

// runsHandler returns recent runs, optionally of one source
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			renderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.runs.RecentRuns(r.Context(), r.URL.Query().Get("source"), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get recent runs: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, runs)
}

// triggerSourceHandler schedules an immediate poll of one source
func (s *Server) triggerSourceHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.triggers.TriggerSource(r.Context(), r.PathValue("key"))
	if err != nil {
		renderTriggerError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusAccepted, res)
}

// triggerAllHandler schedules a poll of every enabled source after delay_ms
func (s *Server) triggerAllHandler(w http.ResponseWriter, r *http.Request) {
	var delay time.Duration
	if v := r.URL.Query().Get("delay_ms"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid delay_ms %q", v), http.StatusBadRequest)
			return
		}
		delay = time.Duration(ms) * time.Millisecond
	}

	res, err := s.triggers.TriggerAllSources(r.Context(), delay)
	if err != nil {
		renderTriggerError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusAccepted, res)
}

func renderTriggerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, scheduler.ErrUnauthorized):
		renderError(w, r, errors.New("unauthorized"), http.StatusUnauthorized)
	case errors.Is(err, scheduler.ErrSourceNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, scheduler.ErrStopped):
		renderError(w, r, err, http.StatusServiceUnavailable)
	default:
		lgr.Printf("[ERROR] trigger failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}
