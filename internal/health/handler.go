// Lamont.ai | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

// Checker reports whether a backing dependency answers within the check
// deadline.
type Checker interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name     string
	critical bool
	check    Checker
}

type Handler struct {
	deps     []dependency
	ready    atomic.Bool
	shutdown atomic.Bool
}

const checkTimeout = 5 * time.Second

// NewHandler wires the dependencies this service answers from. Postgres holds
// the user, settings and article rows, so losing it means no request can be
// served. Redis only backs the request rate limiter, which falls over to a
// process-local limiter when redis is away; a redis outage therefore degrades
// the service without taking it out of rotation.
func NewHandler(db, redis Checker) *Handler {
	h := &Handler{
		deps: []dependency{
			{name: "postgres", critical: true, check: db},
			{name: "redis", critical: false, check: redis},
		},
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{
		Status: "ok",
	})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	if !h.ready.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := h.runHealthChecks(ctx)

	criticalDown := false
	degraded := false
	for i, check := range checks {
		if check.Healthy {
			continue
		}
		if h.deps[i].critical {
			criticalDown = true
		} else {
			degraded = true
		}
	}

	status := "ok"
	statusCode := http.StatusOK
	switch {
	case criticalDown:
		status = "unavailable"
		statusCode = http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	h.writeStatus(w, statusCode, ReadinessResponse{
		Status: status,
		Checks: checks,
	})
}

func (h *Handler) runHealthChecks(ctx context.Context) []HealthCheck {
	var wg sync.WaitGroup
	checks := make([]HealthCheck, len(h.deps))

	for i, dep := range h.deps {
		wg.Add(1)
		go func(i int, dep dependency) {
			defer wg.Done()
			checks[i] = h.checkDependency(ctx, dep)
		}(i, dep)
	}

	wg.Wait()
	return checks
}

func (h *Handler) checkDependency(
	ctx context.Context,
	dep dependency,
) HealthCheck {
	check := HealthCheck{
		Name:    dep.name,
		Healthy: true,
	}

	if dep.check == nil {
		check.Healthy = false
		check.Message = "checker not configured"
		return check
	}

	start := time.Now()
	err := dep.check.Ping(ctx)
	check.Latency = time.Since(start).String()

	if err != nil {
		check.Healthy = false
		check.Message = "ping failed"
	}

	return check
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
