package handler

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelPet_Go/internal/logger"
)

// ReadinessTimeout bounds the whole readiness probe
const ReadinessTimeout = 2 * time.Second

const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthChecker is implemented by every dependency that takes part in /readyz
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthOK})
	}
}

// HandleReadyz runs the named checks concurrently and answers 503 when any of them fails
func HandleReadyz(checks map[string]HealthChecker) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()
		log := logger.FromContext(ctx)

		errs := make([]error, len(names))
		var g errgroup.Group
		for i, name := range names {
			g.Go(func() error {
				errs[i] = checks[name].CheckHealth(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := HealthResponse{Status: HealthOK, Checks: make(map[string]string, len(names))}
		var failed []string
		for i, name := range names {
			if errs[i] != nil {
				log.Error(LogMsgReadinessFailed, "check", name, "error", errs[i])
				resp.Checks[name] = HealthUnavailable
				failed = append(failed, name)
				continue
			}
			resp.Checks[name] = HealthOK
		}

		status := http.StatusOK
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
			resp.Status = HealthUnavailable
			resp.Message = strings.Join(failed, ", ") + " check failed"
		}
		respondJSON(w, status, resp)
	}
}
