package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, cache.RedisClient, events.EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a dependency name to its checker. Nil checkers are
// skipped, so optional dependencies can be registered unconditionally.
type HealthChecks map[string]HealthChecker

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler returns an http.HandlerFunc that checks all registered
// HealthCheckers concurrently and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		var mu sync.Mutex

		var g errgroup.Group
		for name, check := range checks {
			if check == nil {
				continue
			}
			g.Go(func() error {
				result := "ok"
				if err := check.Ping(ctx); err != nil {
					result = "unreachable"
				}
				mu.Lock()
				resp.Checks[name] = result
				if result != "ok" {
					resp.Status = "degraded"
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
