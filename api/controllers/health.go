package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// Pinger is anything the readiness probe should check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness probes.
type HealthController struct {
	deps map[string]Pinger
	logg *logger.Logger
}

func NewHealthController(logg *logger.Logger, deps map[string]Pinger) *HealthController {
	return &HealthController{deps: deps, logg: logg}
}

func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	statuses := make(map[string]string, len(c.deps))
	healthy := true
	for name, dep := range c.deps {
		if err := dep.Ping(ctx); err != nil {
			statuses[name] = "unavailable"
			healthy = false
			continue
		}
		statuses[name] = "ok"
	}

	if !healthy {
		responses.WriteError(ctx, c.logg, w,
			errors.New(errors.CodeDependency, "dependency unavailable").WithDetails(statuses))
		return
	}
	responses.WriteData(w, http.StatusOK, statuses)
}
