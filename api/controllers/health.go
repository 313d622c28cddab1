package controllers

import (
	"net/http"

	"github.com/surangaprinters/printshop-backend/api/responses"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/db"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/redis"
	"github.com/surangaprinters/printshop-backend/pkg/storage/cloudinary"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Printshop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the API's dependencies answer. A failing
// dependency flips the response to 503 so the platform stops routing traffic.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, storageP cloudinary.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Printshop-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = err.Error()
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}
		if storageP != nil {
			if err := storageP.Ping(r.Context()); err != nil {
				checks["storage"] = err.Error()
				healthy = false
			} else {
				checks["storage"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
