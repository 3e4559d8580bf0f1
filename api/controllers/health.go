package controllers

import (
	"net/http"

	"github.com/minjaepark/commerce-backend/api/responses"
	"github.com/minjaepark/commerce-backend/pkg/config"
	"github.com/minjaepark/commerce-backend/pkg/db"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Commerce-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and cache both answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Commerce-Env", cfg.App.Env)

		checks := map[string]string{}

		if dbP == nil {
			checks["database"] = "unconfigured"
		} else if err := dbP.Ping(r.Context()); err != nil {
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}

		if redisP == nil {
			checks["redis"] = "unconfigured"
		} else if err := redisP.Ping(r.Context()); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}

		for _, status := range checks {
			if status == "down" {
				err := pkgerrors.New(pkgerrors.CodeInternal, "dependency not ready")
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
