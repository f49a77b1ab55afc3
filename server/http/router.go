package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"league-recon/internal/config"
	"league-recon/internal/middleware"
	resHnd "league-recon/internal/resolve/handler"
	resSvc "league-recon/internal/resolve/service"
	"league-recon/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, sink resSvc.Sink) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/resolve", resHnd.Resolve(cfg, logger, sink))
	r.Post("/duplicates", resHnd.Duplicates(cfg, logger))

	return r
}
