package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/admin"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/hazards"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/stream"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/system"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/vehicle"
	"github.com/Harissh-lab/arm-scout/internal/config"
	"github.com/Harissh-lab/arm-scout/internal/middleware"
)

type Handlers struct {
	Admin   *admin.Handler
	Hazards *hazards.Handler
	Vehicle *vehicle.Handler
	System  *system.Handler
	Stream  *stream.Hub
}

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	return &Server{
		logger: logger,
		router: InitRouter(cfg, h, logger),
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, h Handlers, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", h.System.SystemHealth)

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKey(cfg.APIKey, logger))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Delete("/hazards", h.Admin.AdminHazardsClear)
			ar.Post("/hazards/sweep", h.Admin.AdminHazardsSweep)
			ar.Delete("/detections", h.Admin.AdminDetectionsClear)
		})

		// PUBLIC
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Limit(20, 40, 5*time.Minute, logger))

			pr.Route("/hazards", func(hr chi.Router) {
				hr.Get("/", h.Hazards.HazardList)
				hr.Post("/", h.Hazards.HazardCreate)
				hr.Get("/stats", h.Hazards.HazardStats)
				hr.Get("/nearby", h.Hazards.HazardNearby)

				hr.Route("/{id}", func(ir chi.Router) {
					ir.Get("/", h.Hazards.HazardGet)
					ir.Patch("/", h.Hazards.HazardUpdate)
					ir.Post("/confirm", h.Hazards.HazardConfirm)
					ir.Post("/gone", h.Hazards.HazardGone)
					ir.Get("/progress", h.Hazards.HazardProgress)
				})
			})

			pr.Route("/detections", func(dr chi.Router) {
				dr.Get("/", h.Vehicle.DetectionList)
				dr.Post("/", h.Vehicle.DetectionCreate)
				dr.Post("/simulate", h.Vehicle.DetectionSimulate)
			})

			pr.Get("/position", h.Vehicle.PositionGet)
			pr.Post("/position", h.Vehicle.PositionUpdate)
			pr.Get("/alerts", h.Vehicle.AlertsGet)
		})

		// the stream is long-lived; no per-request limiter
		api.Get("/alerts/ws", h.Stream.ServeWS)
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
