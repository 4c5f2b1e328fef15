package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk/internal/config"
	"github.com/casedesk/casedesk/internal/healthcheck"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingHandler struct {
	db       Pinger
	checkers []healthcheck.Checker
	logger   *slog.Logger
}

func NewPingHandler(log *slog.Logger, cfg config.Config, pool *pgxpool.Pool) *PingHandler {
	h := &PingHandler{logger: log.With(slog.String("handler", "ping"))}
	if pool != nil {
		h.db = pool
		h.checkers = append(h.checkers, healthcheck.NewDatabaseChecker(pool))
	}
	h.checkers = append(h.checkers, healthcheck.NewIntegrationsChecker(cfg))
	return h
}

func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/ping", h.Ping)
	e.HEAD("/health", h.PingHead)
	e.GET("/api/health/checks", h.Checks)
}

func (h *PingHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// PingHead also checks the database so load balancers drop an instance that lost it.
func (h *PingHandler) PingHead(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}
	return c.NoContent(http.StatusOK)
}

// Checks godoc
// @Summary Runtime readiness report
// @Description Database reachability and which integrations are configured
// @Tags health
// @Success 200 {object} healthcheck.Report
// @Failure 503 {object} healthcheck.Report
// @Router /api/health/checks [get]
func (h *PingHandler) Checks(c echo.Context) error {
	report := healthcheck.Run(c.Request().Context(), h.checkers...)
	status := http.StatusOK
	if report.Status == healthcheck.StatusError {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
