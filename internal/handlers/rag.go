package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk/internal/n8n"
)

type RAGQuerier interface {
	QueryRAG(ctx context.Context, query string) (json.RawMessage, error)
}

type RAGHandler struct {
	rag    RAGQuerier
	logger *slog.Logger
}

func NewRAGHandler(log *slog.Logger, client *n8n.Client) *RAGHandler {
	return newRAGHandler(log, client)
}

func newRAGHandler(log *slog.Logger, rag RAGQuerier) *RAGHandler {
	return &RAGHandler{rag: rag, logger: log.With(slog.String("handler", "rag"))}
}

func (h *RAGHandler) Register(e *echo.Echo) {
	e.POST("/api/rag/query", h.Query)
}

type RAGQueryRequest struct {
	Query string `json:"query"`
}

// Query godoc
// @Summary Ask the document knowledge base
// @Description Forwards the query to the n8n RAG workflow and returns its reply unchanged
// @Tags rag
// @Param payload body RAGQueryRequest true "Query"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/rag/query [post]
func (h *RAGHandler) Query(c echo.Context) error {
	var req RAGQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	reply, err := h.rag.QueryRAG(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, n8n.ErrWebhookNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "rag webhook not configured")
		}
		h.logger.Error("rag query failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSONBlob(http.StatusOK, reply)
}
