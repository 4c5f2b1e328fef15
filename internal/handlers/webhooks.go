package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/casedesk/casedesk/internal/auth"
	"github.com/casedesk/casedesk/internal/cases"
	"github.com/casedesk/casedesk/internal/config"
	"github.com/casedesk/casedesk/internal/documents"
	"github.com/casedesk/casedesk/internal/ingest"
	"github.com/casedesk/casedesk/internal/message"
)

const maxWebhookBody = 1 << 20

type Ingester interface {
	Ingest(ctx context.Context, p ingest.Payload) (message.Message, error)
}

type CaseUpserter interface {
	Upsert(ctx context.Context, req cases.UpsertRequest) (cases.Case, error)
}

type DocumentCreator interface {
	Create(ctx context.Context, req documents.CreateRequest) (documents.Document, error)
}

// N8NWebhookHandler receives WhatsApp, case and document events from n8n.
type N8NWebhookHandler struct {
	ingester  Ingester
	cases     CaseUpserter
	documents DocumentCreator
	cfg       config.WebhooksConfig
	logger    *slog.Logger
}

func NewN8NWebhookHandler(log *slog.Logger, cfg config.Config, ingester *ingest.Service, caseService *cases.Service, documentService *documents.Service) *N8NWebhookHandler {
	return newN8NWebhookHandler(log, cfg.Webhooks, ingester, caseService, documentService)
}

func newN8NWebhookHandler(log *slog.Logger, cfg config.WebhooksConfig, ingester Ingester, caseService CaseUpserter, documentService DocumentCreator) *N8NWebhookHandler {
	if cfg.SignatureHeader == "" {
		cfg.SignatureHeader = config.DefaultSignatureHeader
	}
	return &N8NWebhookHandler{
		ingester:  ingester,
		cases:     caseService,
		documents: documentService,
		cfg:       cfg,
		logger:    log.With(slog.String("handler", "n8n_webhook")),
	}
}

func (h *N8NWebhookHandler) Register(e *echo.Echo) {
	g := e.Group("/webhooks/n8n",
		middleware.BodyLimit("1M"),
		auth.WebhookSignature(h.cfg.Secret, h.cfg.SignatureHeader, maxWebhookBody),
	)
	g.POST("/whatsapp", h.HandleWhatsApp)
	g.POST("/cases", h.HandleCase)
	g.POST("/documents", h.HandleDocument)
}

// HandleWhatsApp godoc
// @Summary Ingest a WhatsApp message
// @Description Stores the message keyed on message_id and links it to an open case when one matches
// @Tags webhooks
// @Param payload body ingest.Payload true "WhatsApp message"
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /webhooks/n8n/whatsapp [post]
func (h *N8NWebhookHandler) HandleWhatsApp(c echo.Context) error {
	var payload ingest.Payload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	stored, err := h.ingester.Ingest(c.Request().Context(), payload)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			if len(verr.Missing) > 0 {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
			}
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error()})
		}
		h.logger.Error("whatsapp ingest failed", slog.String("message_id", payload.MessageID), slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, WebhookResponse{Success: true, Data: stored})
}

// HandleCase godoc
// @Summary Upsert a case
// @Tags webhooks
// @Param payload body cases.UpsertRequest true "Case"
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /webhooks/n8n/cases [post]
func (h *N8NWebhookHandler) HandleCase(c echo.Context) error {
	var req cases.UpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	item, err := h.cases.Upsert(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, cases.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields: case_number and title"})
		}
		if isValidationFailure(err) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("case upsert failed", slog.String("case_number", req.CaseNumber), slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, WebhookResponse{Success: true, Data: item})
}

// HandleDocument godoc
// @Summary Register a document
// @Tags webhooks
// @Param payload body documents.CreateRequest true "Document"
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /webhooks/n8n/documents [post]
func (h *N8NWebhookHandler) HandleDocument(c echo.Context) error {
	var req documents.CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	doc, err := h.documents.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, documents.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields: file_name and file_url"})
		}
		if isValidationFailure(err) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("document create failed", slog.String("file_name", req.FileName), slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, WebhookResponse{Success: true, Data: doc})
}

func isValidationFailure(err error) bool {
	return errors.Is(err, cases.ErrInvalidRequest) || errors.Is(err, documents.ErrInvalidRequest)
}
