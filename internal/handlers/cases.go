package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk/internal/cases"
	"github.com/casedesk/casedesk/internal/documents"
)

type CaseReader interface {
	List(ctx context.Context, status string) ([]cases.Case, error)
	Get(ctx context.Context, id string) (cases.Case, error)
}

type CaseDocumentLister interface {
	ListByCase(ctx context.Context, caseID string) ([]documents.Document, error)
}

type CaseHandler struct {
	cases     CaseReader
	documents CaseDocumentLister
	logger    *slog.Logger
}

func NewCaseHandler(log *slog.Logger, caseService *cases.Service, documentService *documents.Service) *CaseHandler {
	return newCaseHandler(log, caseService, documentService)
}

func newCaseHandler(log *slog.Logger, caseReader CaseReader, docs CaseDocumentLister) *CaseHandler {
	return &CaseHandler{
		cases:     caseReader,
		documents: docs,
		logger:    log.With(slog.String("handler", "case")),
	}
}

func (h *CaseHandler) Register(e *echo.Echo) {
	group := e.Group("/api/cases")
	group.GET("", h.ListCases)
	group.GET("/:id", h.GetCase)
	group.GET("/:id/documents", h.ListCaseDocuments)
}

// ListCases godoc
// @Summary List cases
// @Tags cases
// @Param status query string false "Filter by status"
// @Success 200 {array} cases.Case
// @Failure 500 {object} ErrorResponse
// @Router /api/cases [get]
func (h *CaseHandler) ListCases(c echo.Context) error {
	items, err := h.cases.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// GetCase godoc
// @Summary Get a case
// @Tags cases
// @Param id path string true "Case ID"
// @Success 200 {object} cases.Case
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/cases/{id} [get]
func (h *CaseHandler) GetCase(c echo.Context) error {
	item, err := h.cases.Get(c.Request().Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

// ListCaseDocuments godoc
// @Summary List documents attached to a case
// @Tags cases
// @Param id path string true "Case ID"
// @Success 200 {array} documents.Document
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/cases/{id}/documents [get]
func (h *CaseHandler) ListCaseDocuments(c echo.Context) error {
	items, err := h.documents.ListByCase(c.Request().Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		if errors.Is(err, documents.ErrInvalidRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
