package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk/internal/auth"
	"github.com/casedesk/casedesk/internal/config"
	"github.com/casedesk/casedesk/internal/documents"
	"github.com/casedesk/casedesk/internal/n8n"
)

type DriveUploadService interface {
	UploadToDrive(ctx context.Context, req documents.UploadRequest) (documents.UploadResult, error)
}

// DocumentHandler accepts front-end uploads and forwards them to Google Drive via n8n.
type DocumentHandler struct {
	uploads  DriveUploadService
	maxBytes int64
	logger   *slog.Logger
}

func NewDocumentHandler(log *slog.Logger, cfg config.Config, documentService *documents.Service) *DocumentHandler {
	return newDocumentHandler(log, cfg.Webhooks.MaxUploadBytes, documentService)
}

func newDocumentHandler(log *slog.Logger, maxBytes int64, uploads DriveUploadService) *DocumentHandler {
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxUploadSizeBytes
	}
	return &DocumentHandler{
		uploads:  uploads,
		maxBytes: maxBytes,
		logger:   log.With(slog.String("handler", "document")),
	}
}

func (h *DocumentHandler) Register(e *echo.Echo) {
	e.POST("/api/documents/upload", h.Upload)
}

type uploadResponse struct {
	Success  bool               `json:"success"`
	Data     documents.Document `json:"data"`
	DriveURL string             `json:"drive_url"`
	Message  string             `json:"message"`
}

// Upload godoc
// @Summary Upload a document to Google Drive
// @Tags documents
// @Accept multipart/form-data
// @Param file formData file true "File"
// @Param case_id formData string false "Case ID"
// @Param user_id formData string false "Uploader ID, defaults to the token subject"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/documents/upload [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	if fileHeader.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if int64(len(content)) > h.maxBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
	}

	uploadedBy := strings.TrimSpace(c.FormValue("user_id"))
	if uploadedBy == "" {
		if userID, err := auth.UserIDFromContext(c); err == nil {
			uploadedBy = userID
		}
	}
	fileType := fileHeader.Header.Get(echo.HeaderContentType)

	result, err := h.uploads.UploadToDrive(c.Request().Context(), documents.UploadRequest{
		FileName:   fileHeader.Filename,
		FileType:   fileType,
		Content:    content,
		CaseID:     strings.TrimSpace(c.FormValue("case_id")),
		UploadedBy: uploadedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, n8n.ErrWebhookNotConfigured):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "upload webhook not configured")
		case errors.Is(err, documents.ErrInvalidRequest):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("drive upload failed", slog.String("file_name", fileHeader.Filename), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.logger.Info("document uploaded",
		slog.String("document_id", result.Document.ID),
		slog.String("case_id", strings.TrimSpace(c.FormValue("case_id"))),
		slog.String("uploaded_by", uploadedBy),
		slog.String("role", auth.RoleFromContext(c)))
	return c.JSON(http.StatusOK, uploadResponse{
		Success:  true,
		Data:     result.Document,
		DriveURL: result.DriveURL,
		Message:  "File uploaded successfully",
	})
}
