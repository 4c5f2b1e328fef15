package documents

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/casedesk/casedesk/internal/db"
	"github.com/casedesk/casedesk/internal/db/sqlc"
	"github.com/casedesk/casedesk/internal/n8n"
)

// DriveUploader stores file content in Google Drive and returns its URL.
type DriveUploader interface {
	UploadToDrive(ctx context.Context, upload n8n.DriveUpload) (string, error)
}

type Service struct {
	queries  *sqlc.Queries
	drive    DriveUploader
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(log *slog.Logger, queries *sqlc.Queries, drive DriveUploader) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		drive:    drive,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log.With(slog.String("service", "documents")),
	}
}

func (r CreateRequest) normalize() CreateRequest {
	r.FileName = strings.TrimSpace(r.FileName)
	r.FileURL = strings.TrimSpace(r.FileURL)
	r.FileType = strings.TrimSpace(r.FileType)
	r.CaseID = strings.TrimSpace(r.CaseID)
	r.UploadedBy = strings.TrimSpace(r.UploadedBy)
	return r
}

// Validate returns ErrMissingFields when file_name or file_url is absent.
func (s *Service) Validate(req CreateRequest) error {
	if req.FileName == "" || req.FileURL == "" {
		return ErrMissingFields
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrInvalidRequest, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Create inserts a document row.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Document, error) {
	if s.queries == nil {
		return Document{}, fmt.Errorf("document queries not configured")
	}
	req = req.normalize()
	if err := s.Validate(req); err != nil {
		return Document{}, err
	}
	caseID, err := db.ParseOptionalUUID(req.CaseID)
	if err != nil {
		return Document{}, err
	}
	uploadedBy, err := db.ParseOptionalUUID(req.UploadedBy)
	if err != nil {
		return Document{}, err
	}
	var size pgtype.Int8
	if req.FileSize != nil {
		size = pgtype.Int8{Int64: *req.FileSize, Valid: true}
	}
	row, err := s.queries.CreateDocument(ctx, sqlc.CreateDocumentParams{
		FileName:   req.FileName,
		FileUrl:    req.FileURL,
		FileType:   db.ToText(req.FileType),
		FileSize:   size,
		CaseID:     caseID,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		return Document{}, err
	}
	s.logger.Info("document created", slog.String("id", db.UUIDToString(row.ID)), slog.String("file_name", row.FileName))
	return toDocument(row), nil
}

// ListByCase returns the documents attached to a case, newest first.
func (s *Service) ListByCase(ctx context.Context, caseID string) ([]Document, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("document queries not configured")
	}
	pgID, err := db.ParseUUID(caseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	rows, err := s.queries.ListDocumentsByCase(ctx, pgID)
	if err != nil {
		return nil, err
	}
	items := make([]Document, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDocument(row))
	}
	return items, nil
}

// UploadToDrive sends the file through the n8n Drive workflow and records the
// returned link as a document.
func (s *Service) UploadToDrive(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if s.drive == nil {
		return UploadResult{}, n8n.ErrWebhookNotConfigured
	}
	if strings.TrimSpace(req.FileName) == "" {
		return UploadResult{}, fmt.Errorf("file name is required")
	}
	size := int64(len(req.Content))
	driveURL, err := s.drive.UploadToDrive(ctx, n8n.DriveUpload{
		FileName:   req.FileName,
		FileType:   req.FileType,
		FileSize:   size,
		FileBase64: base64.StdEncoding.EncodeToString(req.Content),
		CaseID:     req.CaseID,
		UploadedBy: req.UploadedBy,
	})
	if err != nil {
		return UploadResult{}, err
	}
	doc, err := s.Create(ctx, CreateRequest{
		FileName:   req.FileName,
		FileURL:    driveURL,
		FileType:   req.FileType,
		FileSize:   &size,
		CaseID:     req.CaseID,
		UploadedBy: req.UploadedBy,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("record uploaded document: %w", err)
	}
	return UploadResult{Document: doc, DriveURL: driveURL}, nil
}

func toDocument(row sqlc.Document) Document {
	doc := Document{
		ID:         db.UUIDToString(row.ID),
		FileName:   row.FileName,
		FileURL:    row.FileUrl,
		FileType:   db.TextPtr(row.FileType),
		CaseID:     optionalID(row.CaseID),
		UploadedBy: optionalID(row.UploadedBy),
		CreatedAt:  row.CreatedAt.Time,
	}
	if row.FileSize.Valid {
		size := row.FileSize.Int64
		doc.FileSize = &size
	}
	return doc
}

func optionalID(id pgtype.UUID) *string {
	if !id.Valid {
		return nil
	}
	s := db.UUIDToString(id)
	return &s
}
