package cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/casedesk/casedesk/internal/db"
	"github.com/casedesk/casedesk/internal/db/sqlc"
)

// Service provides case upsert and read access.
type Service struct {
	queries  *sqlc.Queries
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log.With(slog.String("service", "cases")),
	}
}

// Normalize trims the request and applies the default status.
func (r UpsertRequest) Normalize() UpsertRequest {
	r.CaseNumber = strings.TrimSpace(r.CaseNumber)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = strings.TrimSpace(r.Status)
	r.ClientID = strings.TrimSpace(r.ClientID)
	r.LawyerID = strings.TrimSpace(r.LawyerID)
	if r.Status == "" {
		r.Status = StatusNew
	}
	return r
}

// Validate returns ErrMissingFields when case_number or title is absent and a
// descriptive error for any other constraint.
func (s *Service) Validate(req UpsertRequest) error {
	if req.CaseNumber == "" || req.Title == "" {
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

// Upsert inserts or updates a case keyed on case_number.
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (Case, error) {
	if s.queries == nil {
		return Case{}, fmt.Errorf("case queries not configured")
	}
	req = req.Normalize()
	if err := s.Validate(req); err != nil {
		return Case{}, err
	}
	clientID, err := db.ParseOptionalUUID(req.ClientID)
	if err != nil {
		return Case{}, err
	}
	lawyerID, err := db.ParseOptionalUUID(req.LawyerID)
	if err != nil {
		return Case{}, err
	}
	row, err := s.queries.UpsertCase(ctx, sqlc.UpsertCaseParams{
		CaseNumber:  req.CaseNumber,
		Title:       req.Title,
		Description: db.ToText(req.Description),
		Status:      req.Status,
		ClientID:    clientID,
		LawyerID:    lawyerID,
	})
	if err != nil {
		return Case{}, err
	}
	s.logger.Info("case upserted", slog.String("case_number", row.CaseNumber), slog.String("status", row.Status))
	return toCase(row), nil
}

// ListOpen returns every case whose status is not closed.
func (s *Service) ListOpen(ctx context.Context) ([]OpenCase, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("case queries not configured")
	}
	rows, err := s.queries.ListOpenCases(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]OpenCase, 0, len(rows))
	for _, row := range rows {
		if row.Status == StatusClosed {
			continue
		}
		items = append(items, OpenCase{
			ID:          db.UUIDToString(row.ID),
			CaseNumber:  row.CaseNumber,
			Title:       row.Title,
			Description: db.TextToString(row.Description),
			Status:      row.Status,
		})
	}
	return items, nil
}

// List returns all cases, or only those in status when it is set.
func (s *Service) List(ctx context.Context, status string) ([]Case, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("case queries not configured")
	}
	var (
		rows []sqlc.Case
		err  error
	)
	if status = strings.TrimSpace(status); status != "" {
		rows, err = s.queries.ListCasesByStatus(ctx, status)
	} else {
		rows, err = s.queries.ListCases(ctx)
	}
	if err != nil {
		return nil, err
	}
	items := make([]Case, 0, len(rows))
	for _, row := range rows {
		items = append(items, toCase(row))
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (Case, error) {
	if s.queries == nil {
		return Case{}, fmt.Errorf("case queries not configured")
	}
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return Case{}, ErrCaseNotFound
	}
	row, err := s.queries.GetCaseByID(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Case{}, ErrCaseNotFound
		}
		return Case{}, err
	}
	return toCase(row), nil
}

func toCase(row sqlc.Case) Case {
	return Case{
		ID:          db.UUIDToString(row.ID),
		CaseNumber:  row.CaseNumber,
		Title:       row.Title,
		Description: db.TextPtr(row.Description),
		Status:      row.Status,
		ClientID:    uuidPtr(db.UUIDToString(row.ClientID)),
		LawyerID:    uuidPtr(db.UUIDToString(row.LawyerID)),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func uuidPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
