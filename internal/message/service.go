package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbpkg "github.com/casedesk/casedesk/internal/db"
	"github.com/casedesk/casedesk/internal/db/sqlc"
	"github.com/casedesk/casedesk/internal/message/event"
)

const defaultListLimit = 500

// DBService persists and reads WhatsApp messages.
type DBService struct {
	queries   *sqlc.Queries
	logger    *slog.Logger
	publisher event.Publisher
}

// NewService creates a message service.
func NewService(log *slog.Logger, queries *sqlc.Queries, publishers ...event.Publisher) *DBService {
	if log == nil {
		log = slog.Default()
	}
	var publisher event.Publisher
	if len(publishers) > 0 {
		publisher = publishers[0]
	}
	return &DBService{
		queries:   queries,
		logger:    log.With(slog.String("service", "message")),
		publisher: publisher,
	}
}

// Upsert writes the message keyed on message_id; a repeated id overwrites the row.
func (s *DBService) Upsert(ctx context.Context, input UpsertInput) (Message, error) {
	if s.queries == nil {
		return Message{}, fmt.Errorf("message queries not configured")
	}
	row, err := s.queries.UpsertMessage(ctx, sqlc.UpsertMessageParams{
		MessageID:      input.MessageID,
		ChatID:         input.ChatID,
		FromNumber:     input.FromNumber,
		ToNumber:       input.ToNumber,
		MessageContent: optionalText(input.Content),
		MessageType:    input.Kind,
		Status:         string(input.DeliveryStatus),
		LinkedCaseID:   optionalText(input.LinkedCaseID),
	})
	if err != nil {
		return Message{}, err
	}
	result := toMessage(row)
	s.publishUpserted(result)
	return result, nil
}

// List returns messages oldest-first, optionally restricted to one case.
func (s *DBService) List(ctx context.Context, filter ListFilter) ([]Message, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("message queries not configured")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var (
		rows []sqlc.WhatsappMessage
		err  error
	)
	if caseID := strings.TrimSpace(filter.CaseID); caseID != "" {
		rows, err = s.queries.ListMessagesByCase(ctx, sqlc.ListMessagesByCaseParams{
			LinkedCaseID: pgtype.Text{String: caseID, Valid: true},
			MaxCount:     limit,
		})
	} else {
		rows, err = s.queries.ListMessages(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, toMessage(row))
	}
	return messages, nil
}

func (s *DBService) GetByMessageID(ctx context.Context, messageID string) (Message, error) {
	if s.queries == nil {
		return Message{}, fmt.Errorf("message queries not configured")
	}
	row, err := s.queries.GetMessageByMessageID(ctx, strings.TrimSpace(messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, ErrMessageNotFound
		}
		return Message{}, err
	}
	return toMessage(row), nil
}

func toMessage(row sqlc.WhatsappMessage) Message {
	return Message{
		ID:             dbpkg.UUIDToString(row.ID),
		MessageID:      row.MessageID,
		ChatID:         row.ChatID,
		FromNumber:     row.FromNumber,
		ToNumber:       row.ToNumber,
		Content:        dbpkg.TextPtr(row.MessageContent),
		Kind:           row.MessageType,
		DeliveryStatus: DeliveryStatus(row.Status),
		LinkedCaseID:   dbpkg.TextPtr(row.LinkedCaseID),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

// optionalText keeps the value byte-for-byte; only the empty string is NULL.
func optionalText(value string) pgtype.Text {
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}

func (s *DBService) publishUpserted(message Message) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Warn("marshal message event failed", slog.Any("error", err))
		return
	}
	caseID := ""
	if message.LinkedCaseID != nil {
		caseID = *message.LinkedCaseID
	}
	s.publisher.Publish(event.Event{
		Type:   event.EventTypeMessageUpserted,
		CaseID: caseID,
		Data:   payload,
	})
}
