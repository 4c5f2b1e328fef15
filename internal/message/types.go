package message

import (
	"context"
	"errors"
	"time"
)

// DeliveryStatus is the closed set of WhatsApp delivery states.
type DeliveryStatus string

const (
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusRead      DeliveryStatus = "read"
	StatusFailed    DeliveryStatus = "failed"
)

const (
	DefaultKind   = "text"
	DefaultStatus = StatusSent
)

var ErrMessageNotFound = errors.New("message not found")

// ParseDeliveryStatus maps a raw status to the enum; blank yields the default.
func ParseDeliveryStatus(raw string) (DeliveryStatus, bool) {
	switch DeliveryStatus(raw) {
	case "":
		return DefaultStatus, true
	case StatusSent, StatusDelivered, StatusRead, StatusFailed:
		return DeliveryStatus(raw), true
	default:
		return "", false
	}
}

// Message is one persisted WhatsApp message row.
type Message struct {
	ID             string         `json:"id"`
	MessageID      string         `json:"message_id"`
	ChatID         string         `json:"chat_id"`
	FromNumber     string         `json:"from_number"`
	ToNumber       string         `json:"to_number"`
	Content        *string        `json:"message_content"`
	Kind           string         `json:"message_type"`
	DeliveryStatus DeliveryStatus `json:"status"`
	LinkedCaseID   *string        `json:"linked_case_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// UpsertInput is a fully resolved record ready to be written.
type UpsertInput struct {
	MessageID      string
	ChatID         string
	FromNumber     string
	ToNumber       string
	Content        string
	Kind           string
	DeliveryStatus DeliveryStatus
	LinkedCaseID   string
}

// ListFilter narrows List. Empty CaseID lists every message.
type ListFilter struct {
	CaseID string
	Limit  int32
}

// Store is the write side used by ingestion.
type Store interface {
	Upsert(ctx context.Context, input UpsertInput) (Message, error)
}

// Service defines message read/write behavior.
type Service interface {
	Store
	List(ctx context.Context, filter ListFilter) ([]Message, error)
	GetByMessageID(ctx context.Context, messageID string) (Message, error)
}
