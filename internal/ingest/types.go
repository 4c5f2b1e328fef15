package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/casedesk/casedesk/internal/cases"
)

// Payload is an inbound WhatsApp message event as posted by n8n.
type Payload struct {
	MessageID      string `json:"message_id"`
	ChatID         string `json:"chat_id"`
	FromNumber     string `json:"from_number"`
	ToNumber       string `json:"to_number"`
	Content        string `json:"message_content"`
	Kind           string `json:"message_type"`
	DeliveryStatus string `json:"status"`
	LinkedCaseID   string `json:"case_id"`
}

// ValidationError reports a payload the caller must fix. Nothing was written.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return "invalid payload: " + e.Reason
}

// StoreError wraps a failed message upsert.
type StoreError struct {
	MessageID string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store message %s: %v", e.MessageID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// CaseLister reads the cases eligible for automatic linking.
type CaseLister interface {
	ListOpen(ctx context.Context) ([]cases.OpenCase, error)
}
