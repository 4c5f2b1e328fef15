package cases

import (
	"errors"
	"time"
)

const (
	StatusNew           = "new"
	StatusInProgress    = "in_progress"
	StatusPendingReview = "pending_review"
	StatusClosed        = "closed"
	StatusArchived      = "archived"
)

var (
	ErrCaseNotFound   = errors.New("case not found")
	ErrMissingFields  = errors.New("missing required fields: case_number and title")
	ErrInvalidRequest = errors.New("invalid case")
)

// Case is a legal case record.
type Case struct {
	ID          string    `json:"id"`
	CaseNumber  string    `json:"case_number"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	ClientID    *string   `json:"client_id"`
	LawyerID    *string   `json:"lawyer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OpenCase is the read-only projection used for automatic message linking.
type OpenCase struct {
	ID          string `json:"id"`
	CaseNumber  string `json:"case_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpsertRequest is the cases webhook payload. Conflict key is case_number.
// Any non-empty case_number and title are accepted; status and the party
// ids are checked against the column types.
type UpsertRequest struct {
	CaseNumber  string `json:"case_number" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=new in_progress pending_review closed archived"`
	ClientID    string `json:"client_id" validate:"omitempty,uuid"`
	LawyerID    string `json:"lawyer_id" validate:"omitempty,uuid"`
}
