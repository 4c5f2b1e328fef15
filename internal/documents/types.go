package documents

import (
	"errors"
	"time"
)

var (
	ErrMissingFields  = errors.New("missing required fields: file_name and file_url")
	ErrInvalidRequest = errors.New("invalid document")
)

// Document is a file attached to a case.
type Document struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	FileType   *string   `json:"file_type"`
	FileSize   *int64    `json:"file_size"`
	CaseID     *string   `json:"case_id"`
	UploadedBy *string   `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateRequest is the documents webhook payload.
type CreateRequest struct {
	FileName   string `json:"file_name" validate:"required,max=255"`
	FileURL    string `json:"file_url" validate:"required,url"`
	FileType   string `json:"file_type" validate:"max=255"`
	FileSize   *int64 `json:"file_size" validate:"omitempty,min=0"`
	CaseID     string `json:"case_id" validate:"omitempty,uuid"`
	UploadedBy string `json:"uploaded_by" validate:"omitempty,uuid"`
}

// UploadRequest carries a file received from the front end for Drive storage.
type UploadRequest struct {
	FileName   string
	FileType   string
	Content    []byte
	CaseID     string
	UploadedBy string
}

// UploadResult is the stored document plus the Drive link returned by n8n.
type UploadResult struct {
	Document Document `json:"data"`
	DriveURL string   `json:"drive_url"`
}
