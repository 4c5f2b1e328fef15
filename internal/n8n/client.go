package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/casedesk/casedesk/internal/config"
)

// ErrWebhookNotConfigured is returned when the target workflow URL is empty.
var ErrWebhookNotConfigured = errors.New("n8n webhook not configured")

const maxErrorBody = 4 << 10

// Client calls n8n workflow webhooks. URLs come from config at startup.
type Client struct {
	cfg    config.N8NConfig
	client *http.Client
	logger *slog.Logger
}

func NewClient(log *slog.Logger, cfg config.N8NConfig) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: log.With(slog.String("service", "n8n")),
	}
}

// RAGQueryConfigured reports whether the RAG query workflow is set.
func (c *Client) RAGQueryConfigured() bool {
	return strings.TrimSpace(c.cfg.RAGQueryURL) != ""
}

// UploadToDriveConfigured reports whether the Drive upload workflow is set.
func (c *Client) UploadToDriveConfigured() bool {
	return strings.TrimSpace(c.cfg.UploadToDriveURL) != ""
}

// QueryRAG forwards the query to the RAG workflow and returns its raw JSON reply.
func (c *Client) QueryRAG(ctx context.Context, query string) (json.RawMessage, error) {
	if !c.RAGQueryConfigured() {
		return nil, ErrWebhookNotConfigured
	}
	var out json.RawMessage
	if err := c.PostJSON(ctx, c.cfg.RAGQueryURL, map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DriveUpload is the payload the Drive workflow expects.
type DriveUpload struct {
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	FileBase64 string `json:"file_base64"`
	CaseID     string `json:"case_id"`
	UploadedBy string `json:"uploaded_by"`
}

type driveUploadResult struct {
	DriveURL string `json:"drive_url"`
}

// UploadToDrive sends the file to the Drive workflow and returns the stored file URL.
func (c *Client) UploadToDrive(ctx context.Context, upload DriveUpload) (string, error) {
	if !c.UploadToDriveConfigured() {
		return "", ErrWebhookNotConfigured
	}
	var result driveUploadResult
	if err := c.PostJSON(ctx, c.cfg.UploadToDriveURL, upload, &result); err != nil {
		return "", fmt.Errorf("upload to drive: %w", err)
	}
	if strings.TrimSpace(result.DriveURL) == "" {
		return "", fmt.Errorf("upload to drive: response missing drive_url")
	}
	return result.DriveURL, nil
}

// PostJSON posts payload as JSON and decodes a JSON reply into out when non-nil.
func (c *Client) PostJSON(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("n8n request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("n8n webhook called",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("n8n webhook failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode n8n response: %w", err)
	}
	return nil
}
