package classifier

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

const (
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 4 << 10
)

// OpenAIClient classifies through an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	structured bool
	client     *http.Client
	logger     *slog.Logger
}

func NewOpenAIClient(log *slog.Logger, cfg config.ClassifierConfig) *OpenAIClient {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = config.DefaultClassifierBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = config.DefaultClassifierModel
	}
	return &OpenAIClient{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		structured: cfg.StructuredOutput,
		client:     &http.Client{Timeout: defaultHTTPTimeout},
		logger:     log.With(slog.String("service", "classifier")),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type responseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *jsonSchemaFormat `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// caseSchema restricts the reply to a candidate id or NONE.
func caseSchema(candidateIDs []string) *responseFormat {
	enum := make([]string, 0, len(candidateIDs)+1)
	enum = append(enum, candidateIDs...)
	enum = append(enum, NoneToken)
	return &responseFormat{
		Type: "json_schema",
		JSONSchema: &jsonSchemaFormat{
			Name:   "case_link",
			Strict: true,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"case_id": map[string]any{"type": "string", "enum": enum},
				},
				"required":             []string{"case_id"},
				"additionalProperties": false,
			},
		},
	}
}

func (c *OpenAIClient) Classify(ctx context.Context, req Request) (Outcome, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemInstructions},
			{Role: "user", Content: req.UserContent},
		},
		Temperature: 0,
	}
	if c.structured {
		body.ResponseFormat = caseSchema(req.CandidateIDs)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Unavailable(), fmt.Errorf("marshal: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Unavailable(), fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Unavailable(), fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Unavailable(), fmt.Errorf("classifier %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Unavailable(), fmt.Errorf("decode classifier response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Unavailable(), errors.New("classifier returned no choices")
	}
	reply := parsed.Choices[0].Message.Content
	outcome := ParseReply(reply, req.CandidateIDs)
	if outcome.Kind == OutcomeUnavailable {
		return outcome, fmt.Errorf("unparseable classifier reply %q", reply)
	}
	c.logger.Debug("classified message", slog.String("outcome", string(outcome.Kind)), slog.String("case_id", outcome.CaseID))
	return outcome, nil
}

// ErrDisabled is returned by Disabled.
var ErrDisabled = errors.New("classifier disabled: no api key configured")

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) Classify(context.Context, Request) (Outcome, error) {
	return Unavailable(), ErrDisabled
}

// New returns an OpenAIClient when the config carries an API key, else Disabled.
func New(log *slog.Logger, cfg config.ClassifierConfig) Classifier {
	if !cfg.Enabled() {
		return Disabled{}
	}
	return NewOpenAIClient(log, cfg)
}
