package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/internal/config"
)

func TestParseReply(t *testing.T) {
	t.Parallel()

	ids := []string{"c1", "c2"}
	tests := []struct {
		name  string
		reply string
		want  Outcome
	}{
		{name: "exact id", reply: "c1", want: Matched("c1")},
		{name: "padded id", reply: "  c2 \n", want: Matched("c2")},
		{name: "quoted id", reply: "`c1`", want: Matched("c1")},
		{name: "first line only", reply: "\nc1\nbecause it mentions EXP-001", want: Matched("c1")},
		{name: "none", reply: "NONE", want: NoMatch()},
		{name: "unknown id", reply: "c9", want: NoMatch()},
		{name: "prose", reply: "The case is c1", want: NoMatch()},
		{name: "structured match", reply: `{"case_id":"c2"}`, want: Matched("c2")},
		{name: "structured none", reply: `{"case_id":"NONE"}`, want: NoMatch()},
		{name: "empty", reply: "   ", want: Unavailable()},
		{name: "broken json", reply: `{"case_id":`, want: Unavailable()},
		{name: "json without field", reply: `{"id":"c1"}`, want: Unavailable()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseReply(tt.reply, ids))
		})
	}
}

func TestBuildRequestListsCandidates(t *testing.T) {
	t.Parallel()

	req := BuildRequest("pregunta sobre EXP-001", []Candidate{
		{ID: "c1", CaseNumber: "EXP-001", Title: "Divorcio", Status: "new"},
		{ID: "c2", CaseNumber: "EXP-002", Title: "Herencia", Status: "in_progress"},
	})
	assert.Equal(t, "pregunta sobre EXP-001", req.UserContent)
	assert.Equal(t, []string{"c1", "c2"}, req.CandidateIDs)
	assert.Contains(t, req.SystemInstructions, "id: c1 | number: EXP-001 | title: Divorcio | status: new")
	assert.Contains(t, req.SystemInstructions, "EXP-002")
	assert.Contains(t, req.SystemInstructions, NoneToken)
}

func newTestServer(t *testing.T, reply string, check func(chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if check != nil {
			check(body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
}

func TestOpenAIClientMatched(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, "c1", func(body chatRequest) {
		assert.Equal(t, "gpt-4o-mini", body.Model)
		assert.Zero(t, body.Temperature)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Nil(t, body.ResponseFormat)
	})
	defer srv.Close()

	client := NewOpenAIClient(nil, config.ClassifierConfig{BaseURL: srv.URL + "/", APIKey: "sk-test"})
	got, err := client.Classify(context.Background(), Request{UserContent: "hola", CandidateIDs: []string{"c1"}})
	require.NoError(t, err)
	assert.Equal(t, Matched("c1"), got)
}

func TestOpenAIClientStructuredOutput(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, `{"case_id":"NONE"}`, func(body chatRequest) {
		require.NotNil(t, body.ResponseFormat)
		assert.Equal(t, "json_schema", body.ResponseFormat.Type)
		require.NotNil(t, body.ResponseFormat.JSONSchema)
		assert.True(t, body.ResponseFormat.JSONSchema.Strict)
		props := body.ResponseFormat.JSONSchema.Schema["properties"].(map[string]any)
		caseID := props["case_id"].(map[string]any)
		assert.ElementsMatch(t, []any{"c1", "NONE"}, caseID["enum"])
	})
	defer srv.Close()

	client := NewOpenAIClient(nil, config.ClassifierConfig{BaseURL: srv.URL, APIKey: "sk-test", StructuredOutput: true})
	got, err := client.Classify(context.Background(), Request{UserContent: "hola", CandidateIDs: []string{"c1"}})
	require.NoError(t, err)
	assert.Equal(t, NoMatch(), got)
}

func TestOpenAIClientHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient(nil, config.ClassifierConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	got, err := client.Classify(context.Background(), Request{CandidateIDs: []string{"c1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, Unavailable(), got)
}

func TestOpenAIClientContextTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewOpenAIClient(nil, config.ClassifierConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	got, err := client.Classify(ctx, Request{CandidateIDs: []string{"c1"}})
	require.Error(t, err)
	assert.Equal(t, Unavailable(), got)
}

func TestNewWithoutKeyIsDisabled(t *testing.T) {
	t.Parallel()

	c := New(nil, config.ClassifierConfig{})
	_, ok := c.(Disabled)
	require.True(t, ok)
	got, err := c.Classify(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, Unavailable(), got)
}
