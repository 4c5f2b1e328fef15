package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/internal/cases"
	"github.com/casedesk/casedesk/internal/classifier"
	"github.com/casedesk/casedesk/internal/message"
)

// memoryStore keeps one row per message_id, like the upsert in Postgres.
type memoryStore struct {
	mu    sync.Mutex
	rows  map[string]message.Message
	calls int
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]message.Message{}}
}

func (s *memoryStore) Upsert(_ context.Context, in message.UpsertInput) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return message.Message{}, s.err
	}
	now := time.Now()
	row, exists := s.rows[in.MessageID]
	if !exists {
		row.ID = "row-" + in.MessageID
		row.CreatedAt = now
	}
	row.MessageID = in.MessageID
	row.ChatID = in.ChatID
	row.FromNumber = in.FromNumber
	row.ToNumber = in.ToNumber
	row.Content = optional(in.Content)
	row.Kind = in.Kind
	row.DeliveryStatus = in.DeliveryStatus
	row.LinkedCaseID = optional(in.LinkedCaseID)
	row.UpdatedAt = now
	s.rows[in.MessageID] = row
	return row, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type fakeLister struct {
	open  []cases.OpenCase
	err   error
	calls int
}

func (f *fakeLister) ListOpen(context.Context) ([]cases.OpenCase, error) {
	f.calls++
	return f.open, f.err
}

type fakeClassifier struct {
	classify func(ctx context.Context, req classifier.Request) (classifier.Outcome, error)

	mu    sync.Mutex
	calls int
	last  classifier.Request
}

func (f *fakeClassifier) Classify(ctx context.Context, req classifier.Request) (classifier.Outcome, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.mu.Unlock()
	if f.classify == nil {
		return classifier.NoMatch(), nil
	}
	return f.classify(ctx, req)
}

func (f *fakeClassifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeClassifier) Last() classifier.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func replying(reply string) *fakeClassifier {
	return &fakeClassifier{classify: func(_ context.Context, req classifier.Request) (classifier.Outcome, error) {
		return classifier.ParseReply(reply, req.CandidateIDs), nil
	}}
}

var expCase = cases.OpenCase{ID: "c1", CaseNumber: "EXP-001", Title: "Divorcio", Status: cases.StatusNew}

func basePayload() Payload {
	return Payload{MessageID: "WA-1", ChatID: "555", FromNumber: "555", ToNumber: "999"}
}

func TestIngestIdempotentOnMessageID(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := NewService(nil, store, &fakeLister{}, &fakeClassifier{}, time.Second)

	p := basePayload()
	p.DeliveryStatus = "delivered"
	first, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)

	p.DeliveryStatus = "read"
	second, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)

	assert.Len(t, store.rows, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, message.StatusRead, store.rows["WA-1"].DeliveryStatus)
}

func TestIngestValidationCompleteness(t *testing.T) {
	t.Parallel()

	fields := map[string]func(*Payload){
		"message_id":  func(p *Payload) { p.MessageID = "" },
		"chat_id":     func(p *Payload) { p.ChatID = "  " },
		"from_number": func(p *Payload) { p.FromNumber = "" },
		"to_number":   func(p *Payload) { p.ToNumber = "" },
	}
	for field, drop := range fields {
		t.Run(field, func(t *testing.T) {
			t.Parallel()
			store := newMemoryStore()
			lister := &fakeLister{open: []cases.OpenCase{expCase}}
			cls := &fakeClassifier{}
			svc := NewService(nil, store, lister, cls, time.Second)

			p := basePayload()
			p.Content = "pregunta sobre EXP-001"
			drop(&p)
			_, err := svc.Ingest(context.Background(), p)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{field}, verr.Missing)
			assert.Zero(t, store.calls)
			assert.Zero(t, lister.calls)
			assert.Zero(t, cls.Calls())
		})
	}
}

func TestIngestDefaults(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, newMemoryStore(), &fakeLister{}, &fakeClassifier{}, time.Second)
	got, err := svc.Ingest(context.Background(), basePayload())
	require.NoError(t, err)
	assert.Equal(t, message.DefaultKind, got.Kind)
	assert.Equal(t, message.StatusSent, got.DeliveryStatus)
	assert.Nil(t, got.LinkedCaseID)
	assert.Nil(t, got.Content)
}

func TestIngestRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := NewService(nil, store, &fakeLister{}, &fakeClassifier{}, time.Second)
	p := basePayload()
	p.DeliveryStatus = "seen"
	_, err := svc.Ingest(context.Background(), p)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Missing)
	assert.Zero(t, store.calls)
}

func TestIngestExplicitCaseIDSkipsClassifier(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{open: []cases.OpenCase{expCase}}
	cls := replying("c1")
	svc := NewService(nil, newMemoryStore(), lister, cls, time.Second)

	p := basePayload()
	p.Content = "pregunta sobre EXP-001"
	p.LinkedCaseID = "does-not-exist"
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, got.LinkedCaseID)
	assert.Equal(t, "does-not-exist", *got.LinkedCaseID)
	assert.Zero(t, cls.Calls())
	assert.Zero(t, lister.calls)
}

func TestIngestGracefulDegradation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cls  *fakeClassifier
	}{
		{
			name: "classifier error",
			cls: &fakeClassifier{classify: func(context.Context, classifier.Request) (classifier.Outcome, error) {
				return classifier.Unavailable(), errors.New("connection refused")
			}},
		},
		{
			name: "classifier timeout",
			cls: &fakeClassifier{classify: func(ctx context.Context, _ classifier.Request) (classifier.Outcome, error) {
				<-ctx.Done()
				return classifier.Unavailable(), ctx.Err()
			}},
		},
		{
			name: "malformed reply",
			cls:  replying("   "),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newMemoryStore()
			svc := NewService(nil, store, &fakeLister{open: []cases.OpenCase{expCase}}, tt.cls, 20*time.Millisecond)

			p := basePayload()
			p.Content = "pregunta sobre EXP-001"
			got, err := svc.Ingest(context.Background(), p)
			require.NoError(t, err)
			assert.Nil(t, got.LinkedCaseID)
			assert.Equal(t, 1, tt.cls.Calls())
			assert.Len(t, store.rows, 1)
		})
	}
}

func TestIngestClassifierOverrunIsDiscarded(t *testing.T) {
	t.Parallel()

	cls := &fakeClassifier{classify: func(context.Context, classifier.Request) (classifier.Outcome, error) {
		time.Sleep(300 * time.Millisecond)
		return classifier.Matched("c1"), nil
	}}
	store := newMemoryStore()
	svc := NewService(nil, store, &fakeLister{open: []cases.OpenCase{expCase}}, cls, 10*time.Millisecond)

	p := basePayload()
	p.Content = "pregunta sobre EXP-001"
	started := time.Now()
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 250*time.Millisecond)
	assert.Nil(t, got.LinkedCaseID)
	assert.Len(t, store.rows, 1)
}

func TestIngestCaseListFailureStillStores(t *testing.T) {
	t.Parallel()

	cls := &fakeClassifier{}
	svc := NewService(nil, newMemoryStore(), &fakeLister{err: errors.New("db down")}, cls, time.Second)
	p := basePayload()
	p.Content = "Hola"
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedCaseID)
	assert.Zero(t, cls.Calls())
}

func TestIngestNoMatch(t *testing.T) {
	t.Parallel()

	for _, reply := range []string{"NONE", "c9"} {
		t.Run(reply, func(t *testing.T) {
			t.Parallel()
			svc := NewService(nil, newMemoryStore(), &fakeLister{open: []cases.OpenCase{expCase}}, replying(reply), time.Second)
			p := basePayload()
			p.Content = "pregunta sobre EXP-001"
			got, err := svc.Ingest(context.Background(), p)
			require.NoError(t, err)
			assert.Nil(t, got.LinkedCaseID)
		})
	}
}

func TestIngestIgnoresMatchOutsideCandidates(t *testing.T) {
	t.Parallel()

	cls := &fakeClassifier{classify: func(context.Context, classifier.Request) (classifier.Outcome, error) {
		return classifier.Matched("c9"), nil
	}}
	svc := NewService(nil, newMemoryStore(), &fakeLister{open: []cases.OpenCase{expCase}}, cls, time.Second)
	p := basePayload()
	p.Content = "hola"
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedCaseID)
}

func TestIngestMatch(t *testing.T) {
	t.Parallel()

	cls := replying("c1")
	svc := NewService(nil, newMemoryStore(), &fakeLister{open: []cases.OpenCase{expCase}}, cls, time.Second)
	p := basePayload()
	p.Content = "pregunta sobre EXP-001"
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, got.LinkedCaseID)
	assert.Equal(t, "c1", *got.LinkedCaseID)
	assert.Equal(t, "pregunta sobre EXP-001", cls.Last().UserContent)
	assert.Equal(t, []string{"c1"}, cls.Last().CandidateIDs)
	assert.Contains(t, cls.Last().SystemInstructions, "EXP-001")
}

func TestIngestEmptyCaseListSkipsClassifier(t *testing.T) {
	t.Parallel()

	cls := replying("c1")
	svc := NewService(nil, newMemoryStore(), &fakeLister{}, cls, time.Second)
	p := basePayload()
	p.Content = "Hola"
	got, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "WA-1", got.MessageID)
	assert.Nil(t, got.LinkedCaseID)
	assert.Zero(t, cls.Calls())
}

func TestIngestBlankContentSkipsLinking(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{open: []cases.OpenCase{expCase}}
	cls := replying("c1")
	svc := NewService(nil, newMemoryStore(), lister, cls, time.Second)
	p := basePayload()
	p.Content = "   "
	_, err := svc.Ingest(context.Background(), p)
	require.NoError(t, err)
	assert.Zero(t, lister.calls)
	assert.Zero(t, cls.Calls())
}

func TestIngestStoreError(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.err = errors.New("connection reset")
	svc := NewService(nil, store, &fakeLister{}, &fakeClassifier{}, time.Second)
	_, err := svc.Ingest(context.Background(), basePayload())

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "WA-1", serr.MessageID)
	assert.ErrorContains(t, err, "connection reset")
}
