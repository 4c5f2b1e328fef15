package ingest

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/casedesk/casedesk/internal/cases"
	"github.com/casedesk/casedesk/internal/classifier"
	"github.com/casedesk/casedesk/internal/message"
)

const defaultClassifyTimeout = 10 * time.Second

// Service stores inbound messages and links them to open cases when possible.
type Service struct {
	store           message.Store
	cases           CaseLister
	classifier      classifier.Classifier
	classifyTimeout time.Duration
	logger          *slog.Logger
}

func NewService(log *slog.Logger, store message.Store, lister CaseLister, cls classifier.Classifier, classifyTimeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	if classifyTimeout <= 0 {
		classifyTimeout = defaultClassifyTimeout
	}
	return &Service{
		store:           store,
		cases:           lister,
		classifier:      cls,
		classifyTimeout: classifyTimeout,
		logger:          log.With(slog.String("service", "ingest")),
	}
}

// Ingest validates the payload, resolves the case link and upserts the message
// keyed on message_id. Only *ValidationError and *StoreError are returned;
// linking failures leave the message unlinked.
func (s *Service) Ingest(ctx context.Context, p Payload) (message.Message, error) {
	input, err := normalize(p)
	if err != nil {
		return message.Message{}, err
	}

	if input.LinkedCaseID == "" && strings.TrimSpace(input.Content) != "" {
		input.LinkedCaseID = s.resolveCase(ctx, input.MessageID, input.Content)
	}

	stored, err := s.store.Upsert(ctx, input)
	if err != nil {
		return message.Message{}, &StoreError{MessageID: input.MessageID, Err: err}
	}
	s.logger.Info("message ingested",
		slog.String("message_id", stored.MessageID),
		slog.String("status", string(stored.DeliveryStatus)),
		slog.Bool("linked", stored.LinkedCaseID != nil))
	return stored, nil
}

func normalize(p Payload) (message.UpsertInput, error) {
	input := message.UpsertInput{
		MessageID:    strings.TrimSpace(p.MessageID),
		ChatID:       strings.TrimSpace(p.ChatID),
		FromNumber:   strings.TrimSpace(p.FromNumber),
		ToNumber:     strings.TrimSpace(p.ToNumber),
		Content:      p.Content,
		Kind:         strings.TrimSpace(p.Kind),
		LinkedCaseID: strings.TrimSpace(p.LinkedCaseID),
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"message_id", input.MessageID},
		{"chat_id", input.ChatID},
		{"from_number", input.FromNumber},
		{"to_number", input.ToNumber},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return message.UpsertInput{}, &ValidationError{Missing: missing}
	}
	if input.Kind == "" {
		input.Kind = message.DefaultKind
	}
	status, ok := message.ParseDeliveryStatus(strings.TrimSpace(p.DeliveryStatus))
	if !ok {
		return message.UpsertInput{}, &ValidationError{Reason: "unknown status " + p.DeliveryStatus}
	}
	input.DeliveryStatus = status
	return input, nil
}

// resolveCase returns the matched case id or "" for no link.
func (s *Service) resolveCase(ctx context.Context, messageID, content string) string {
	log := s.logger.With(slog.String("message_id", messageID))
	if s.cases == nil || s.classifier == nil {
		return ""
	}
	open, err := s.cases.ListOpen(ctx)
	if err != nil {
		log.Warn("case linking skipped: list open cases failed", slog.Any("error", err))
		return ""
	}
	candidates := make([]classifier.Candidate, 0, len(open))
	for _, c := range open {
		if c.Status == cases.StatusClosed {
			continue
		}
		candidates = append(candidates, classifier.Candidate{
			ID:         c.ID,
			CaseNumber: c.CaseNumber,
			Title:      c.Title,
			Status:     c.Status,
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	req := classifier.BuildRequest(content, candidates)
	outcome, err := s.classify(ctx, req)
	switch {
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("case linking timed out", slog.Duration("timeout", s.classifyTimeout))
		} else {
			log.Warn("case linking unavailable", slog.Any("error", err))
		}
		return ""
	case outcome.Kind == classifier.OutcomeUnavailable:
		log.Warn("case linking unavailable")
		return ""
	case outcome.IsMatch() && slices.Contains(req.CandidateIDs, outcome.CaseID):
		log.Debug("message linked to case", slog.String("case_id", outcome.CaseID))
		return outcome.CaseID
	default:
		return ""
	}
}

type classifyResult struct {
	outcome classifier.Outcome
	err     error
}

// classify bounds the classifier call by classifyTimeout even when the
// implementation ignores ctx. A reply that lands after the deadline is
// discarded.
func (s *Service) classify(ctx context.Context, req classifier.Request) (classifier.Outcome, error) {
	classifyCtx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	done := make(chan classifyResult, 1)
	go func() {
		outcome, err := s.classifier.Classify(classifyCtx, req)
		done <- classifyResult{outcome: outcome, err: err}
	}()

	select {
	case res := <-done:
		if err := classifyCtx.Err(); err != nil {
			return classifier.Unavailable(), err
		}
		return res.outcome, res.err
	case <-classifyCtx.Done():
		return classifier.Unavailable(), classifyCtx.Err()
	}
}
