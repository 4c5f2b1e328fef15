package classifier

import "context"

// NoneToken is the reply meaning no candidate case fits the message.
const NoneToken = "NONE"

type OutcomeKind string

const (
	OutcomeMatched     OutcomeKind = "matched"
	OutcomeNoMatch     OutcomeKind = "no_match"
	OutcomeUnavailable OutcomeKind = "unavailable"
)

// Outcome is the classification result. CaseID is set only for OutcomeMatched.
type Outcome struct {
	Kind   OutcomeKind
	CaseID string
}

func Matched(caseID string) Outcome { return Outcome{Kind: OutcomeMatched, CaseID: caseID} }
func NoMatch() Outcome              { return Outcome{Kind: OutcomeNoMatch} }
func Unavailable() Outcome          { return Outcome{Kind: OutcomeUnavailable} }

// IsMatch reports whether the outcome carries a case id.
func (o Outcome) IsMatch() bool {
	return o.Kind == OutcomeMatched && o.CaseID != ""
}

// Candidate is an open case offered to the classifier.
type Candidate struct {
	ID         string
	CaseNumber string
	Title      string
	Status     string
}

type Request struct {
	SystemInstructions string
	UserContent        string
	CandidateIDs       []string
}

// Classifier picks the case a message belongs to. Implementations return
// Unavailable together with the error on failure.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Outcome, error)
}
