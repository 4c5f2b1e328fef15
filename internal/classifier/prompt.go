package classifier

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// BuildRequest lists the candidates in the system instructions and sends the
// message content as user input.
func BuildRequest(content string, candidates []Candidate) Request {
	var b strings.Builder
	b.WriteString("You link WhatsApp messages received by a law firm to one of its open cases.\n")
	b.WriteString("Open cases:\n")
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(&b, "- id: %s | number: %s | title: %s | status: %s\n", c.ID, c.CaseNumber, c.Title, c.Status)
		ids = append(ids, c.ID)
	}
	b.WriteString("\nReply with the id of the single case the message refers to, or ")
	b.WriteString(NoneToken)
	b.WriteString(" if none of them applies. Reply with the id or ")
	b.WriteString(NoneToken)
	b.WriteString(" only, without any other text.")
	return Request{
		SystemInstructions: b.String(),
		UserContent:        content,
		CandidateIDs:       ids,
	}
}

type structuredReply struct {
	CaseID *string `json:"case_id"`
}

// ParseReply interprets classifier text. A JSON object {"case_id": ...} is
// accepted as well as a bare id. Only an exact candidate id is a match.
func ParseReply(reply string, candidateIDs []string) Outcome {
	value, ok := replyValue(reply)
	if !ok {
		return Unavailable()
	}
	if strings.EqualFold(value, NoneToken) {
		return NoMatch()
	}
	if slices.Contains(candidateIDs, value) {
		return Matched(value)
	}
	return NoMatch()
}

func replyValue(reply string) (string, bool) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "{") {
		var parsed structuredReply
		if err := json.Unmarshal([]byte(reply), &parsed); err != nil || parsed.CaseID == nil {
			return "", false
		}
		value := strings.TrimSpace(*parsed.CaseID)
		return value, value != ""
	}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"'`")
		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
	return "", false
}
