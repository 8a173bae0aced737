package questions

import (
	"errors"
	"strings"
)

const (
	// MinQuestions is the smallest number of questions produced per technology.
	MinQuestions = 3
	// MaxQuestions is the largest number of questions produced per technology.
	MaxQuestions = 5
)

var (
	// ErrNoCredential means the AI provider is not configured.
	ErrNoCredential = errors.New("ai provider is not configured")
	// ErrMalformedResponse means the AI answer did not contain enough questions.
	ErrMalformedResponse = errors.New("malformed ai response")
)

// Source tells which path produced a technology's questions.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Reason explains why the fallback path was used.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNoCredential      Reason = "no_credential"
	ReasonAIError           Reason = "ai_error"
	ReasonMalformedResponse Reason = "malformed_response"
)

// Entry is the outcome of question generation for a single technology.
// Source is SourceAI for AI generated questions, otherwise Reason is set.
type Entry struct {
	Technology string   `json:"technology"`
	Questions  []string `json:"questions"`
	Source     Source   `json:"source"`
	Reason     Reason   `json:"reason,omitempty"`
	// Known is false when generic placeholder questions were used.
	Known bool  `json:"known"`
	Err   error `json:"-"`
}

// AIGenerated reports whether the questions came from the AI provider.
func (e Entry) AIGenerated() bool { return e.Source == SourceAI }

// Set maps technologies to their questions, keeping the order of the request.
type Set struct {
	Items []Entry `json:"items"`
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// Get returns the entry for a technology, compared case-insensitively.
func (s *Set) Get(technology string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	for _, e := range s.Items {
		if strings.EqualFold(e.Technology, technology) {
			return e, true
		}
	}
	return Entry{}, false
}

// Technologies returns the technologies in order.
func (s *Set) Technologies() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.Items))
	for _, e := range s.Items {
		result = append(result, e.Technology)
	}
	return result
}

// Map returns a plain technology to questions mapping.
func (s *Set) Map() map[string][]string {
	result := make(map[string][]string, s.Len())
	if s == nil {
		return result
	}
	for _, e := range s.Items {
		result[e.Technology] = append([]string(nil), e.Questions...)
	}
	return result
}

// FallbackCount returns how many technologies used the fallback path.
func (s *Set) FallbackCount() int {
	count := 0
	if s == nil {
		return count
	}
	for _, e := range s.Items {
		if !e.AIGenerated() {
			count++
		}
	}
	return count
}
