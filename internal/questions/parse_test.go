package questions

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseQuestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "json object",
			input:  `{"questions": ["What is a goroutine?", "What is a channel?", "Explain select."]}`,
			expect: []string{"What is a goroutine?", "What is a channel?", "Explain select."},
		},
		{
			name:   "json in code fence",
			input:  "```json\n{\"questions\": [\"Q one?\", \"Q two?\", \"Q three?\", \"Q four?\"]}\n```",
			expect: []string{"Q one?", "Q two?", "Q three?", "Q four?"},
		},
		{
			name:   "json with leading prose",
			input:  "Sure! Here you go: {\"questions\": [\"A?\", \"B?\", \"C?\"]}",
			expect: []string{"A?", "B?", "C?"},
		},
		{
			name:   "bare json array",
			input:  `["A?", "B?", "C?"]`,
			expect: []string{"A?", "B?", "C?"},
		},
		{
			name:   "numbered lines with header",
			input:  "Here are the questions:\n\n1. What is a slice?\n2) How do maps grow?\n3. What is escape analysis?",
			expect: []string{"What is a slice?", "How do maps grow?", "What is escape analysis?"},
		},
		{
			name:   "bullets and bold",
			input:  "- **What is JSX?**\n* What are hooks?\n• What is reconciliation?",
			expect: []string{"What is JSX?", "What are hooks?", "What is reconciliation?"},
		},
		{
			name:   "truncated to five",
			input:  "Q1: a?\nQ2: b?\nQ3: c?\nQ4: d?\nQ5: e?\nQ6: f?",
			expect: []string{"a?", "b?", "c?", "d?", "e?"},
		},
		{
			name:   "duplicates removed",
			input:  "1. A?\n2. a?\n3. B?\n4. C?",
			expect: []string{"A?", "B?", "C?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseQuestions(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestParseQuestionsMalformed(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   \n  ",
		"Only one question?",
		`{"questions": ["A?", "B?"]}`,
		`{"questions": "not a list"`,
		`{"answer": 42}`,
	}

	for _, input := range inputs {
		_, err := ParseQuestions(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse for %q, got %v", input, err)
		}
	}
}

func TestParseQuestionsInvariant(t *testing.T) {
	inputs := []string{
		strings.Repeat("Explain something?\nAnd something else?\nWhy?\n", 4),
		"a\nb\nc\nd\ne\nf\ng",
	}

	for _, input := range inputs {
		got, err := ParseQuestions(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) < MinQuestions || len(got) > MaxQuestions {
			t.Fatalf("expected 3-5 questions, got %d", len(got))
		}
		for _, q := range got {
			if strings.TrimSpace(q) == "" {
				t.Fatal("empty question returned")
			}
		}
	}
}
