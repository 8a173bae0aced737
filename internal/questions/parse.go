package questions

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Leading bullets and enumeration markers: "-", "*", "•", "1.", "2)", "(3)", "Q4:".
var markerPattern = regexp.MustCompile(`^(?:[-*•·]+|\(?[0-9]{1,2}[.):]|[Qq][0-9]{1,2}[.):]?)\s*`)

type questionsPayload struct {
	Questions []string `mapstructure:"questions"`
}

// ParseQuestions extracts between MinQuestions and MaxQuestions questions from
// an AI answer. JSON answers of the form {"questions": [...]} or a bare array
// are preferred; anything else is split into lines.
func ParseQuestions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var parsed []string
	if payload, ok := jsonPayload(raw); ok {
		list, err := decodeJSONQuestions(payload)
		if err != nil {
			return nil, err
		}
		parsed = list
	} else {
		parsed = splitLines(raw)
	}

	cleaned := make([]string, 0, len(parsed))
	seen := make(map[string]struct{}, len(parsed))
	for _, q := range parsed {
		q = cleanLine(q)
		if q == "" || strings.HasSuffix(q, ":") {
			continue
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, q)
	}

	if len(cleaned) < MinQuestions {
		return nil, fmt.Errorf("%w: expected at least %d questions, got %d", ErrMalformedResponse, MinQuestions, len(cleaned))
	}

	if len(cleaned) > MaxQuestions {
		cleaned = cleaned[:MaxQuestions]
	}

	return cleaned, nil
}

func jsonPayload(raw string) (string, bool) {
	cleaned := extractJSON(raw)
	if strings.HasPrefix(cleaned, "[") {
		return cleaned, true
	}

	start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", false
	}

	// Prose that merely mentions braces is treated as plain text.
	if start > 0 && !strings.Contains(cleaned, `"questions"`) {
		return "", false
	}

	return cleaned[start : end+1], true
}

func decodeJSONQuestions(payload string) ([]string, error) {
	var data any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if list, ok := data.([]any); ok {
		data = map[string]any{"questions": list}
	}

	var result questionsPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return result.Questions, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	line = markerPattern.ReplaceAllString(line, "")
	line = strings.Trim(line, "*_\"' \t")
	return strings.Join(strings.Fields(line), " ")
}
