package questions

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const techPlaceholder = "{{tech}}"

//go:embed templates.yaml
var embeddedTemplates []byte

// Table is the static fallback question table. It is immutable once loaded.
type Table struct {
	entries map[string][]string
	// keys sorted from the longest to the shortest for partial matches.
	keys    []string
	generic []string
}

type tableFile struct {
	Technologies map[string][]string `yaml:"technologies"`
	Default      []string            `yaml:"default"`
}

// DefaultTable returns the table bundled with the binary.
func DefaultTable() *Table {
	table, err := LoadTable(bytes.NewReader(embeddedTemplates))
	if err != nil {
		panic(fmt.Sprintf("bundled question templates are invalid: %v", err))
	}
	return table
}

// LoadTableFile reads a fallback table from a YAML file.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates file: %w", err)
	}
	defer f.Close()

	table, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("templates file %q: %w", path, err)
	}
	return table, nil
}

// LoadTable parses a fallback table. Every technology and the default list
// must contain at least MinQuestions non-empty questions.
func LoadTable(r io.Reader) (*Table, error) {
	var file tableFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	generic := cleanQuestions(file.Default)
	if len(generic) < MinQuestions {
		return nil, fmt.Errorf("default templates need at least %d questions, got %d", MinQuestions, len(generic))
	}

	t := &Table{
		entries: make(map[string][]string, len(file.Technologies)),
		generic: generic,
	}

	for name, list := range file.Technologies {
		key := normalizeKey(name)
		if key == "" {
			return nil, fmt.Errorf("empty technology name in templates")
		}

		cleaned := cleanQuestions(list)
		if len(cleaned) < MinQuestions {
			return nil, fmt.Errorf("technology %q needs at least %d questions, got %d", name, MinQuestions, len(cleaned))
		}

		t.entries[key] = cleaned
		t.keys = append(t.keys, key)
	}

	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})

	return t, nil
}

// Lookup returns the template questions for a technology. Names are compared
// case-insensitively; when there is no exact match, the longest known name
// contained in the technology (for example "python" in "Python 3.12") is used.
func (t *Table) Lookup(technology string) ([]string, bool) {
	key := normalizeKey(technology)
	if key == "" {
		return nil, false
	}

	if list, ok := t.entries[key]; ok {
		return append([]string(nil), list...), true
	}

	for _, known := range t.keys {
		if containsWord(key, known) {
			return append([]string(nil), t.entries[known]...), true
		}
	}

	return nil, false
}

// Questions returns the template questions for a technology or the generic
// placeholder questions when it is unknown.
func (t *Table) Questions(technology string) []string {
	if list, ok := t.Lookup(technology); ok {
		return list
	}
	return t.Generic(technology)
}

// Generic returns the default questions rendered for the technology.
func (t *Table) Generic(technology string) []string {
	technology = strings.TrimSpace(technology)
	result := make([]string, 0, len(t.generic))
	for _, q := range t.generic {
		result = append(result, strings.ReplaceAll(q, techPlaceholder, technology))
	}
	return result
}

// Technologies lists the known technology keys in alphabetical order.
func (t *Table) Technologies() []string {
	keys := append([]string(nil), t.keys...)
	sort.Strings(keys)
	return keys
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// containsWord reports whether known appears in name surrounded by non-letters:
// "python3" and "react native" match, "postgresql" does not match "sql".
func containsWord(name, known string) bool {
	for start := 0; start <= len(name)-len(known); {
		idx := strings.Index(name[start:], known)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(known)
		if isBoundary(name, idx-1) && isBoundary(name, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return c < 'a' || c > 'z'
}

func cleanQuestions(list []string) []string {
	result := make([]string, 0, len(list))
	for _, q := range list {
		if q = strings.TrimSpace(q); q != "" {
			result = append(result, q)
		}
	}
	return result
}
