package questions

import (
	"reflect"
	"strings"
	"testing"
)

func TestDefaultTableCoversRequiredTechnologies(t *testing.T) {
	table := DefaultTable()

	for _, tech := range []string{"Python", "Django", "React", "SQL", "AWS"} {
		list, ok := table.Lookup(tech)
		if !ok {
			t.Fatalf("expected %s in bundled table", tech)
		}
		if len(list) < MinQuestions || len(list) > MaxQuestions {
			t.Fatalf("%s: expected 3-5 questions, got %d", tech, len(list))
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	table := DefaultTable()

	expected, _ := table.Lookup("Python")
	for _, name := range []string{"python", "PYTHON", "  PyThOn "} {
		got, ok := table.Lookup(name)
		if !ok {
			t.Fatalf("expected %q to be found", name)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("%q resolved to a different entry", name)
		}
	}
}

func TestLookupPartialMatch(t *testing.T) {
	t.Parallel()

	table := DefaultTable()

	tests := []struct {
		name  string
		input string
		known string
		found bool
	}{
		{name: "version suffix", input: "Python 3.12", known: "python", found: true},
		{name: "attached digits", input: "python3", known: "python", found: true},
		{name: "compound", input: "React Native", known: "react", found: true},
		{name: "no match inside word", input: "PostgreSQL", found: false},
		{name: "unknown", input: "Kubernetes", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := table.Lookup(tt.input)
			if ok != tt.found {
				t.Fatalf("expected found=%v for %q", tt.found, tt.input)
			}
			if !tt.found {
				return
			}
			expected, _ := table.Lookup(tt.known)
			if !reflect.DeepEqual(got, expected) {
				t.Fatalf("%q did not resolve to %q", tt.input, tt.known)
			}
		})
	}
}

func TestGenericQuestionsMentionTechnology(t *testing.T) {
	generic := DefaultTable().Questions("Kubernetes")

	if len(generic) < MinQuestions {
		t.Fatalf("expected at least %d generic questions, got %d", MinQuestions, len(generic))
	}
	for _, q := range generic {
		if !strings.Contains(q, "Kubernetes") {
			t.Fatalf("generic question does not mention technology: %q", q)
		}
		if strings.Contains(q, techPlaceholder) {
			t.Fatalf("placeholder not replaced: %q", q)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	table := DefaultTable()

	first, _ := table.Lookup("sql")
	first[0] = "changed"

	second, _ := table.Lookup("sql")
	if second[0] == "changed" {
		t.Fatal("lookup must not expose table internals")
	}
}

func TestLoadTableValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name: "valid",
			input: `technologies:
  Go:
    - a
    - b
    - c
default:
  - x {{tech}}
  - y {{tech}}
  - z {{tech}}
`,
		},
		{
			name: "too few technology questions",
			input: `technologies:
  go: [a, b]
default: [x, y, z]
`,
			wantErr: true,
		},
		{
			name: "blank questions do not count",
			input: `technologies:
  go: [a, b, " "]
default: [x, y, z]
`,
			wantErr: true,
		},
		{
			name:    "missing default",
			input:   "technologies:\n  go: [a, b, c]\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "technologies: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table, err := LoadTable(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := table.Lookup("GO"); !ok {
				t.Fatal("expected go entry to be loaded")
			}
			if got := table.Technologies(); !reflect.DeepEqual(got, []string{"go"}) {
				t.Fatalf("unexpected technologies: %v", got)
			}
		})
	}
}
