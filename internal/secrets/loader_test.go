package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		src     func(t *testing.T) Source
		want    string
		wantErr bool
		missing bool
	}{
		{
			name: "inline value",
			src:  func(*testing.T) Source { return Source{Name: "key", Value: "  abc \n"} },
			want: "abc",
		},
		{
			name: "file wins over value",
			src: func(t *testing.T) Source {
				return Source{Name: "key", Value: "inline", File: writeSecret(t, "from-file\n")}
			},
			want: "from-file",
		},
		{
			name: "empty file",
			src: func(t *testing.T) Source {
				return Source{Name: "key", Value: "inline", File: writeSecret(t, " \n")}
			},
			wantErr: true,
		},
		{
			name:    "missing file",
			src:     func(t *testing.T) Source { return Source{File: filepath.Join(t.TempDir(), "nope")} },
			wantErr: true,
		},
		{
			name:    "nothing configured",
			src:     func(*testing.T) Source { return Source{Name: "key"} },
			wantErr: true,
			missing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src(t))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if errors.Is(err, ErrNotConfigured) != tt.missing {
					t.Fatalf("unexpected ErrNotConfigured match for %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	secret, ok, err := LoadOptional(Source{Name: "key"})
	if err != nil || ok || secret != "" {
		t.Fatalf("expected missing secret, got %q %v %v", secret, ok, err)
	}

	secret, ok, err = LoadOptional(Source{Value: "abc"})
	if err != nil || !ok || secret != "abc" {
		t.Fatalf("expected secret, got %q %v %v", secret, ok, err)
	}

	_, _, err = LoadOptional(Source{File: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatalf("expected error for unreadable file")
	}
}

func TestRedact(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"short":             "****",
		"AIzaSyExample1234": "****1234",
	}

	for in, want := range cases {
		if got := Redact(in); got != want {
			t.Fatalf("Redact(%q) = %q, want %q", in, got, want)
		}
	}
}
