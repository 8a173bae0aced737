package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-scout/internal/questions"
)

func testConfig() *Config {
	return &Config{
		Server:     &ServerConfig{Listen: ":0"},
		AI:         &AIConfig{Enabled: true, Provider: "gemini", Gemini: &GeminiConfig{}},
		Generation: &GenerationConfig{},
	}
}

func TestNewCompleterWithoutKeyFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	completer, err := newCompleter(context.Background(), testConfig().AI, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completer != nil {
		t.Fatalf("expected no completer without api key")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected a single warning, got %d", logs.Len())
	}
}

func TestNewCompleterRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig().AI
	cfg.Provider = "openai"

	if _, err := newCompleter(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestNewCompleterDisabled(t *testing.T) {
	cfg := testConfig().AI
	cfg.Enabled = false
	cfg.Gemini.APIKey = "key"

	completer, err := newCompleter(context.Background(), cfg, zap.NewNop())
	if err != nil || completer != nil {
		t.Fatalf("expected disabled ai, got %v %v", completer, err)
	}
}

func TestNewQuestionGeneratorFallbackOnly(t *testing.T) {
	gen, err := newQuestionGenerator(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.AIEnabled() {
		t.Fatalf("expected fallback-only generator")
	}
}

func TestNewQuestionGeneratorBadTemplatesFile(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.TemplatesFile = t.TempDir() + "/missing.yaml"

	if _, err := newQuestionGenerator(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing templates file")
	}
}

func TestDescribeConfigHidesAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.AI.Gemini.APIKey = "AIzaSySecretValue9876"

	out := describeConfig(cfg)
	if strings.Contains(out, "SecretValue") {
		t.Fatalf("api key leaked: %s", out)
	}
	if !strings.Contains(out, "****9876") {
		t.Fatalf("expected redacted key in %s", out)
	}
}

func TestPrintQuestions(t *testing.T) {
	set := &questions.Set{Items: []questions.Entry{{
		Technology: "Go",
		Questions:  []string{"What is a goroutine?", "What is a channel?", "What does defer do?"},
		Source:     questions.SourceFallback,
	}}}

	var text bytes.Buffer
	if err := printQuestions(&text, set, outputText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text.String(), "  2. What is a channel?") {
		t.Fatalf("unexpected text output: %s", text.String())
	}

	var raw bytes.Buffer
	if err := printQuestions(&raw, set, outputJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded questions.Set
	if err := json.Unmarshal(raw.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Items[0].Technology != "Go" {
		t.Fatalf("unexpected json output: %s", raw.String())
	}
}
