package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/ai/gemini"
	"github.com/spigell/talent-scout/internal/logger"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/secrets"
)

// setup builds the logger and reads the configuration shared by all commands.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config", zap.String("config", describeConfig(config)))

	return logger, config
}

// describeConfig renders the configuration for debug logs without the inline api key.
func describeConfig(config *Config) string {
	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	if key := config.AI.Gemini.APIKey; key != "" {
		return fmt.Sprintf("%s\napi key: %s", pretty, secrets.Redact(key))
	}
	return string(pretty)
}

func newQuestionGenerator(ctx context.Context, config *Config, logger *zap.Logger) (*questions.Generator, error) {
	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("building ai client: %w", err)
	}

	var table *questions.Table
	if file := strings.TrimSpace(config.Generation.TemplatesFile); file != "" {
		table, err = questions.LoadTableFile(file)
		if err != nil {
			return nil, err
		}
		logger.Info("using custom question templates", zap.String("file", file))
	}

	return questions.NewGenerator(completer, logger, questions.Options{
		PerTechnology: config.Generation.PerTechnology,
		Workers:       config.Generation.Workers,
		Table:         table,
		MaxLogLength:  config.AI.Gemini.MaxLogLength,
	}), nil
}

// newCompleter returns nil without an error when AI is disabled or no api key
// is configured. Questions then come from the fallback table only.
func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if !cfg.Enabled {
		logger.Info("ai question generation is disabled")
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, ok, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	if !ok {
		logger.Warn("gemini api key is not configured, using fallback questions only",
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file in the configuration file"),
		)
		return nil, nil
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength, genLogger)
	if err != nil {
		return nil, err
	}

	logger.Info("ai question generation is enabled", zap.String("model", generator.Model()))

	return generator, nil
}
