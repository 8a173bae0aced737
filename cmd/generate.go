package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/export"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/session"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate interview questions for a tech stack",
	Example: `  talent-scout generate --stack "Python, Go" --experience 3 --position "Backend Engineer"
  talent-scout generate --stack "React/TypeScript" --output json`,
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("stack", "s", "", "comma separated list of technologies")
	generateCmd.Flags().StringP("experience", "e", "", "years of experience")
	generateCmd.Flags().StringP("position", "p", "", "desired position")
	generateCmd.Flags().String("notes", "", "additional context for the questions")
	generateCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	generateCmd.Flags().String("xlsx", "", "also write the questions to this Excel file")

	generateCmd.MarkFlagRequired("stack")
}

func generate(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()

	output := strings.ToLower(cmd.Flag("output").Value.String())
	if output != outputText && output != outputJSON {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	stack := candidate.SplitTechStack(cmd.Flag("stack").Value.String())
	if len(stack) == 0 {
		logger.Fatal("tech stack is empty", zap.String("hint", "pass technologies with --stack"))
	}

	gen, err := newQuestionGenerator(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a question generator", zap.Error(err))
	}

	set := gen.Generate(ctx, questions.Request{
		TechStack:  stack,
		Experience: cmd.Flag("experience").Value.String(),
		Position:   cmd.Flag("position").Value.String(),
		Notes:      cmd.Flag("notes").Value.String(),
	})

	logger.Info("questions generated",
		zap.Int("technologies", set.Len()),
		zap.Int("fallbacks", set.FallbackCount()),
	)

	if err := printQuestions(cmd.OutOrStdout(), set, output); err != nil {
		logger.Fatal("printing questions", zap.Error(err))
	}

	if path := cmd.Flag("xlsx").Value.String(); path != "" {
		if err := writeQuestionsFile(path, set); err != nil {
			logger.Fatal("writing excel file", zap.Error(err))
		}
		logger.Info("questions written", zap.String("filename", path))
	}
}

func printQuestions(w io.Writer, set *questions.Set, output string) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	_, err := fmt.Fprintln(w, session.FormatQuestions(set))
	return err
}

func writeQuestionsFile(path string, set *questions.Set) error {
	buf, err := export.QuestionsXLSX(nil, set)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
