package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/session"
)

var errExit = errors.New("exit requested")

type profileField struct {
	label    string
	required bool
	validate func(string) error
	set      func(p *candidate.Profile, value string)
}

var profileFields = []profileField{
	{
		label:    "Full name",
		required: true,
		validate: func(s string) error {
			if !candidate.IsName(s) {
				return errors.New("use letters, spaces and . ' - only")
			}
			return nil
		},
		set: func(p *candidate.Profile, v string) { p.Name = v },
	},
	{label: "Email address", required: true, set: func(p *candidate.Profile, v string) { p.Email = v }},
	{label: "Phone number", required: true, set: func(p *candidate.Profile, v string) { p.Phone = v }},
	{label: "Years of experience", required: true, set: func(p *candidate.Profile, v string) { p.Experience = v }},
	{label: "Desired position", required: true, set: func(p *candidate.Profile, v string) { p.Position = v }},
	{label: "Current location", set: func(p *candidate.Profile, v string) { p.Location = v }},
	{
		label:    "Tech stack",
		required: true,
		validate: func(s string) error {
			if len(candidate.SplitTechStack(s)) == 0 {
				return errors.New("list at least one technology")
			}
			return nil
		},
		set: func(p *candidate.Profile, v string) { p.TechStack = candidate.SplitTechStack(v) },
	},
	{label: "Notes", set: func(p *candidate.Profile, v string) { p.Notes = v }},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Collect candidate details and chat in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func chat(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()

	gen, err := newQuestionGenerator(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating a question generator", zap.Error(err))
	}

	out := cmd.OutOrStdout()

	profile, err := collectProfile()
	if errors.Is(err, errExit) {
		logger.Info("exiting", zap.String("reason", "interrupted"))
		return
	}
	if err != nil {
		logger.Fatal("collecting candidate details", zap.Error(err))
	}

	state := session.Submit(ctx, gen, session.State{ID: "terminal"}, profile)

	fmt.Fprintf(out, "\nThanks, %s! Here are your technical questions:\n\n%s\n\n", profile.Name, session.FormatQuestions(state.Questions))

	if err := chatLoop(ctx, out, gen, state); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("chat failed", zap.Error(err))
	}
}

func collectProfile() (*candidate.Profile, error) {
	profile := &candidate.Profile{}

	for _, field := range profileFields {
		prompt := promptui.Prompt{
			Label: field.label,
			Validate: func(input string) error {
				input = strings.TrimSpace(input)
				if input == "" {
					if field.required {
						return errors.New("this field is required")
					}
					return nil
				}
				if field.validate != nil {
					return field.validate(input)
				}
				return nil
			},
		}

		value, err := prompt.Run()
		if err != nil {
			return nil, promptError(err)
		}

		field.set(profile, strings.TrimSpace(value))
	}

	return profile, nil
}

func chatLoop(ctx context.Context, out io.Writer, gen session.Generator, state session.State) error {
	fmt.Fprintln(out, "Type 'regenerate' for new questions, 'show my info' to review your details or 'exit' to finish.")

	prompt := promptui.Prompt{Label: session.SenderUser}

	for !state.Ended {
		input, err := prompt.Run()
		if err != nil {
			return promptError(err)
		}

		var reply string
		state, reply = session.Interact(ctx, gen, state, input)
		fmt.Fprintf(out, "%s: %s\n", session.SenderAssistant, reply)
	}

	return nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}
