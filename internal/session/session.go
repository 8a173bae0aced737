package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/questions"
)

const (
	// VisibleMessages is the number of recent chat messages shown to the user.
	VisibleMessages = 10

	SenderUser      = "You"
	SenderAssistant = "Assistant"

	farewellReply  = "Thanks for chatting. We'll be in touch soon!"
	helpReply      = "I can regenerate questions, show your info, or end the chat. Try 'regenerate' or 'exit'."
	emptyReply     = "Type something first."
	noProfileReply = "Please submit your details first so I can prepare questions."
	endedReply     = "This chat has ended. Submit the form again to start over."
)

var endKeywords = []string{"exit", "quit", "bye", "goodbye", "end", "stop"}

// Generator produces a question set for a request.
type Generator interface {
	Generate(ctx context.Context, req questions.Request) *questions.Set
}

// Message is a single chat line.
type Message struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// State is everything known about one candidate conversation. Interactions
// never modify a State in place; they return an updated copy.
type State struct {
	ID           string
	Profile      *candidate.Profile
	Questions    *questions.Set
	Conversation []Message
	Ended        bool
}

// Action is the kind of chat command recognized in user input.
type Action string

const (
	ActionNone       Action = "none"
	ActionRegenerate Action = "regenerate"
	ActionShowInfo   Action = "show_info"
	ActionEnd        Action = "end"
	ActionHelp       Action = "help"
)

// ParseAction classifies chat input. Matching is case-insensitive and looks
// for the command anywhere in the text.
func ParseAction(input string) Action {
	text := strings.ToLower(strings.TrimSpace(input))
	switch {
	case text == "":
		return ActionNone
	case strings.Contains(text, "regenerate"):
		return ActionRegenerate
	case strings.Contains(text, "show my info"):
		return ActionShowInfo
	case containsAnyWord(text, endKeywords):
		return ActionEnd
	default:
		return ActionHelp
	}
}

// Submit starts a new conversation for a submitted profile.
func Submit(ctx context.Context, gen Generator, state State, profile *candidate.Profile) State {
	next := state.clone()
	next.Profile = profile.Clone()
	next.Questions = gen.Generate(ctx, questions.RequestFromProfile(next.Profile))
	next.Conversation = nil
	next.Ended = false
	return next
}

// Interact applies one chat input to the state and returns the new state with
// the assistant's reply.
func Interact(ctx context.Context, gen Generator, state State, input string) (State, string) {
	action := ParseAction(input)
	if action == ActionNone {
		return state, emptyReply
	}

	next := state.clone()
	var reply string

	switch {
	case next.Ended:
		reply = endedReply
	case action == ActionEnd:
		next.Ended = true
		reply = farewellReply
	case next.Profile == nil:
		reply = noProfileReply
	case action == ActionRegenerate:
		next.Questions = gen.Generate(ctx, questions.RequestFromProfile(next.Profile))
		reply = "Here are new questions:\n" + FormatQuestions(next.Questions)
	case action == ActionShowInfo:
		reply = FormatProfile(next.Profile)
	default:
		reply = helpReply
	}

	now := time.Now()
	next.Conversation = append(next.Conversation,
		Message{Sender: SenderUser, Text: strings.TrimSpace(input), Time: now},
		Message{Sender: SenderAssistant, Text: reply, Time: now},
	)

	return next, reply
}

// Recent returns the last VisibleMessages messages.
func (s State) Recent() []Message {
	if len(s.Conversation) <= VisibleMessages {
		return s.Conversation
	}
	return s.Conversation[len(s.Conversation)-VisibleMessages:]
}

// FormatQuestions renders a question set as numbered plain text.
func FormatQuestions(set *questions.Set) string {
	var b strings.Builder
	for _, e := range set.Items {
		fmt.Fprintf(&b, "%s:\n", e.Technology)
		for i, q := range e.Questions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, q)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProfile renders the masked profile as indented JSON.
func FormatProfile(p *candidate.Profile) string {
	data, err := json.MarshalIndent(p.Masked(), "", "  ")
	if err != nil {
		return fmt.Sprintf("cannot render profile: %v", err)
	}
	return string(data)
}

func (s State) clone() State {
	c := s
	c.Conversation = append([]Message(nil), s.Conversation...)
	return c
}

func containsAnyWord(text string, words []string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
