package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/talent-scout/internal/candidate"
)

type candidateForm struct {
	Name       string `form:"name" binding:"required,max=100,candidate_name"`
	Email      string `form:"email" binding:"required,max=254"`
	Phone      string `form:"phone" binding:"required,max=32"`
	Experience string `form:"experience" binding:"required,max=50"`
	Position   string `form:"position" binding:"required,max=100"`
	Location   string `form:"location" binding:"max=100"`
	TechStack  string `form:"tech_stack" binding:"required,max=500,tech_stack"`
	Notes      string `form:"notes" binding:"max=1000"`
}

var fieldLabels = map[string]string{
	"Name":       "Full name",
	"Email":      "Email address",
	"Phone":      "Phone number",
	"Experience": "Years of experience",
	"Position":   "Desired position",
	"Location":   "Current location",
	"TechStack":  "Tech stack",
	"Notes":      "Notes",
}

func (f candidateForm) profile() *candidate.Profile {
	return &candidate.Profile{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Experience: strings.TrimSpace(f.Experience),
		Position:   strings.TrimSpace(f.Position),
		Location:   strings.TrimSpace(f.Location),
		TechStack:  candidate.SplitTechStack(f.TechStack),
		Notes:      strings.TrimSpace(f.Notes),
	}
}

// validationMessages converts binding errors to per-field messages.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		messages["form"] = "The form could not be read. Please try again."
		return messages
	}

	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		messages[fe.Field()] = fieldMessage(label, fe)
	}
	return messages
}

func fieldMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "candidate_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)
	case "tech_stack":
		return fmt.Sprintf("%s must list at least one technology.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
