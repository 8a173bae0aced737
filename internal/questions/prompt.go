package questions

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed prompt.md
var promptTemplate string

const fallbackPromptTemplate = "Technology: {{TECHNOLOGY}}\nPosition: {{POSITION}}\nExperience: {{EXPERIENCE}}\nNotes: {{NOTES}}\n\nWrite {{COUNT}} technical interview questions, one per line."

// BuildPrompt renders the question generation prompt for a technology.
func BuildPrompt(technology, experience, position string) string {
	return renderPrompt(technology, experience, position, "", MaxQuestions)
}

func renderPrompt(technology, experience, position, notes string, count int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = fallbackPromptTemplate
	}

	replacer := strings.NewReplacer(
		"{{TECHNOLOGY}}", singleLine(technology, "unspecified"),
		"{{EXPERIENCE}}", experienceLabel(experience),
		"{{POSITION}}", singleLine(position, "not specified"),
		"{{NOTES}}", singleLine(notes, "none"),
		"{{COUNT}}", strconv.Itoa(count),
	)

	return strings.TrimSpace(replacer.Replace(template))
}

// experienceLabel renders bare numbers as years.
func experienceLabel(experience string) string {
	experience = singleLine(experience, "not specified")
	if _, err := strconv.ParseFloat(experience, 64); err == nil {
		if experience == "1" {
			return "1 year"
		}
		return experience + " years"
	}
	return experience
}

func singleLine(value, empty string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return empty
	}
	return value
}
