package candidate

import (
	"regexp"
	"strings"
)

// Profile holds the details collected from a candidate before questions are generated.
type Profile struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Experience string   `json:"experience"`
	Position   string   `json:"position"`
	Location   string   `json:"location,omitempty"`
	TechStack  []string `json:"tech_stack"`
	Notes      string   `json:"notes,omitempty"`
}

var stackSeparators = regexp.MustCompile(`(?i)[,;\n/|]+|\band\b`)

// SplitTechStack parses free-form tech stack input into an ordered list of
// technologies. Duplicates are compared case-insensitively and the first
// spelling wins.
func SplitTechStack(raw string) []string {
	return Dedupe(stackSeparators.Split(raw, -1))
}

// Dedupe trims the given items, drops empty ones and removes case-insensitive
// duplicates while preserving order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.Join(strings.Fields(item), " ")
		if item == "" {
			continue
		}

		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}

	return result
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	c := *p
	c.TechStack = append([]string(nil), p.TechStack...)
	return &c
}

// Masked returns a copy of the profile with contact fields masked for display.
func (p *Profile) Masked() *Profile {
	c := p.Clone()
	if c == nil {
		return nil
	}

	c.Email = MaskEmail(c.Email)
	c.Phone = MaskPhone(c.Phone)
	return c
}
