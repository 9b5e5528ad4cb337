package domain

import (
	"net/mail"
	"strings"
)

// Request validation happens at the HTTP boundary; handlers collect the
// returned messages into the errors payload. The application layer assumes
// validated input.

func ValidateRegistration(name, email, password string) []string {
	var msgs []string
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if !validEmail(email) {
		msgs = append(msgs, "Please include a valid email")
	}
	if len(password) < 6 {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	return msgs
}

func ValidateLogin(email, password string) []string {
	var msgs []string
	if !validEmail(email) {
		msgs = append(msgs, "Please include a valid email")
	}
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	return msgs
}

func ValidateProfileInput(status, skills *string) []string {
	var msgs []string
	if status == nil || strings.TrimSpace(*status) == "" {
		msgs = append(msgs, "Status is required")
	}
	if skills == nil || len(ParseSkills(*skills)) == 0 {
		msgs = append(msgs, "Skills is required")
	}
	return msgs
}

func ValidateExperience(title, company string, hasFrom bool) []string {
	var msgs []string
	if strings.TrimSpace(title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if !hasFrom {
		msgs = append(msgs, "From date is required")
	}
	return msgs
}

// ParseSkills splits a comma-separated skills string into an ordered list,
// trimming whitespace and dropping empty segments.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		skills = append(skills, trimmed)
	}
	return skills
}

// NormalizeEmail strips surrounding whitespace. Emails are stored and
// compared case-sensitively, so the character case is kept as supplied.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func validEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
