package dto

import (
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// FieldErrors is the field-scoped validation error shape returned to
// clients: {"field": ["message", ...]}.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, messages := range fe {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}
	return strings.Join(parts, ", ")
}

// ValidateUsername applies the username rules shared by every endpoint that
// accepts one: the character pattern and the reserved "me" value.
func ValidateUsername(username string, fe FieldErrors) {
	if len(username) > 150 {
		fe.Add("username", "Ensure this field has no more than 150 characters.")
	}
	if !usernameRe.MatchString(username) {
		fe.Add("username", "Letters, digits and @ . + - _ only")
	}
	if strings.EqualFold(username, "me") {
		fe.Add("username", "Invalid username: 'me' is not allowed.")
	}
}

// ValidateSlug applies the slug rules shared by categories and genres.
func ValidateSlug(slug string, fe FieldErrors) {
	if len(slug) > 50 {
		fe.Add("slug", "Ensure this field has no more than 50 characters.")
	}
	if !slugRe.MatchString(slug) {
		fe.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}
}
