// Package validate holds the pure input validation rules shared by the
// catalog mutations. Each function either passes or returns a classified
// validation failure; nothing here touches the database.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidationError is a business-rule violation surfaced verbatim to the
// client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewError(message string) error {
	return &ValidationError{Message: message}
}

// Slug accepts non-empty slugs of letters, digits and hyphens, with
// backslashes rejected outright.
func Slug(s string) error {
	if s == "" || strings.Contains(s, `\`) {
		return NewError("The slug is invalid!")
	}
	stripped := strings.ReplaceAll(s, "-", "")
	if stripped != "" && !slugPattern.MatchString(stripped) {
		return NewError("The slug is invalid!")
	}
	return nil
}

// Price rejects negative amounts; nil means the field was not supplied.
func Price(field string, amount *float64) error {
	if amount != nil && *amount < 0 {
		return NewError(fmt.Sprintf("The %s must be a positive number or zero!", field))
	}
	return nil
}
