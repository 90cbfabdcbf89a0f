package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prn-tf/roster/internal/domain"
)

// emailPattern is the local@domain.tld shape check: no whitespace on
// either side of the @, at least one dot after it.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// tagPattern matches markup sequences stripped by Sanitize.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// FieldErrors maps a field name to its validation message. Multiple
// fields can fail at once; an empty map means the form may be submitted.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Validate decides submit-eligibility for a candidate field set against
// the already-fetched collection. When editing an existing record, pass
// its id as editingID so its own email does not count as a duplicate;
// pass "" when creating.
func Validate(f domain.UserFields, existing []domain.User, editingID string) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	username := strings.TrimSpace(f.Username)
	email := strings.TrimSpace(f.Email)

	if name == "" {
		errs["name"] = "Name is required"
	}
	if username == "" {
		errs["username"] = "Username is required"
	}

	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email is invalid"
	default:
		// Compare the trimmed value: that is what Sanitize transmits.
		for _, u := range existing {
			if u.ID != editingID && u.Email == email {
				errs["email"] = "Email is already in use"
				break
			}
		}
	}

	for field, value := range map[string]string{
		"name":     f.Name,
		"username": f.Username,
		"email":    f.Email,
	} {
		if len(value) > domain.MaxFieldLength {
			errs[field] = fmt.Sprintf("Must be at most %d characters", domain.MaxFieldLength)
		}
	}

	return errs
}

// Sanitize strips markup from every field before transmission, so stored
// values are harmless if later rendered unescaped.
func Sanitize(f domain.UserFields) domain.UserFields {
	return domain.UserFields{
		Name:     stripMarkup(f.Name),
		Username: stripMarkup(f.Username),
		Email:    stripMarkup(f.Email),
	}
}

func stripMarkup(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
