package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prn-tf/roster/internal/domain"
)

var existing = []domain.User{
	{ID: "id-1", Name: "Ada", Username: "ada", Email: "ada@example.com"},
	{ID: "id-2", Name: "Grace", Username: "grace", Email: "grace@example.com"},
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	errs := Validate(domain.UserFields{
		Name: "Edsger", Username: "ewd", Email: "ewd@utexas.edu",
	}, existing, "")
	require.True(t, errs.Valid())
}

func TestValidateRequiredFields(t *testing.T) {
	errs := Validate(domain.UserFields{}, nil, "")
	require.Equal(t, "Name is required", errs["name"])
	require.Equal(t, "Username is required", errs["username"])
	require.Equal(t, "Email is required", errs["email"])
}

func TestValidateWhitespaceOnlyIsEmpty(t *testing.T) {
	errs := Validate(domain.UserFields{
		Name: "   ", Username: "\t", Email: "  ",
	}, nil, "")
	require.Len(t, errs, 3)
}

func TestValidateEmailShape(t *testing.T) {
	bad := []string{
		"plainaddress",
		"missing-domain@",
		"@missing-local.com",
		"no-tld@domain",
		"spaces in@local.com",
		"x@spaces in.com",
	}
	for _, email := range bad {
		errs := Validate(domain.UserFields{Name: "N", Username: "u", Email: email}, nil, "")
		require.Equal(t, "Email is invalid", errs["email"], "email %q", email)
	}

	good := []string{"a@b.c", "first.last@sub.domain.org", "x+tag@y.co"}
	for _, email := range good {
		errs := Validate(domain.UserFields{Name: "N", Username: "u", Email: email}, nil, "")
		require.True(t, errs.Valid(), "email %q", email)
	}
}

func TestValidateDuplicateEmail(t *testing.T) {
	errs := Validate(domain.UserFields{
		Name: "Other", Username: "other", Email: "ada@example.com",
	}, existing, "")
	require.Equal(t, "Email is already in use", errs["email"])
}

func TestValidateEditingExcludesOwnRecord(t *testing.T) {
	// Keeping your own email while editing is not a duplicate.
	errs := Validate(domain.UserFields{
		Name: "Ada", Username: "ada", Email: "ada@example.com",
	}, existing, "id-1")
	require.True(t, errs.Valid())

	// Taking someone else's email still is.
	errs = Validate(domain.UserFields{
		Name: "Ada", Username: "ada", Email: "grace@example.com",
	}, existing, "id-1")
	require.Equal(t, "Email is already in use", errs["email"])
}

func TestValidatePaddedDuplicateEmail(t *testing.T) {
	// The transmitted value is trimmed, so padding must not defeat the
	// uniqueness check.
	errs := Validate(domain.UserFields{
		Name: "Other", Username: "other", Email: "  ada@example.com  ",
	}, existing, "")
	require.Equal(t, "Email is already in use", errs["email"])
}

func TestValidateDuplicateIsExactMatch(t *testing.T) {
	// Email comparison is case-sensitive, as persisted.
	errs := Validate(domain.UserFields{
		Name: "Other", Username: "other", Email: "ADA@example.com",
	}, existing, "")
	require.True(t, errs.Valid())
}

func TestValidateLengthCap(t *testing.T) {
	long := strings.Repeat("a", domain.MaxFieldLength+1)

	errs := Validate(domain.UserFields{
		Name: long, Username: "ok", Email: long + "@x.com",
	}, nil, "")
	require.Contains(t, errs["name"], "100")
	require.Contains(t, errs["email"], "100")
	require.NotContains(t, errs, "username")

	exact := strings.Repeat("b", domain.MaxFieldLength)
	errs = Validate(domain.UserFields{Name: exact, Username: "u", Email: "a@b.c"}, nil, "")
	require.True(t, errs.Valid())
}

func TestValidateCollectsMultipleFailures(t *testing.T) {
	errs := Validate(domain.UserFields{Email: "bad"}, nil, "")
	require.Len(t, errs, 3)
	require.False(t, errs.Valid())
}

func TestSanitizeStripsMarkup(t *testing.T) {
	got := Sanitize(domain.UserFields{
		Name:     `<script>alert("x")</script>Ada`,
		Username: "ada<b>!</b>",
		Email:    "ada@example.com",
	})
	require.Equal(t, `alert("x")Ada`, got.Name)
	require.Equal(t, "ada!", got.Username)
	require.Equal(t, "ada@example.com", got.Email)
}
