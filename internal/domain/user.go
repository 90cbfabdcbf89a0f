// Package domain contains the core business entities for Roster.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the user-management system.
package domain

// MaxFieldLength is the maximum length of any user-supplied field.
const MaxFieldLength = 100

// User represents a single user record in the roster.
type User struct {
	// ID is the opaque unique identifier, generated server-side at
	// creation and immutable thereafter. Never client-supplied.
	ID string `json:"id"`

	// Name is the user's display name. Non-empty, at most 100 characters.
	Name string `json:"name"`

	// Username is the user's handle. Non-empty, at most 100 characters.
	Username string `json:"username"`

	// Email is the user's email address. Unique across the collection
	// (exact string comparison, as persisted).
	Email string `json:"email"`
}

// UserFields carries the client-settable fields of a user. It is exactly
// the field set accepted on create; anything else a client sends
// (including an id) has no representation here and is dropped.
type UserFields struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUser constructs a User from client fields. The caller assigns ID.
func NewUser(f UserFields) *User {
	return &User{
		Name:     f.Name,
		Username: f.Username,
		Email:    f.Email,
	}
}

// UserPatch is a partial field set for updates. Nil means "leave as is".
// There is deliberately no ID field, so an update can never overwrite
// the record identifier.
type UserPatch struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Apply shallow-merges the patch onto the user: fields present in the
// patch replace the user's, unset fields are preserved.
func (u *User) Apply(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// Complete reports whether all three required fields are present.
func (f UserFields) Complete() bool {
	return f.Name != "" && f.Username != "" && f.Email != ""
}
