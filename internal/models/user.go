package models

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	DateJoined   time.Time `json:"date_joined"`
}

// IsStaff reports whether the user may use the admin endpoints.
func (u User) IsStaff() bool {
	return u.Role == RoleStaff
}

const (
	maxUsernameLen    = 150
	minPasswordLength = 8
)

// ValidateRegistration checks the fields accepted by the register endpoint.
func ValidateRegistration(username, email, password string) error {
	errs := ValidationErrors{}
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		errs.Add("username", "this field is required")
	case utf8.RuneCountInString(username) > maxUsernameLen:
		errs.Add("username", "ensure this field has no more than 150 characters")
	case strings.ContainsAny(username, " \t\r\n"):
		errs.Add("username", "username may not contain whitespace")
	}
	if email = strings.TrimSpace(email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("email", "enter a valid email address")
		}
	}
	if password == "" {
		errs.Add("password", "this field is required")
	} else if utf8.RuneCountInString(password) < minPasswordLength || !utf8.ValidString(password) {
		errs.Add("password", "password must be at least 8 characters")
	}
	return errs.Err()
}
