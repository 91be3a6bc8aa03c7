// Package identity describes the signed-in user the dashboard acts for.
package identity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// User is forwarded to the backend unchanged with every question.
type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName prefers the first name and falls back to the local part of the
// email address.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName); name != "" {
		return name
	}
	email := strings.TrimSpace(u.Email)
	if at := strings.Index(email, "@"); at >= 0 {
		email = email[:at]
	}
	if email == "" {
		return "there"
	}
	return email
}

// Greeting is the dashboard header line.
func (u User) Greeting() string {
	return "Good morning, " + u.DisplayName()
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// ParseJSON decodes a user record, for callers that receive it as a blob.
func ParseJSON(raw string) (User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}
