// Package validation checks user-supplied credential fields before they
// reach the authentication service.
package validation

import (
	"fmt"
	"regexp"
)

// Username format: latin letters, digits and underscores, 4-32 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{4,32}$`)

const (
	// MinUsernameLen is the minimum username length.
	MinUsernameLen = 4
	// MaxUsernameLen is the maximum username length.
	MaxUsernameLen = 32
	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 4
)

// ValidateUsername checks that username is 4-32 characters of letters,
// digits and underscores.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers and underscores")
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}
