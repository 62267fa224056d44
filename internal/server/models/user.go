// Package models holds the server-side domain entities.
package models

import "time"

// User is a credential-store record. PasswordHash is opaque and never leaves
// the server.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
