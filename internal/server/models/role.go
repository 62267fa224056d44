package models

// Role is a named access level referenced by users.
type Role struct {
	ID   string
	Name string
}
