// Package common defines the shared error taxonomy and small helpers used
// across Eventide components. Callers should match errors with errors.Is.
package common

import "errors"

// Sentinel errors describing the domain-level failure kinds. Every
// authentication failure surfaced to callers unwraps to one of these.
var (
	// ErrorNotFound — the referenced entity is absent.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized — a credential did not match.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorDuplicate — a write violated a uniqueness invariant.
	ErrorDuplicate = errors.New("duplicate identity")

	// ErrorExpired — a time-bound credential is past its validity.
	ErrorExpired = errors.New("expired")

	// ErrorInvalidSignature — an access token failed cryptographic verification.
	ErrorInvalidSignature = errors.New("invalid signature")

	// ErrorInternal — an infrastructure failure unrelated to domain logic.
	ErrorInternal = errors.New("internal error")
)

// FieldError tags a domain error with the input field it refers to, so the
// UI can attribute the failure to a concrete form field (username vs
// password). It unwraps to one of the sentinels above, keeping errors.Is
// matching intact.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Field
}

func (e *FieldError) Unwrap() error { return e.Err }

// NotFound returns ErrorNotFound tagged with the given field.
func NotFound(field string) error {
	return &FieldError{Err: ErrorNotFound, Field: field}
}

// Unauthorized returns ErrorUnauthorized tagged with the given field.
func Unauthorized(field string) error {
	return &FieldError{Err: ErrorUnauthorized, Field: field}
}

// Duplicate returns ErrorDuplicate tagged with the given field.
func Duplicate(field string) error {
	return &FieldError{Err: ErrorDuplicate, Field: field}
}

// Expired returns ErrorExpired tagged with the given field.
func Expired(field string) error {
	return &FieldError{Err: ErrorExpired, Field: field}
}

// Field extracts the field tag from err, or "" when err carries none.
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
