package models

import "time"

// RefreshToken is a store-backed session credential. Token is the opaque,
// unguessable id handed to the client; it is never rotated or extended, only
// deleted on logout or on first use after expiry.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the token is past its validity at the given time.
func (t *RefreshToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
