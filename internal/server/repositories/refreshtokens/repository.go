// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dvolkov8/eventide/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of
	// now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string. Returns
	// common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a non-existent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteForUser removes every refresh token owned by userID, ending all
	// of the user's sessions.
	DeleteForUser(ctx context.Context, userID string) error

	// PurgeExpired deletes the token only if it is already past its expiry.
	// The check and the delete run as one statement, so two concurrent
	// callers cannot revive or double-handle the row.
	PurgeExpired(ctx context.Context, token string) error
}
