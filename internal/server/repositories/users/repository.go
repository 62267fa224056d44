// Package users declares the credential-store contract for user records.
package users

import (
	"context"

	"github.com/dvolkov8/eventide/internal/server/models"
)

// Repository persists user records. A uniqueness invariant holds on
// username; implementations translate the store's uniqueness violation into
// common.ErrorDuplicate before it reaches the service layer.
type Repository interface {
	// Create inserts a new user and returns it with the store-assigned id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update persists username and password hash changes for an existing
	// user. Returns common.ErrorNotFound if the user is absent.
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
