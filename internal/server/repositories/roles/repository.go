// Package roles declares the lookup and assignment contract for user roles.
package roles

import (
	"context"

	"github.com/dvolkov8/eventide/internal/server/models"
)

// Repository resolves role names and maintains user-role assignments.
type Repository interface {
	// GetByNames returns the roles matching the given names. Names without a
	// matching role are simply absent from the result; the caller decides
	// whether a partial resolution is an error.
	GetByNames(ctx context.Context, names []string) ([]models.Role, error)

	// GetForUser returns the roles currently assigned to userID.
	GetForUser(ctx context.Context, userID string) ([]models.Role, error)

	// ReplaceForUser replaces the user's role set wholly with roleIDs.
	ReplaceForUser(ctx context.Context, userID string, roleIDs []string) error
}
