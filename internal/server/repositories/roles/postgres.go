// Package roles provides a PostgreSQL-backed repository for role lookups and
// user-role assignment.
package roles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvolkov8/eventide/internal/dbx"
	"github.com/dvolkov8/eventide/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByNames returns the roles matching the given names.
func (r *PostgresRepository) GetByNames(ctx context.Context, names []string) ([]models.Role, error) {
	query := `
		SELECT id, name
		FROM roles
		WHERE name = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectRoles(rows)
}

// GetForUser returns the roles currently assigned to userID.
func (r *PostgresRepository) GetForUser(ctx context.Context, userID string) ([]models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectRoles(rows)
}

// ReplaceForUser replaces the user's role set wholly with roleIDs. Callers
// run this inside a transaction so the delete and inserts land together.
func (r *PostgresRepository) ReplaceForUser(ctx context.Context, userID string, roleIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
	`
	for _, roleID := range roleIDs {
		if _, err := r.db.ExecContext(ctx, query, userID, roleID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func collectRoles(rows *sql.Rows) ([]models.Role, error) {
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return roles, nil
}
