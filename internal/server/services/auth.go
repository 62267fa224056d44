// Package services contains server-side business logic. This file implements
// AuthService, the sole authority for producing and validating session
// credentials: registration, login, access-token refresh, logout, and
// credential updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dvolkov8/eventide/internal/common"
	"github.com/dvolkov8/eventide/internal/cryptox"
	"github.com/dvolkov8/eventide/internal/dbx"
	"github.com/dvolkov8/eventide/internal/server/config"
	"github.com/dvolkov8/eventide/internal/server/models"
	"github.com/dvolkov8/eventide/internal/server/repositories/repomanager"
)

// refreshTokenBytes is the entropy of a refresh token id; the hex form is
// twice as long.
const refreshTokenBytes = 32

// TokenIssuer is the access-token capability injected into AuthService.
// Implemented by auth.Issuer; swapped for a fake in tests.
type TokenIssuer interface {
	Sign(userID string, validity time.Duration) (string, error)
	Verify(token string) (string, error)
}

// AuthResult is returned by Register and Login: a short-lived access token,
// a long-lived refresh token, and the authenticated user id.
type AuthResult struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// CredentialUpdate describes a partial credentials change. A non-empty
// Password requests a password change to NewPassword and must match the
// current one; a non-empty Username renames the account.
type CredentialUpdate struct {
	Username    string
	Password    string
	NewPassword string
}

// AuthService orchestrates the credential store, refresh token store,
// password hasher and access-token issuer. It holds no mutable state of its
// own and is safe for concurrent use.
type AuthService struct {
	db              *sql.DB
	repos           repomanager.RepositoryManager
	hasher          cryptox.PasswordHasher
	issuer          TokenIssuer
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthService constructs an AuthService from its injected capabilities.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher, issuer TokenIssuer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repos:           m,
		hasher:          hasher,
		issuer:          issuer,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a new user and logs it in, in one transaction. A
// uniqueness conflict on username surfaces as common.ErrorDuplicate whether
// it came from a pre-check miss or a concurrent registration.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repos.Users(tx).Create(ctx, &models.User{Username: username, PasswordHash: hash})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		result, err = s.issueTokens(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login verifies the username/password pair and mints a fresh token pair.
// An unknown username fails common.ErrorNotFound on the username field, a
// wrong password common.ErrorUnauthorized on the password field, so the UI
// can attribute the failure. Concurrent logins each get their own refresh
// token; sessions are not mutually exclusive.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound("username")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		return nil, common.Unauthorized("password")
	}

	return s.issueTokens(ctx, s.db, user.ID)
}

// Refresh mints a new access token for the owner of a valid refresh token.
// An expired token is deleted as a side effect of the failed verification,
// so it can never be retried into validity. The refresh token itself is not
// rotated or extended; it stays usable until its original expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	repo := s.repos.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.NotFound("refreshToken")
		}
		return "", fmt.Errorf("looking up refresh token: %w", err)
	}

	if token.ExpiredAt(time.Now()) {
		if err := repo.PurgeExpired(ctx, refreshToken); err != nil {
			return "", fmt.Errorf("purging expired refresh token: %w", err)
		}
		return "", common.Expired("refreshToken")
	}

	access, err := s.issuer.Sign(token.UserID, s.accessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return access, nil
}

// Logout deletes the refresh token if present. It is idempotent: logging out
// an already-deleted token succeeds. Outstanding access tokens stay valid
// until they expire on their own.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("deleting refresh token: %w", err)
	}
	return nil
}

// LogoutAll deletes every refresh token the user holds, ending all sessions.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repos.RefreshTokens(s.db).DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting refresh tokens: %w", err)
	}
	return nil
}

// UpdateCredentials applies a partial credentials change. A password change
// requires the current password to match; the new password is hashed only
// when it actually changes, so unrelated updates never re-hash a stored
// hash. A username conflict surfaces as common.ErrorDuplicate.
func (s *AuthService) UpdateCredentials(ctx context.Context, userID string, upd CredentialUpdate) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound("user")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if upd.Password != "" {
		if !s.hasher.Compare(upd.Password, user.PasswordHash) {
			return nil, common.Unauthorized("password")
		}
		hash, err := s.hasher.Hash(upd.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	if upd.Username != "" {
		user.Username = upd.Username
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicate) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return updated, nil
}

// AssignRoles resolves the given role names and replaces the user's role set
// wholly. If any name is unresolvable the whole batch fails with
// common.ErrorNotFound on the role field; there is no partial assignment.
func (s *AuthService) AssignRoles(ctx context.Context, userID string, roleNames []string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound("user")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	resolved, err := s.repos.Roles(s.db).GetByNames(ctx, roleNames)
	if err != nil {
		return nil, fmt.Errorf("resolving roles: %w", err)
	}
	if len(resolved) != len(roleNames) {
		return nil, common.NotFound("role")
	}

	roleIDs := make([]string, len(resolved))
	for i, role := range resolved {
		roleIDs[i] = role.ID
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Roles(tx).ReplaceForUser(ctx, userID, roleIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("replacing roles: %w", err)
	}

	user.Roles = resolved
	return user, nil
}

// GetUser returns the user with its assigned roles.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound("user")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	userRoles, err := s.repos.Roles(s.db).GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading roles: %w", err)
	}
	user.Roles = userRoles
	return user, nil
}

// issueTokens mints an access token and persists a new refresh token for
// userID on the given handle (plain connection or transaction).
func (s *AuthService) issueTokens(ctx context.Context, db dbx.DBTX, userID string) (*AuthResult, error) {
	access, err := s.issuer.Sign(userID, s.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refresh, err := common.MakeRandHexString(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	if err := s.repos.RefreshTokens(db).Create(ctx, userID, refresh, s.refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &AuthResult{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}
