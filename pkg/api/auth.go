// Package api defines the JSON request and response bodies of the HTTP API.
package api

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login: a short-lived access
// token and a long-lived refresh token.
type TokenResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime, seconds
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the re-minted access token. The refresh token is
// not rotated and keeps its original expiry.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LogoutRequest ends the session identified by the refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateCredentialsRequest changes the caller's username and/or password. A
// password change requires the current password.
type UpdateCredentialsRequest struct {
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

// AssignRolesRequest replaces the caller's role set wholly.
type AssignRolesRequest struct {
	Roles []string `json:"roles"`
}

// UserResponse describes an account and its roles.
type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ErrorResponse is the uniform error body. ErrorCode names the input field
// the failure refers to (username, password, refreshToken, role) when the
// error carries one.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"errorCode,omitempty"`
}
