// Package auth implements the access token issuer: a compact, stateless,
// time-bound JWT carrying the user id. The signing key is supplied at
// construction so the capability can be injected and swapped in tests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dvolkov8/eventide/internal/common"
)

// Claims extends the registered JWT claims with the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
}

// NewIssuer constructs an Issuer around the given HMAC secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Sign mints a token bound to userID, valid for the given duration.
func (i *Issuer) Sign(userID string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// user id. Expired tokens yield common.ErrorExpired; everything else that
// fails verification yields common.ErrorInvalidSignature. There is no
// revocation list: a token that verifies is trusted until it expires.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.Expired("accessToken")
		}
		return "", &common.FieldError{Err: common.ErrorInvalidSignature, Field: "accessToken"}
	}
	if !token.Valid {
		return "", &common.FieldError{Err: common.ErrorInvalidSignature, Field: "accessToken"}
	}

	return claims.UserID, nil
}
