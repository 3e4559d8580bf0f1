package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload carries the identity minted into an access token.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	LoginID string
	JTI     string
}

// AccessTokenClaims is the JWT claim set for storefront sessions.
type AccessTokenClaims struct {
	UserID  uuid.UUID `json:"uid"`
	LoginID string    `json:"login_id"`
	jwt.RegisteredClaims
}
