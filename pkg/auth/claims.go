package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
}

// AccessTokenClaims represents the typed JWT the presentation layer sends.
// The engine trusts the user id inside it; verifying how the token was
// obtained is the identity collaborator's concern.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
