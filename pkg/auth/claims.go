package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the only role the back-office mints today.
const RoleAdmin = "admin"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AdminID  uuid.UUID
	Username string
	Role     string
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to operators.
type AccessTokenClaims struct {
	AdminID  uuid.UUID `json:"admin_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}
