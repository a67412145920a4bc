package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated principal. The id and role embedded
// here are authoritative for every authorization decision; role values
// supplied in request bodies or query parameters are never trusted.
type JWTClaims struct {
	UserID string   `json:"id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
