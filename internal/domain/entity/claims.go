package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is the parsed content of an access token.
type Claims struct {
	UserID string
	Role   UserRole
	jwt.RegisteredClaims
}
