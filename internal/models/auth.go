package models

import "github.com/golang-jwt/jwt/v5"

// OperatorRole is the console-side role carried in the access token.
type OperatorRole string

const (
	RoleAdmin    OperatorRole = "admin"
	RoleOperator OperatorRole = "operator"
	RoleViewer   OperatorRole = "viewer"
)

// JWTClaims is the identity payload issued by the platform. The console
// validates the signature but never issues tokens itself.
type JWTClaims struct {
	UserID   string       `json:"user_id"`
	Role     OperatorRole `json:"role"`
	FullName string       `json:"full_name"`
	jwt.RegisteredClaims
}
