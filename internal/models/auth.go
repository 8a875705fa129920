package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the roles carried in access tokens. Token issuance is
// owned by the identity service; this API only consumes the claims.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RolePreceptor UserRole = "preceptor"
	RoleDocente   UserRole = "docente"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// CanCoverAnyCourse reports whether the role may operate on every course.
// Preceptors cover for each other, so course assignment does not gate them.
func (c *JWTClaims) CanCoverAnyCourse() bool {
	return c.Role == RoleAdmin || c.Role == RolePreceptor
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
