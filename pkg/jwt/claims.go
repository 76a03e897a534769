package jwt

import "github.com/golang-jwt/jwt/v5"

type ScorerClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RoleScorer Role = "scorer"
	RoleAdmin  Role = "admin"
)
