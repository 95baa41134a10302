package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims issued at signup/signin.
type UserClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the request body for POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful signup or signin.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
