package model

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user record in the database. Email is stored
// lowercased; PasswordHash holds the Argon2id PHC string, never a
// plaintext password.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupRequest is the payload for POST /signup and admin user creation.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
	UserType  string `json:"user_type" validate:"omitempty,oneof=admin user"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateRequest is the payload for PATCH and PUT on a user record.
// Nil fields are left untouched by PATCH; PUT replaces every field it
// covers and therefore requires them via ValidatePut.
type UserUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	UserType  *string `json:"user_type" validate:"omitempty,oneof=admin user"`
	Password  *string `json:"password"`
}

// TokenRefreshRequest is the payload for POST /token/refresh.
type TokenRefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse is the user shape returned by the API. No credential
// material ever leaves the server.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

// LoginResponse is the data payload of a successful login.
type LoginResponse struct {
	Refresh  string       `json:"refresh"`
	Access   string       `json:"access"`
	UserInfo UserResponse `json:"user_info"`
}

// UserListResponse is the data payload of an admin user listing.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
	TotalUsers int64          `json:"total_users"`
}

// NewUserResponse converts a stored user to its API shape.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.Role,
	}
}
