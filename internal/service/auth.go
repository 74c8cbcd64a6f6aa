package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrEmailTaken          = errors.New("A user with this email address already exists")
	ErrPasswordTooShort    = errors.New("This password is too short. It must contain at least 8 characters")
	ErrPasswordAllNumeric  = errors.New("This password is entirely numeric")
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
	ErrExpiredRefreshToken = errors.New("Refresh token has expired, kindly log in again")
)

// AuthService handles signup, credential validation and token issuing.
type AuthService struct {
	users  *repository.UserRepository
	tokens *crypto.TokenService
}

func NewAuthService(users *repository.UserRepository, tokens *crypto.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates a new user with a hashed password. The email is
// lowercased before the uniqueness check so reuse is caught
// case-insensitively.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.UserResponse, error) {
	if err := checkPasswordStrength(req.Password); err != nil {
		return model.UserResponse{}, err
	}

	role := req.UserType
	if role == "" {
		role = model.RoleUser
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        strings.ToLower(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Login validates an email/password pair and issues a token pair. A
// missing user and a wrong password produce the same error so callers
// cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if !match || !user.Active {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Refresh:  pair.Refresh,
		Access:   pair.Access,
		UserInfo: model.NewUserResponse(user),
	}, nil
}

// Refresh validates a refresh token and mints a fresh pair, rotating
// the refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (crypto.TokenPair, error) {
	claims, err := s.tokens.Validate(refreshToken, crypto.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, crypto.ErrExpiredToken) {
			return crypto.TokenPair{}, ErrExpiredRefreshToken
		}
		return crypto.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || !user.Active {
		return crypto.TokenPair{}, ErrInvalidRefreshToken
	}

	return s.tokens.IssuePair(user.ID, user.Role)
}

// checkPasswordStrength applies the signup password policy: at least
// eight characters and not entirely numeric.
func checkPasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrPasswordAllNumeric
}
