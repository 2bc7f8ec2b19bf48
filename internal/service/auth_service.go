package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fruitseason/internal/auth"
	"fruitseason/internal/errors"
	"fruitseason/internal/model"
	"fruitseason/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

// AuthService handles registration and authentication.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and no subscription.
// Username and email must be unique; the password must be at least eight
// characters. The plaintext password is never stored.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidation("username is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, errors.NewValidation("email is required")
	}
	if password == "" {
		return nil, errors.NewValidation("password is required")
	}
	if len(password) < minPasswordLength {
		return nil, errors.NewValidation("password must be at least 8 characters")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, errors.NewValidation("username is already taken")
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errors.NewValidation("email is already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		Plan:         model.PlanNone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues access and refresh tokens. Unknown
// user and wrong password report the same error.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.IssueRefreshToken(user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.Username, user.Role, s.jwtService.RefreshTokenTTL()); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token and issues a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.VerifySubject(refreshToken)
	if err != nil || claims.ID == "" {
		return "", errors.ErrInvalidToken
	}

	username, role, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || username != claims.Subject {
		return "", errors.ErrInvalidToken
	}

	accessToken, err := s.jwtService.IssueAccessToken(username, role)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.VerifySubject(refreshToken)
	if err != nil || claims.ID == "" {
		return errors.ErrInvalidToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}
