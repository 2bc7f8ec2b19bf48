package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fruitseason/internal/auth"
	"fruitseason/internal/errors"
	"fruitseason/internal/model"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		usernameTaken bool
		emailTaken    bool
		wantErr       string
	}{
		{
			name:     "successful registration",
			username: "demo",
			email:    "demo@example.com",
			password: "long-enough-password",
		},
		{
			name:     "blank username",
			username: "   ",
			email:    "demo@example.com",
			password: "long-enough-password",
			wantErr:  "username is required",
		},
		{
			name:     "blank email",
			username: "demo",
			email:    "",
			password: "long-enough-password",
			wantErr:  "email is required",
		},
		{
			name:     "short password",
			username: "demo",
			email:    "demo@example.com",
			password: "seven77",
			wantErr:  "password must be at least 8 characters",
		},
		{
			name:          "username already taken",
			username:      "demo",
			email:         "demo@example.com",
			password:      "long-enough-password",
			usernameTaken: true,
			wantErr:       "username is already taken",
		},
		{
			name:       "email already registered",
			username:   "demo",
			email:      "demo@example.com",
			password:   "long-enough-password",
			emailTaken: true,
			wantErr:    "email is already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			store := new(MockTokenStore)
			svc := NewAuthService(users, newTestJWTService(), store)

			if tt.usernameTaken {
				users.On("FindByUsername", mock.Anything, tt.username).Return(&model.User{Username: tt.username}, nil)
			} else {
				users.On("FindByUsername", mock.Anything, tt.username).Return(nil, gorm.ErrRecordNotFound)
			}
			if tt.emailTaken {
				users.On("FindByEmail", mock.Anything, tt.email).Return(&model.User{Email: tt.email}, nil)
			} else {
				users.On("FindByEmail", mock.Anything, tt.email).Return(nil, gorm.ErrRecordNotFound)
			}
			users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.IsType(t, &errors.ValidationError{}, err)
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.PlanNone, user.Plan)
			assert.Equal(t, model.RoleUser, user.Role)
			assert.NotEqual(t, tt.password, user.PasswordHash, "plaintext password must never be stored")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &model.User{ID: 1, Username: "demo", Role: model.RoleUser, PasswordHash: string(hashed)}

	t.Run("successful login issues tokens", func(t *testing.T) {
		users := new(MockUserRepository)
		store := new(MockTokenStore)
		jwtService := newTestJWTService()
		svc := NewAuthService(users, jwtService, store)

		users.On("FindByUsername", mock.Anything, "demo").Return(stored, nil)
		store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), "demo", model.RoleUser, 24*time.Hour).Return(nil)

		access, refresh, user, err := svc.Login(context.Background(), "demo", "correct-password")

		assert.NoError(t, err)
		assert.Equal(t, "demo", user.Username)
		assert.NotEmpty(t, refresh)

		claims, err := jwtService.VerifySubject(access)
		assert.NoError(t, err)
		assert.Equal(t, "demo", claims.Subject)
		assert.Equal(t, model.RoleUser, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestJWTService(), new(MockTokenStore))
		users.On("FindByUsername", mock.Anything, "demo").Return(stored, nil)

		_, _, _, err := svc.Login(context.Background(), "demo", "wrong-password")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("unknown user reports the same error", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, newTestJWTService(), new(MockTokenStore))
		users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login(context.Background(), "ghost", "correct-password")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := newTestJWTService()
	tokenID, refreshToken, err := jwtService.IssueRefreshToken("demo", model.RoleUser)
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		store := new(MockTokenStore)
		svc := NewAuthService(new(MockUserRepository), jwtService, store)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("demo", model.RoleUser, nil)

		access, err := svc.Refresh(context.Background(), refreshToken)
		assert.NoError(t, err)

		claims, err := jwtService.VerifySubject(access)
		assert.NoError(t, err)
		assert.Equal(t, "demo", claims.Subject)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		store := new(MockTokenStore)
		svc := NewAuthService(new(MockUserRepository), jwtService, store)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("", "", assert.AnError)

		_, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		store := new(MockTokenStore)
		svc := NewAuthService(new(MockUserRepository), jwtService, store)

		access, err := jwtService.IssueAccessToken("demo", model.RoleUser)
		assert.NoError(t, err)

		_, err = svc.Refresh(context.Background(), access)
		assert.ErrorIs(t, err, errors.ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := newTestJWTService()
	tokenID, refreshToken, err := jwtService.IssueRefreshToken("demo", model.RoleUser)
	assert.NoError(t, err)

	store := new(MockTokenStore)
	svc := NewAuthService(new(MockUserRepository), jwtService, store)
	store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	store.AssertCalled(t, "DeleteRefreshToken", mock.Anything, tokenID)
}
