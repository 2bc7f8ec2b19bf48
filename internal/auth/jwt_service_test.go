package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "fruitseason/internal/errors"
	"fruitseason/internal/model"
)

func TestJWTService_AccessTokenRoundtrip(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, time.Hour)

	token, err := svc.IssueAccessToken("demo", model.RoleUser)
	assert.NoError(t, err)

	claims, err := svc.VerifySubject(token)
	assert.NoError(t, err)
	assert.Equal(t, "demo", claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Empty(t, claims.ID, "access tokens carry no token ID")
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, time.Hour)

	tokenID, token, err := svc.IssueRefreshToken("demo", model.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.VerifySubject(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestJWTService_VerifySubjectFailures(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, time.Hour)

	valid, err := svc.IssueAccessToken("demo", model.RoleUser)
	assert.NoError(t, err)

	expiredSvc := NewJWTService("secret", -time.Minute, time.Hour)
	expired, err := expiredSvc.IssueAccessToken("demo", model.RoleUser)
	assert.NoError(t, err)

	otherSecret := NewJWTService("other-secret", 15*time.Minute, time.Hour)
	misSigned, err := otherSecret.IssueAccessToken("demo", model.RoleUser)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not.a.jwt"},
		{name: "expired token", token: expired},
		{name: "wrong secret", token: misSigned},
		{name: "tampered signature", token: valid + "tamper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.VerifySubject(tt.token)
			assert.Nil(t, claims)
			// Every failure mode reports the same error.
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}
