package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/auth"
)

func newAuthService(t *testing.T, f *fixture) (AuthService, *auth.JWTService) {
	t.Helper()
	jwtService, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExpiry: time.Hour})
	require.NoError(t, err)
	return NewAuthService(f.admins, jwtService, 4), jwtService
}

func TestRegisterIssuesTokenForNewAdmin(t *testing.T) {
	f := newFixture()
	svc, jwtService := newAuthService(t, f)

	result, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", result.Admin.Email)
	assert.NotEqual(t, "secret1", result.Admin.PasswordHash)

	adminID, err := jwtService.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Admin.ID, adminID)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{name: "missing email", req: dto.RegisterRequest{Password: "secret1"}},
		{name: "missing password", req: dto.RegisterRequest{Email: "a@x.com"}},
		{name: "malformed email", req: dto.RegisterRequest{Email: "not-an-email", Password: "secret1"}},
		{name: "short password", req: dto.RegisterRequest{Email: "a@x.com", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthService(t, newFixture())
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newFixture()
	svc, _ := newAuthService(t, f)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "another1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Admin already exists", apperrors.Message(err, ""))
	assert.Len(t, f.admins.admins, 1)

	// The first password still works.
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t, newFixture())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.Admin.ID, result.Admin.ID)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// Unknown email and wrong password are indistinguishable.
	_, wrongPassword := svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "wrong12"})
	_, unknownEmail := svc.Login(ctx, dto.LoginRequest{Email: "b@x.com", Password: "secret1"})
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGetCurrent(t *testing.T) {
	svc, _ := newAuthService(t, newFixture())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	admin, err := svc.GetCurrent(ctx, registered.Admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", admin.Email)

	_, err = svc.GetCurrent(ctx, "6c1f3a52-8f0e-4d7e-9a55-2f0d9b8a7c11")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetCurrent(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	f := newFixture()
	svc, _ := newAuthService(t, f)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "boss@center.com", "secret1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "boss@center.com", "secret1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, f.admins.admins, 1)

	_, err = svc.EnsureDefaultAdmin(ctx, "boss@center.com", "123")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
