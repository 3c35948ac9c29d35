package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()

	repo := &repository.Repository{
		Tour:         repository.NewMemoryTourRepository(),
		Availability: repository.NewMemoryAvailabilityRepository(),
		Booking:      repository.NewMemoryBookingRepository(),
		Admin:        repository.NewMemoryAdminRepository(),
	}
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret-do-not-use", ExpiryHours: 24},
	}
	return NewAuthService(repo, config, zap.NewNop())
}

func setupRequest() *request.AdminSetupRequest {
	return &request.AdminSetupRequest{
		Email:     "admin@royalnordic.fi",
		Password:  "a-long-password-1",
		SecureKey: "a-long-secure-key",
	}
}

func TestAdminSetupAndLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, setupRequest()))

	resp, err := svc.Login(ctx, &request.AdminLoginRequest{
		Email:     "admin@royalnordic.fi",
		Password:  "a-long-password-1",
		SecureKey: "a-long-secure-key",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@royalnordic.fi", resp.Email)
}

func TestAdminLoginRejectsWrongSecureKey(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, setupRequest()))

	_, err := svc.Login(ctx, &request.AdminLoginRequest{
		Email:     "admin@royalnordic.fi",
		Password:  "a-long-password-1",
		SecureKey: "wrong-secure-key!",
	})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, setupRequest()))

	_, unknownErr := svc.Login(ctx, &request.AdminLoginRequest{
		Email:     "nobody@royalnordic.fi",
		Password:  "whatever-password",
		SecureKey: "whatever-key-1234",
	})
	assert.True(t, errors.Is(unknownErr, ErrInvalidCredentials))

	// An unknown email and a bad password must be indistinguishable.
	_, wrongErr := svc.Login(ctx, &request.AdminLoginRequest{
		Email:     "admin@royalnordic.fi",
		Password:  "whatever-password",
		SecureKey: "a-long-secure-key",
	})
	assert.True(t, errors.Is(wrongErr, ErrInvalidCredentials))
	assert.Equal(t, wrongErr.Error(), unknownErr.Error())
}

func TestAdminSetupRejectsSecondAccount(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Setup(ctx, setupRequest()))

	err := svc.Setup(ctx, setupRequest())
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestAdminSetupEnforcesMinimumLengths(t *testing.T) {
	svc := newAuthFixture(t)

	err := svc.Setup(context.Background(), &request.AdminSetupRequest{
		Email:     "admin@royalnordic.fi",
		Password:  "short",
		SecureKey: "short",
	})
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}
