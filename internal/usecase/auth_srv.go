package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/dto/request"
	"github.com/royalnordicfi/royalnordic/internal/dto/response"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for any admin login failure. The message
// never says which factor failed.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// dummyCredentialHash is a throwaway bcrypt hash compared against when the
// email is unknown, keeping that path as slow as a real credential check.
// The comparison result is discarded.
const dummyCredentialHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService interface {
	// Login checks the admin's password and secure key and issues a JWT.
	Login(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error)

	// Setup creates the admin account. Allowed only while no admin exists;
	// after first-run setup the endpoint is inert.
	Setup(ctx context.Context, req *request.AdminSetupRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	admin, err := s.repo.Admin.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up admin", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		// Burn the same bcrypt work as a real comparison so response timing
		// does not reveal whether the email exists.
		utils.CheckPasswordHash(req.Password, dummyCredentialHash)
		utils.CheckPasswordHash(req.SecureKey, dummyCredentialHash)
		s.log.Warn("Admin login for unknown email", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// Both factors are checked even when the first fails, so timing does not
	// reveal which one was wrong.
	passOK := utils.CheckPasswordHash(req.Password, admin.PasswordHash)
	keyOK := utils.CheckPasswordHash(req.SecureKey, admin.SecureKeyHash)
	if !passOK || !keyOK {
		s.log.Warn("Admin login with bad credentials", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.ID.String(),
		"email": admin.Email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		s.log.Error("Failed to sign admin token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)

	return &response.AdminLoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Email:     admin.Email,
	}, nil
}

func (s *authService) Setup(ctx context.Context, req *request.AdminSetupRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin setup validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", entity.ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	count, err := s.repo.Admin.Count(ctx)
	if err != nil {
		return fmt.Errorf("check existing admin: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: admin account already exists", entity.ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	secureKeyHash, err := utils.HashPassword(req.SecureKey)
	if err != nil {
		return fmt.Errorf("hash secure key: %w", err)
	}

	admin := &entity.AdminUser{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:         req.Email,
		PasswordHash:  passwordHash,
		SecureKeyHash: secureKeyHash,
	}

	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		s.log.Error("Failed to create admin", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin account created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
	return nil
}
