package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/repositories"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/auth"
	"github.com/yigit/coachcenter/internal/pkg/logger"
	"github.com/yigit/coachcenter/internal/pkg/validation"
)

// AuthResult is a freshly issued token plus the administrator it belongs to
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.Admin
}

// AuthService defines authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error)
	GetCurrent(ctx context.Context, adminID string) (*models.Admin, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error)
}

type authServiceImpl struct {
	admins     AdminStore
	tokens     TokenIssuer
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(admins AdminStore, tokens TokenIssuer, bcryptCost int) AuthService {
	return &authServiceImpl{
		admins:     admins,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return apperrors.NewBadRequestError("Please provide an email and password")
	}
	if !validation.IsValidEmail(email) {
		return apperrors.NewBadRequestError("Please add a valid email")
	}
	if !validation.IsValidPassword(password) {
		return apperrors.NewBadRequestError("Password must be at least 6 characters")
	}
	return nil
}

// Register creates an administrator and logs it in
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	admin, err := s.createAdmin(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("adminID", admin.ID).Msg("Admin registered")
	return s.issue(admin)
}

func (s *authServiceImpl) createAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	exists, err := s.admins.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Admin already exists")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	admin := &models.Admin{ID: newID(), Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		// Lost the race against a concurrent registration.
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperrors.NewConflictError("Admin already exists")
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return admin, nil
}

// Login checks the credentials. Unknown email and wrong password fail the same way.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Please provide an email and password")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		logger.Warn().Str("adminID", admin.ID).Msg("Failed login attempt")
		return nil, invalidCredentials()
	}

	return s.issue(admin)
}

func invalidCredentials() error {
	return &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid credentials"}
}

func (s *authServiceImpl) issue(admin *models.Admin) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// GetCurrent loads the administrator a verified token was issued for
func (s *authServiceImpl) GetCurrent(ctx context.Context, adminID string) (*models.Admin, error) {
	if !isValidID(adminID) {
		return nil, apperrors.NewNotFoundError("Admin not found")
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Admin not found")
		}
		return nil, apperrors.NewInternalError("Server Error", err)
	}
	return admin, nil
}

// EnsureDefaultAdmin creates the configured administrator unless the email is already taken.
// It reports whether an administrator was created.
func (s *authServiceImpl) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	if err := validateCredentials(email, password); err != nil {
		return false, err
	}

	if _, err := s.createAdmin(ctx, email, password); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	logger.Info().Str("email", email).Msg("Default admin created")
	return true, nil
}
