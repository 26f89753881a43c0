package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
	"github.com/yoddle/coins_backend/internal/platform/config"
	"github.com/yoddle/coins_backend/internal/utils"
)

// authService verifies admin credentials and issues bearer tokens for the
// admin surfaces. Lookup failures and password mismatches return the same
// error so the response does not reveal which accounts exist.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo ports.UserRepository
}

// NewAuthService creates a new AuthSvc.
func NewAuthService(cfg *config.Config, userRepo ports.UserRepository) portssvc.AuthSvc {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "login user lookup failed")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.IsAdmin {
		return nil, fmt.Errorf("%w: admin access required", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to generate token", "user_id", user.UserID)
		return nil, err
	}

	s.LogInfo(ctx, "admin logged in", "user_id", user.UserID)
	return &dto.LoginResponse{
		Token:     token,
		UserID:    user.UserID,
		Name:      user.Name,
		ExpiresIn: int64(s.cfg.JWTExpiryDuration.Seconds()),
	}, nil
}

// RequireAdmin checks the admin flag of an authenticated user.
func (s *authService) RequireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown user %s", apperrors.ErrUnauthorized, userID)
		}
		return err
	}
	if !user.IsAdmin {
		return fmt.Errorf("%w: admin access required", apperrors.ErrForbidden)
	}
	return nil
}
