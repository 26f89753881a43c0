package services

import (
	"context"

	"github.com/yoddle/coins_backend/internal/dto"
)

// AuthSvc verifies admin credentials and issues tokens for the admin surfaces.
// Everything else about authentication belongs to the surrounding platform.
type AuthSvc interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// RequireAdmin returns apperrors.ErrForbidden when userID is not an
	// admin, apperrors.ErrUnauthorized when the user does not exist.
	RequireAdmin(ctx context.Context, userID string) error
}
