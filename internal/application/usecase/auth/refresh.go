package auth

import (
	"context"
	"fmt"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// RefreshInput represents the input for rotating a refresh token.
type RefreshInput struct {
	RefreshToken string
}

// RefreshUseCase rotates refresh tokens. The presented token is revoked
// before a new pair is issued.
type RefreshUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshUseCase creates a new RefreshUseCase instance.
func NewRefreshUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshUseCase {
	return &RefreshUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the rotation.
func (uc *RefreshUseCase) Execute(ctx context.Context, input RefreshInput) (*SessionOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"refresh token owner no longer exists",
			domainerror.ErrInvalidToken,
		)
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return startSession(ctx, uc.tokenService, user)
}

// LogoutUseCase revokes a refresh token.
type LogoutUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUseCase creates a new LogoutUseCase instance.
func NewLogoutUseCase(tokenService adapter.TokenService) *LogoutUseCase {
	return &LogoutUseCase{tokenService: tokenService}
}

// Execute revokes the token. Unknown or already revoked tokens are not an error.
func (uc *LogoutUseCase) Execute(ctx context.Context, refreshToken string) error {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, refreshToken)
	return nil
}
