// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/application/ledger"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic. Besides revoking the refresh
// token it evicts the user's ledger session, so a later login starts from a
// fresh load instead of stale collections.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	sessions     *ledger.Manager
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, sessions *ledger.Manager) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// Execute performs the user logout by invalidating the refresh token and
// dropping the ledger session.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// The token might already be invalid; logout still succeeds.
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)

	uc.sessions.Evict(input.UserID)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
