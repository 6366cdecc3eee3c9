package usecase

import (
	"context"

	authdomain "startupmail-backend/internal/auth/domain"
	authdto "startupmail-backend/internal/auth/dto"
)

// AuthUsecase covers both credential login (signed access tokens) and
// federated login (opaque session tokens exchanged with an external
// identity provider).
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ExchangeSession(ctx context.Context, sessionID string) (*authdto.SessionResponse, error)

	// ResolveToken maps a bearer token to a user. Opaque session tokens
	// are looked up in the store; anything else is validated as a JWT.
	ResolveToken(token string) (*authdomain.User, error)

	// Logout revokes an opaque session token. Signed access tokens are
	// stateless and simply expire, so for them this is a no-op.
	Logout(token string) error
}
