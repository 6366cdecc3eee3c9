package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	authdomain "startupmail-backend/internal/auth/domain"
	authdto "startupmail-backend/internal/auth/dto"
	"startupmail-backend/internal/auth/repository"
	"startupmail-backend/pkg/apperror"
	"startupmail-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      *config.Config
	httpClient  *http.Client
}

func NewAuthUsecase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      cfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.Conflict, "email already registered")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.FullName,
		Company:  req.Company,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return u.issueAccessToken(user)
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperror.New(apperror.Unauthenticated, "incorrect email or password")
	}

	return u.issueAccessToken(user)
}

// identitySessionPayload is the body returned by the external identity
// provider in exchange for a session id.
type identitySessionPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

func (u *authUsecase) ExchangeSession(ctx context.Context, sessionID string) (*authdto.SessionResponse, error) {
	if sessionID == "" {
		return nil, apperror.New(apperror.InvalidInput, "session id is required")
	}
	if u.config.IdentityProviderURL == "" {
		return nil, apperror.New(apperror.Upstream, "identity provider not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.config.IdentityProviderURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.New(apperror.Unauthenticated, "invalid external session")
	}

	var payload identitySessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "invalid identity provider response", err)
	}

	user, err := u.userRepo.FindByEmail(payload.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &authdomain.User{
			Email:   payload.Email,
			Name:    payload.Name,
			Picture: payload.Picture,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		// Refresh the timestamp only. Name and picture keep whatever
		// was stored at first login.
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	session := &authdomain.Session{
		Token:     payload.SessionToken,
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(u.config.SessionExpiry),
	}
	if err := u.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &authdto.SessionResponse{
		SessionToken: session.Token,
		User:         user,
	}, nil
}

func (u *authUsecase) ResolveToken(token string) (*authdomain.User, error) {
	session, err := u.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if session != nil {
		if time.Now().After(session.ExpiresAt) {
			return nil, apperror.New(apperror.Unauthenticated, "session expired")
		}
		user, err := u.userRepo.FindByID(session.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.New(apperror.Unauthenticated, "user not found")
		}
		return user, nil
	}

	return u.validateAccessToken(token)
}

func (u *authUsecase) Logout(token string) error {
	return u.sessionRepo.DeleteByToken(token)
}

func (u *authUsecase) issueAccessToken(user *authdomain.User) (*authdto.TokenResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"sub":     user.Email,
		"exp":     time.Now().Add(u.config.JWTExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (u *authUsecase) validateAccessToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(apperror.Unauthenticated, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.New(apperror.Unauthenticated, "invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperror.New(apperror.Unauthenticated, "invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.Unauthenticated, "user not found")
	}

	return user, nil
}
