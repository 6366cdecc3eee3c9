package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "startupmail-backend/internal/auth/domain"
	authdto "startupmail-backend/internal/auth/dto"
	"startupmail-backend/internal/auth/repository"
	"startupmail-backend/pkg/apperror"
	"startupmail-backend/pkg/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &authdomain.Session{}))
	return db
}

func newTestUsecase(t *testing.T, cfg *config.Config) (AuthUsecase, repository.UserRepository, repository.SessionRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	if cfg == nil {
		cfg = &config.Config{
			JWTSecret:     "test-secret",
			JWTExpiry:     time.Minute,
			SessionExpiry: 7 * 24 * time.Hour,
		}
	}
	return NewAuthUsecase(userRepo, sessionRepo, cfg), userRepo, sessionRepo
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUsecase(t, nil)

	req := &authdto.RegisterRequest{
		Email:    "founder@acme.io",
		Password: "hunter22",
		FullName: "Ada Founder",
	}
	resp, err := uc.Register(req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	_, err = uc.Register(req)
	require.Error(t, err)
	assert.Equal(t, apperror.Conflict, apperror.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _, _ := newTestUsecase(t, nil)

	_, err := uc.Register(&authdto.RegisterRequest{
		Email:    "founder@acme.io",
		Password: "hunter22",
		FullName: "Ada Founder",
	})
	require.NoError(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "founder@acme.io", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))

	_, err = uc.Login(&authdto.LoginRequest{Email: "nobody@acme.io", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}

func TestResolveAccessToken(t *testing.T) {
	uc, _, _ := newTestUsecase(t, nil)

	resp, err := uc.Register(&authdto.RegisterRequest{
		Email:    "founder@acme.io",
		Password: "hunter22",
		FullName: "Ada Founder",
	})
	require.NoError(t, err)

	user, err := uc.ResolveToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "founder@acme.io", user.Email)

	_, err = uc.ResolveToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}

func TestExpiredSessionNeverResolves(t *testing.T) {
	uc, userRepo, sessionRepo := newTestUsecase(t, nil)

	user := &authdomain.User{Email: "founder@acme.io", Name: "Ada Founder"}
	require.NoError(t, userRepo.Create(user))

	session := &authdomain.Session{
		Token:     "expired-token",
		UserID:    user.ID,
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, sessionRepo.Create(session))

	resolved, err := uc.ResolveToken("expired-token")
	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
	assert.Equal(t, "session expired", apperror.PublicMessage(err))
}

func TestValidSessionResolves(t *testing.T) {
	uc, userRepo, sessionRepo := newTestUsecase(t, nil)

	user := &authdomain.User{Email: "founder@acme.io", Name: "Ada Founder"}
	require.NoError(t, userRepo.Create(user))
	require.NoError(t, sessionRepo.Create(&authdomain.Session{
		Token:     "live-token",
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	resolved, err := uc.ResolveToken("live-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, userRepo, sessionRepo := newTestUsecase(t, nil)

	user := &authdomain.User{Email: "founder@acme.io", Name: "Ada Founder"}
	require.NoError(t, userRepo.Create(user))
	require.NoError(t, sessionRepo.Create(&authdomain.Session{
		Token:     "live-token",
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := uc.ResolveToken("live-token")
	require.NoError(t, err)

	require.NoError(t, uc.Logout("live-token"))

	_, err = uc.ResolveToken("live-token")
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}

func newIdentityProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExchangeSessionCreatesUserAndSession(t *testing.T) {
	srv := newIdentityProvider(t, http.StatusOK,
		`{"id":"ext-1","email":"ada@acme.io","name":"Ada","picture":"https://img/x.png","session_token":"sess-abc"}`)

	cfg := &config.Config{
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Minute,
		SessionExpiry:       7 * 24 * time.Hour,
		IdentityProviderURL: srv.URL,
	}
	uc, userRepo, _ := newTestUsecase(t, cfg)

	resp, err := uc.ExchangeSession(context.Background(), "external-session-id")
	require.NoError(t, err)
	assert.Equal(t, "sess-abc", resp.SessionToken)
	assert.Equal(t, "ada@acme.io", resp.User.Email)
	assert.Equal(t, "Ada", resp.User.Name)

	resolved, err := uc.ResolveToken("sess-abc")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, resolved.ID)

	// The user row survives a second exchange; only the timestamp moves.
	stored, err := userRepo.FindByEmail("ada@acme.io")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, resp.User.ID, stored.ID)
}

func TestExchangeSessionRejectedByProvider(t *testing.T) {
	srv := newIdentityProvider(t, http.StatusUnauthorized, `{}`)

	cfg := &config.Config{
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Minute,
		SessionExpiry:       7 * 24 * time.Hour,
		IdentityProviderURL: srv.URL,
	}
	uc, _, _ := newTestUsecase(t, cfg)

	_, err := uc.ExchangeSession(context.Background(), "bad-session")
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}

func TestExchangeSessionMissingID(t *testing.T) {
	uc, _, _ := newTestUsecase(t, nil)

	_, err := uc.ExchangeSession(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperror.InvalidInput, apperror.KindOf(err))
}

func TestSessionInsertSweepsExpiredRows(t *testing.T) {
	_, userRepo, sessionRepo := newTestUsecase(t, nil)

	user := &authdomain.User{Email: "founder@acme.io", Name: "Ada Founder"}
	require.NoError(t, userRepo.Create(user))

	require.NoError(t, sessionRepo.Create(&authdomain.Session{
		Token:     "stale",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, sessionRepo.Create(&authdomain.Session{
		Token:     "fresh",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	stale, err := sessionRepo.FindByToken("stale")
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := sessionRepo.FindByToken("fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
