package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"startupmail-backend/internal/analytics"
	authdomain "startupmail-backend/internal/auth/domain"
	authrepo "startupmail-backend/internal/auth/repository"
	authusecase "startupmail-backend/internal/auth/usecase"
	maildomain "startupmail-backend/internal/mail/domain"
	mailrepo "startupmail-backend/internal/mail/repository"
	mailusecase "startupmail-backend/internal/mail/usecase"
	"startupmail-backend/pkg/config"
	"startupmail-backend/pkg/demomail"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&maildomain.EmailAccount{},
		&maildomain.EmailMessage{},
		&maildomain.Draft{},
		&maildomain.Template{},
		&maildomain.Campaign{},
	))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Minute,
		SessionExpiry: 7 * 24 * time.Hour,
	}

	registry := maildomain.NewProviderRegistry()
	registry.Register("gmail", demomail.NewServiceWithoutLatency("gmail.com"))
	registry.Register("outlook", demomail.NewServiceWithoutLatency("outlook.com"))

	authUc := authusecase.NewAuthUsecase(authrepo.NewUserRepository(db), authrepo.NewSessionRepository(db), cfg)
	mailUc := mailusecase.NewMailUsecase(
		registry,
		mailrepo.NewAccountRepository(db),
		mailrepo.NewEmailRepository(db),
		mailrepo.NewDraftRepository(db),
		mailrepo.NewTemplateRepository(db),
		mailrepo.NewCampaignRepository(db),
	)

	r := gin.New()
	SetupRoutes(r, authUc, mailUc, analytics.NewGenerator())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "hunter22",
		"full_name": "Ada Founder",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/emails/inbox", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     "founder@acme.io",
		"password":  "hunter22",
		"full_name": "Ada Founder",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConnectAccountAndListInbox(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodPost, "/api/email-accounts/connect", token, gin.H{
		"provider":  "gmail",
		"auth_code": "mock_auth_code",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var account maildomain.EmailAccount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.True(t, account.IsPrimary)
	assert.Equal(t, "gmail", account.Provider)

	w = doJSON(t, r, http.MethodGet, "/api/emails/inbox", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var inbox struct {
		Emails []*maildomain.EmailMessage `json:"emails"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Emails, 12)

	for _, email := range inbox.Emails {
		assert.Equal(t, account.ID, email.AccountID)
		assert.Equal(t, "gmail", email.Provider)
	}
}

func TestConnectUnknownProviderRejected(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodPost, "/api/email-accounts/connect", token, gin.H{
		"provider":  "yahoo",
		"auth_code": "mock_auth_code",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendAndSentPersistence(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodPost, "/api/email-accounts/connect", token, gin.H{
		"provider":  "gmail",
		"auth_code": "mock_auth_code",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/emails/send", token, gin.H{
		"to":      []string{"vc@fund.com"},
		"subject": "Hello",
		"body":    "Pitch attached",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "email_id")

	w = doJSON(t, r, http.MethodGet, "/api/emails/sent", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sent struct {
		Emails []*maildomain.EmailMessage `json:"emails"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	require.Len(t, sent.Emails, 1)
	assert.Equal(t, "Hello", sent.Emails[0].Subject)
	assert.True(t, sent.Emails[0].IsRead)
}

func TestSendWithoutAccountIs404(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodPost, "/api/emails/send", token, gin.H{
		"to":      []string{"vc@fund.com"},
		"subject": "Hello",
		"body":    "Pitch attached",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPredefinedTemplates(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodGet, "/api/templates/predefined", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []*maildomain.Template `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 3)
}

func TestAnalyticsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "founder@acme.io")

	w := doJSON(t, r, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats analytics.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Len(t, stats.WeeklyActivity, 7)
	assert.GreaterOrEqual(t, stats.OpenRate, 0.0)
	assert.LessOrEqual(t, stats.OpenRate, 1.0)
}
