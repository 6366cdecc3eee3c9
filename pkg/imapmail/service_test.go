package imapmail

import (
	"strings"
	"testing"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCredentials(t *testing.T) {
	user, pass, err := splitCredentials("founder@acme.io:s3cret")
	require.NoError(t, err)
	assert.Equal(t, "founder@acme.io", user)
	assert.Equal(t, "s3cret", pass)

	_, _, err = splitCredentials("no-separator")
	assert.Error(t, err)
	_, _, err = splitCredentials(":missing-user")
	assert.Error(t, err)
	_, _, err = splitCredentials("missing-pass:")
	assert.Error(t, err)
}

func TestBuildMessagePlainText(t *testing.T) {
	raw, messageID, err := buildMessage(&maildomain.OutgoingMessage{
		From:    "founder@acme.io",
		To:      []string{"vc@fund.com"},
		Cc:      []string{"cofounder@acme.io"},
		Subject: "Quarterly update",
		Body:    "Numbers are up.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, messageID)

	msg := string(raw)
	assert.Contains(t, msg, "From: <founder@acme.io>")
	assert.Contains(t, msg, "To: <vc@fund.com>")
	assert.Contains(t, msg, "Cc: <cofounder@acme.io>")
	assert.Contains(t, msg, "Subject: Quarterly update")
	assert.Contains(t, msg, "Numbers are up.")
	assert.Contains(t, msg, "text/plain")
}

func TestBuildMessageHTML(t *testing.T) {
	raw, _, err := buildMessage(&maildomain.OutgoingMessage{
		From:    "founder@acme.io",
		To:      []string{"vc@fund.com"},
		Subject: "Launch",
		Body:    "<h1>We launched</h1>",
		IsHTML:  true,
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "text/html")
}

func TestGetProfileDerivesName(t *testing.T) {
	svc := NewService("smtp.example.com", 587, true, "imap.example.com", 993, true)

	profile, err := svc.GetProfile(t.Context(), "founder@acme.io:s3cret")
	require.NoError(t, err)
	assert.Equal(t, "founder@acme.io", profile.Email)
	assert.Equal(t, "founder", profile.Name)
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	raw, _, err := buildMessage(&maildomain.OutgoingMessage{
		From:    "a@x.com",
		To:      []string{"b@y.com"},
		Subject: "s",
		Body:    "plain body",
	})
	require.NoError(t, err)

	body, isHTML := extractBody(strings.NewReader(string(raw)))
	assert.False(t, isHTML)
	assert.Contains(t, body, "plain body")
}
