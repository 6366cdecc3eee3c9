// Package demomail implements the mail provider interface against canned
// data. It stands in for a real OAuth provider (Gmail, Outlook) so the
// rest of the system can be exercised without provider credentials.
package demomail

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const inboxSize = 12

var senders = []struct {
	Name  string
	Email string
}{
	{"Sarah Chen", "sarah.chen@venturepartners.com"},
	{"Mike Rodriguez", "mike@techcrunch.com"},
	{"Emily Watson", "emily.watson@seedfund.vc"},
	{"David Kim", "david@startupgrind.com"},
	{"Lisa Park", "lisa.park@innovate.io"},
}

var subjects = []string{
	"Re: Partnership opportunity",
	"Your pitch deck feedback",
	"Intro: potential customer",
	"Following up on our call",
	"Q3 investor update",
	"Demo day invitation",
	"Press inquiry about your launch",
	"Hiring: senior engineer referral",
	"Beta feedback from our team",
}

// Service simulates a hosted mail provider. The inbox is generated once
// at construction and reused for the process lifetime, so repeated list
// calls return a stable set.
type Service struct {
	domain     string
	minLatency time.Duration
	maxLatency time.Duration
	inbox      []*maildomain.ProviderMessage
}

// NewService creates a simulated provider whose addresses live on the
// given domain ("gmail.com", "outlook.com").
func NewService(domain string) *Service {
	return newService(domain, 200*time.Millisecond, 500*time.Millisecond)
}

// NewServiceWithoutLatency skips the artificial network delay. The delay
// only mimics network variance and is not part of the contract.
func NewServiceWithoutLatency(domain string) *Service {
	return newService(domain, 0, 0)
}

func newService(domain string, minLatency, maxLatency time.Duration) *Service {
	return &Service{
		domain:     domain,
		minLatency: minLatency,
		maxLatency: maxLatency,
		inbox:      generateInbox(),
	}
}

func generateInbox() []*maildomain.ProviderMessage {
	messages := make([]*maildomain.ProviderMessage, 0, inboxSize)
	now := time.Now()
	for i := 0; i < inboxSize; i++ {
		sender := senders[rand.Intn(len(senders))]
		subject := subjects[rand.Intn(len(subjects))]
		messages = append(messages, &maildomain.ProviderMessage{
			MessageID:  uuid.New().String(),
			From:       fmt.Sprintf("%s <%s>", sender.Name, sender.Email),
			Subject:    subject,
			Body:       fmt.Sprintf("Hi,\n\n%s\n\nBest,\n%s\n", subject, sender.Name),
			IsRead:     rand.Intn(3) == 0,
			ReceivedAt: now.Add(-time.Duration(rand.Int63n(int64(48 * time.Hour)))),
		})
	}
	return messages
}

func (s *Service) delay(ctx context.Context) error {
	if s.maxLatency == 0 {
		return nil
	}
	jitter := s.minLatency
	if spread := s.maxLatency - s.minLatency; spread > 0 {
		jitter += time.Duration(rand.Int63n(int64(spread)))
	}
	select {
	case <-time.After(jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) Authenticate(ctx context.Context, authCode string) (*maildomain.ProviderAuth, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(authCode) == "" {
		return nil, fmt.Errorf("empty auth code")
	}

	token := &oauth2.Token{
		AccessToken:  "demo-access-" + uuid.New().String(),
		RefreshToken: "demo-refresh-" + uuid.New().String(),
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
	return &maildomain.ProviderAuth{
		Token:        token,
		AccountEmail: fmt.Sprintf("founder%04d@%s", rand.Intn(10000), s.domain),
	}, nil
}

func (s *Service) ListMessages(ctx context.Context, accessToken, folder string) ([]*maildomain.ProviderMessage, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	if folder != "" && folder != maildomain.FolderInbox {
		return nil, nil
	}

	// Return copies so callers can stamp account metadata freely.
	messages := make([]*maildomain.ProviderMessage, len(s.inbox))
	for i, msg := range s.inbox {
		clone := *msg
		messages[i] = &clone
	}
	return messages, nil
}

func (s *Service) SendMessage(ctx context.Context, accessToken string, msg *maildomain.OutgoingMessage) (*maildomain.SendResult, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}

	return &maildomain.SendResult{
		MessageID: uuid.New().String(),
		Status:    "sent",
		SentAt:    time.Now(),
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, accessToken string) (*maildomain.ProviderProfile, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return &maildomain.ProviderProfile{
		Email: fmt.Sprintf("demo@%s", s.domain),
		Name:  "Demo Account",
	}, nil
}
