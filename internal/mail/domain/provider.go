package domain

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// ProviderAuth is the result of exchanging an auth code with a provider.
type ProviderAuth struct {
	Token        *oauth2.Token
	AccountEmail string
}

// ProviderProfile describes the mailbox owner as reported by a provider.
type ProviderProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// ProviderMessage is a message as fetched from a provider. It carries no
// account metadata; the mail service stamps that on before returning it.
type ProviderMessage struct {
	MessageID  string    `json:"message_id"`
	From       string    `json:"from"`
	To         []string  `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	IsHTML     bool      `json:"is_html"`
	IsRead     bool      `json:"is_read"`
	ReceivedAt time.Time `json:"received_at"`
}

// OutgoingMessage is a fully-resolved message handed to a provider's send.
type OutgoingMessage struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// SendResult reports a provider-side send.
type SendResult struct {
	MessageID string    `json:"message_id"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"sent_at"`
}

// MailProvider is the uniform interface over mail backends. The service
// layer treats a real protocol mailbox and a demo mailbox identically;
// which one backs an account is decided by the account's provider tag.
type MailProvider interface {
	Authenticate(ctx context.Context, authCode string) (*ProviderAuth, error)
	ListMessages(ctx context.Context, accessToken, folder string) ([]*ProviderMessage, error)
	SendMessage(ctx context.Context, accessToken string, msg *OutgoingMessage) (*SendResult, error)
	GetProfile(ctx context.Context, accessToken string) (*ProviderProfile, error)
}

// ProviderRegistry maps provider tags to implementations. Registering a
// new backend is a map insert, not a new branch in the service layer.
type ProviderRegistry struct {
	providers map[string]MailProvider
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[string]MailProvider)}
}

func (r *ProviderRegistry) Register(tag string, p MailProvider) {
	r.providers[tag] = p
}

// Lookup returns the provider for tag, or nil when the tag is unknown.
func (r *ProviderRegistry) Lookup(tag string) MailProvider {
	return r.providers[tag]
}

// Tags lists the registered provider tags.
func (r *ProviderRegistry) Tags() []string {
	tags := make([]string, 0, len(r.providers))
	for tag := range r.providers {
		tags = append(tags, tag)
	}
	return tags
}
