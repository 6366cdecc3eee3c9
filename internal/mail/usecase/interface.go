package usecase

import (
	"context"

	maildomain "startupmail-backend/internal/mail/domain"
	maildto "startupmail-backend/internal/mail/dto"
)

// MailUsecase orchestrates provider calls and persistence for a user's
// connected accounts.
type MailUsecase interface {
	ConnectAccount(ctx context.Context, userID, provider, authCode string) (*maildomain.EmailAccount, error)
	ListAccounts(userID string) ([]*maildomain.EmailAccount, error)

	SendEmail(ctx context.Context, userID, accountID string, req *maildto.SendEmailRequest) (*maildomain.EmailMessage, error)
	Inbox(ctx context.Context, userID, accountID string) ([]*maildomain.EmailMessage, error)

	// SentEmails lists locally persisted sent messages. Unlike Inbox it
	// never calls a provider.
	SentEmails(userID string) ([]*maildomain.EmailMessage, error)

	SaveDraft(userID, draftID string, req *maildto.DraftRequest) (*maildomain.Draft, error)
	ListDrafts(userID string) ([]*maildomain.Draft, error)
	DeleteDraft(userID, draftID string) error

	CreateTemplate(userID string, req *maildto.TemplateRequest) (*maildomain.Template, error)
	ListTemplates(userID string) ([]*maildomain.Template, error)
	UpdateTemplate(userID, templateID string, req *maildto.TemplateRequest) (*maildomain.Template, error)
	DeleteTemplate(userID, templateID string) error
	PredefinedTemplates() []*maildomain.Template

	CreateCampaign(userID string, req *maildto.CampaignRequest) (*maildomain.Campaign, error)
	ListCampaigns(userID string) ([]*maildomain.Campaign, error)
}
