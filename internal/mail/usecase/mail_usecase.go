package usecase

import (
	"context"
	"sort"

	maildomain "startupmail-backend/internal/mail/domain"
	maildto "startupmail-backend/internal/mail/dto"
	"startupmail-backend/internal/mail/repository"
	"startupmail-backend/pkg/apperror"
)

// mailUsecase implements MailUsecase
type mailUsecase struct {
	registry     *maildomain.ProviderRegistry
	accountRepo  repository.AccountRepository
	emailRepo    repository.EmailRepository
	draftRepo    repository.DraftRepository
	templateRepo repository.TemplateRepository
	campaignRepo repository.CampaignRepository
}

func NewMailUsecase(
	registry *maildomain.ProviderRegistry,
	accountRepo repository.AccountRepository,
	emailRepo repository.EmailRepository,
	draftRepo repository.DraftRepository,
	templateRepo repository.TemplateRepository,
	campaignRepo repository.CampaignRepository,
) MailUsecase {
	return &mailUsecase{
		registry:     registry,
		accountRepo:  accountRepo,
		emailRepo:    emailRepo,
		draftRepo:    draftRepo,
		templateRepo: templateRepo,
		campaignRepo: campaignRepo,
	}
}

func (u *mailUsecase) ConnectAccount(ctx context.Context, userID, providerTag, authCode string) (*maildomain.EmailAccount, error) {
	provider := u.registry.Lookup(providerTag)
	if provider == nil {
		return nil, apperror.New(apperror.InvalidInput, "invalid provider")
	}

	auth, err := provider.Authenticate(ctx, authCode)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "provider authentication failed", err)
	}

	email := auth.AccountEmail
	if email == "" {
		profile, err := provider.GetProfile(ctx, auth.Token.AccessToken)
		if err != nil {
			return nil, apperror.Wrap(apperror.Upstream, "provider profile fetch failed", err)
		}
		email = profile.Email
	}

	// Reconnecting an already linked mailbox refreshes its tokens
	// instead of creating a second account row.
	existing, err := u.accountRepo.FindByProviderEmail(userID, providerTag, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := u.accountRepo.UpdateTokens(existing.ID, auth.Token.AccessToken, auth.Token.RefreshToken, auth.Token.Expiry); err != nil {
			return nil, err
		}
		existing.AccessToken = auth.Token.AccessToken
		existing.RefreshToken = auth.Token.RefreshToken
		existing.TokenExpiry = auth.Token.Expiry
		return existing, nil
	}

	account := &maildomain.EmailAccount{
		UserID:       userID,
		Provider:     providerTag,
		Email:        email,
		AccessToken:  auth.Token.AccessToken,
		RefreshToken: auth.Token.RefreshToken,
		TokenExpiry:  auth.Token.Expiry,
	}
	if err := u.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (u *mailUsecase) ListAccounts(userID string) ([]*maildomain.EmailAccount, error) {
	return u.accountRepo.FindByUserID(userID)
}

// resolveAccount picks the explicit account when an id is given, else the
// caller's primary account.
func (u *mailUsecase) resolveAccount(userID, accountID string) (*maildomain.EmailAccount, error) {
	var account *maildomain.EmailAccount
	var err error
	if accountID != "" {
		account, err = u.accountRepo.FindByID(userID, accountID)
	} else {
		account, err = u.accountRepo.FindPrimary(userID)
	}
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.New(apperror.NotFound, "account not found")
	}
	return account, nil
}

// resolveTemplate returns the subject/body from the referenced template.
// A template id that resolves to nothing is not an error: the request's
// own subject and body are used instead.
func (u *mailUsecase) resolveTemplate(userID, templateID, subject, body string) (string, string, error) {
	if templateID == "" {
		return subject, body, nil
	}

	template, err := u.templateRepo.FindByID(userID, templateID)
	if err != nil {
		return "", "", err
	}
	if template == nil {
		for _, predefined := range maildomain.PredefinedTemplates() {
			if predefined.ID == templateID {
				template = predefined
				break
			}
		}
	}
	if template == nil {
		return subject, body, nil
	}
	return template.Subject, template.Body, nil
}

func (u *mailUsecase) SendEmail(ctx context.Context, userID, accountID string, req *maildto.SendEmailRequest) (*maildomain.EmailMessage, error) {
	account, err := u.resolveAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	provider := u.registry.Lookup(account.Provider)
	if provider == nil {
		return nil, apperror.New(apperror.InvalidInput, "invalid provider")
	}

	subject, body, err := u.resolveTemplate(userID, req.TemplateID, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}

	outgoing := &maildomain.OutgoingMessage{
		From:    account.Email,
		To:      req.To,
		Cc:      req.Cc,
		Bcc:     req.Bcc,
		Subject: subject,
		Body:    body,
		IsHTML:  req.IsHTML,
	}
	result, err := provider.SendMessage(ctx, account.AccessToken, outgoing)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to send email", err)
	}

	message := &maildomain.EmailMessage{
		UserID:       userID,
		AccountID:    account.ID,
		Provider:     account.Provider,
		AccountEmail: account.Email,
		MessageID:    result.MessageID,
		From:         account.Email,
		To:           req.To,
		Cc:           req.Cc,
		Bcc:          req.Bcc,
		Subject:      subject,
		Body:         body,
		IsHTML:       req.IsHTML,
		Folder:       maildomain.FolderSent,
		IsRead:       true,
		SentAt:       result.SentAt,
		ReceivedAt:   result.SentAt,
	}
	if err := u.emailRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (u *mailUsecase) Inbox(ctx context.Context, userID, accountID string) ([]*maildomain.EmailMessage, error) {
	if accountID != "" {
		account, err := u.resolveAccount(userID, accountID)
		if err != nil {
			return nil, err
		}
		return u.fetchAccountInbox(ctx, userID, account)
	}

	accounts, err := u.accountRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	// Sequential fan-out: each provider call is independent and
	// read-only, and the merge below re-establishes order.
	var merged []*maildomain.EmailMessage
	for _, account := range accounts {
		messages, err := u.fetchAccountInbox(ctx, userID, account)
		if err != nil {
			return nil, err
		}
		merged = append(merged, messages...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ReceivedAt.After(merged[j].ReceivedAt)
	})
	return merged, nil
}

func (u *mailUsecase) fetchAccountInbox(ctx context.Context, userID string, account *maildomain.EmailAccount) ([]*maildomain.EmailMessage, error) {
	provider := u.registry.Lookup(account.Provider)
	if provider == nil {
		return nil, apperror.New(apperror.InvalidInput, "invalid provider")
	}

	fetched, err := provider.ListMessages(ctx, account.AccessToken, maildomain.FolderInbox)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to fetch emails", err)
	}

	messages := make([]*maildomain.EmailMessage, 0, len(fetched))
	for _, msg := range fetched {
		messages = append(messages, &maildomain.EmailMessage{
			ID:           msg.MessageID,
			UserID:       userID,
			AccountID:    account.ID,
			Provider:     account.Provider,
			AccountEmail: account.Email,
			MessageID:    msg.MessageID,
			From:         msg.From,
			To:           msg.To,
			Subject:      msg.Subject,
			Body:         msg.Body,
			IsHTML:       msg.IsHTML,
			Folder:       maildomain.FolderInbox,
			IsRead:       msg.IsRead,
			ReceivedAt:   msg.ReceivedAt,
		})
	}
	return messages, nil
}

func (u *mailUsecase) SentEmails(userID string) ([]*maildomain.EmailMessage, error) {
	return u.emailRepo.FindByFolder(userID, maildomain.FolderSent)
}

func (u *mailUsecase) SaveDraft(userID, draftID string, req *maildto.DraftRequest) (*maildomain.Draft, error) {
	if draftID != "" {
		draft, err := u.draftRepo.FindByID(userID, draftID)
		if err != nil {
			return nil, err
		}
		if draft == nil {
			return nil, apperror.New(apperror.NotFound, "draft not found")
		}

		// Full overwrite; absent fields collapse to their defaults.
		draft.To = req.To
		draft.Cc = req.Cc
		draft.Bcc = req.Bcc
		draft.Subject = req.Subject
		draft.Body = req.Body
		draft.IsHTML = req.IsHTML
		if err := u.draftRepo.Update(draft); err != nil {
			return nil, err
		}
		return draft, nil
	}

	draft := &maildomain.Draft{
		UserID:  userID,
		To:      req.To,
		Cc:      req.Cc,
		Bcc:     req.Bcc,
		Subject: req.Subject,
		Body:    req.Body,
		IsHTML:  req.IsHTML,
	}
	if err := u.draftRepo.Create(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (u *mailUsecase) ListDrafts(userID string) ([]*maildomain.Draft, error) {
	return u.draftRepo.FindByUserID(userID)
}

func (u *mailUsecase) DeleteDraft(userID, draftID string) error {
	deleted, err := u.draftRepo.Delete(userID, draftID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.New(apperror.NotFound, "draft not found")
	}
	return nil
}

func (u *mailUsecase) CreateTemplate(userID string, req *maildto.TemplateRequest) (*maildomain.Template, error) {
	template := &maildomain.Template{
		UserID:  userID,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := u.templateRepo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (u *mailUsecase) ListTemplates(userID string) ([]*maildomain.Template, error) {
	return u.templateRepo.FindByUserID(userID)
}

func (u *mailUsecase) UpdateTemplate(userID, templateID string, req *maildto.TemplateRequest) (*maildomain.Template, error) {
	template, err := u.templateRepo.FindByID(userID, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.New(apperror.NotFound, "template not found")
	}

	template.Name = req.Name
	template.Subject = req.Subject
	template.Body = req.Body
	if err := u.templateRepo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (u *mailUsecase) DeleteTemplate(userID, templateID string) error {
	deleted, err := u.templateRepo.Delete(userID, templateID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.New(apperror.NotFound, "template not found")
	}
	return nil
}

func (u *mailUsecase) PredefinedTemplates() []*maildomain.Template {
	return maildomain.PredefinedTemplates()
}

func (u *mailUsecase) CreateCampaign(userID string, req *maildto.CampaignRequest) (*maildomain.Campaign, error) {
	campaign := &maildomain.Campaign{
		UserID:      userID,
		Name:        req.Name,
		TemplateID:  req.TemplateID,
		Recipients:  req.Recipients,
		ScheduledAt: req.ScheduledAt,
		Status:      maildomain.CampaignStatusScheduled,
	}
	if err := u.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (u *mailUsecase) ListCampaigns(userID string) ([]*maildomain.Campaign, error) {
	return u.campaignRepo.FindByUserID(userID)
}
