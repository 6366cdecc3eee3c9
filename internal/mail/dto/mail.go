package dto

import (
	"time"

	maildomain "startupmail-backend/internal/mail/domain"
)

type ConnectAccountRequest struct {
	Provider string `json:"provider" binding:"required"`
	AuthCode string `json:"auth_code" binding:"required"`
}

type AccountsResponse struct {
	Accounts []*maildomain.EmailAccount `json:"accounts"`
}

type SendEmailRequest struct {
	To         []string `json:"to" binding:"required,min=1,dive,email"`
	Cc         []string `json:"cc" binding:"omitempty,dive,email"`
	Bcc        []string `json:"bcc" binding:"omitempty,dive,email"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	IsHTML     bool     `json:"is_html"`
	TemplateID string   `json:"template_id"`
}

type SendEmailResponse struct {
	Message string `json:"message"`
	EmailID string `json:"email_id"`
}

type InboxResponse struct {
	Emails []*maildomain.EmailMessage `json:"emails"`
}

type DraftRequest struct {
	To      []string `json:"to" binding:"omitempty,dive,email"`
	Cc      []string `json:"cc" binding:"omitempty,dive,email"`
	Bcc     []string `json:"bcc" binding:"omitempty,dive,email"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"is_html"`
}

type DraftsResponse struct {
	Drafts []*maildomain.Draft `json:"drafts"`
}

type TemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type TemplatesResponse struct {
	Templates []*maildomain.Template `json:"templates"`
}

type CampaignRequest struct {
	Name        string    `json:"name" binding:"required"`
	TemplateID  string    `json:"template_id"`
	Recipients  []string  `json:"recipients" binding:"required,min=1,dive,email"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type CampaignsResponse struct {
	Campaigns []*maildomain.Campaign `json:"campaigns"`
}
