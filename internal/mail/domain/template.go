package domain

import "time"

// Template is a reusable subject/body pair. User-owned templates live in
// the database; the predefined startup templates are process constants.
type Template struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id,omitempty" gorm:"index"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const CampaignStatusScheduled = "scheduled"

// Campaign stores a bulk-send request. Creation records a "scheduled"
// status and zero counters; no execution path transitions either.
type Campaign struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index"`
	Name        string    `json:"name"`
	TemplateID  string    `json:"template_id,omitempty"`
	Recipients  []string  `json:"recipients" gorm:"serializer:json"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	SentCount   int       `json:"sent_count"`
	FailedCount int       `json:"failed_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// PredefinedTemplates are the built-in startup templates offered to every
// user. They are not persisted and carry fixed ids.
func PredefinedTemplates() []*Template {
	return []*Template{
		{
			ID:      "predefined-investor-update",
			Name:    "Investor Update",
			Subject: "Monthly Investor Update - {{month}}",
			Body:    "Hi {{name}},\n\nHere's what we've been up to this month:\n\n- Key metrics\n- Product updates\n- Asks\n\nThanks for your continued support!\n",
		},
		{
			ID:      "predefined-product-launch",
			Name:    "Product Launch",
			Subject: "We just launched {{product}}!",
			Body:    "Hi {{name}},\n\nBig news - {{product}} is live! We'd love for you to try it and tell us what you think.\n\nCheers,\nThe Team\n",
		},
		{
			ID:      "predefined-welcome",
			Name:    "Welcome Email",
			Subject: "Welcome aboard!",
			Body:    "Hi {{name}},\n\nThanks for signing up. Here are a few tips to get started:\n\n1. Connect your mailbox\n2. Import your contacts\n3. Send your first campaign\n\nWe're glad you're here.\n",
		},
	}
}
