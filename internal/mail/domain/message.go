package domain

import "time"

const (
	FolderInbox = "inbox"
	FolderSent  = "sent"
)

// EmailMessage is a message as exposed by the API. Sent items are
// persisted and authoritative; inbox items are fetched from the owning
// account's provider on every request and never cached.
type EmailMessage struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index"`
	AccountID    string    `json:"account_id,omitempty" gorm:"index"`
	Provider     string    `json:"provider,omitempty"`
	AccountEmail string    `json:"account_email,omitempty"`
	MessageID    string    `json:"message_id,omitempty"`
	From         string    `json:"from"`
	To           []string  `json:"to" gorm:"serializer:json"`
	Cc           []string  `json:"cc,omitempty" gorm:"serializer:json"`
	Bcc          []string  `json:"bcc,omitempty" gorm:"serializer:json"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	IsHTML       bool      `json:"is_html"`
	Folder       string    `json:"folder"`
	IsRead       bool      `json:"is_read"`
	IsImportant  bool      `json:"is_important"`
	Labels       []string  `json:"labels,omitempty" gorm:"serializer:json"`
	SentAt       time.Time `json:"sent_at,omitempty"`
	ReceivedAt   time.Time `json:"received_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Draft holds partially-filled message fields. Saves overwrite every
// field; absent fields collapse to their zero values.
type Draft struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	To        []string  `json:"to" gorm:"serializer:json"`
	Cc        []string  `json:"cc,omitempty" gorm:"serializer:json"`
	Bcc       []string  `json:"bcc,omitempty" gorm:"serializer:json"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsHTML    bool      `json:"is_html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contact mirrors the source's contacts collection. Migrated for schema
// parity; nothing reads or writes it yet.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
