package repository

import (
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailRepository interface {
	Create(msg *maildomain.EmailMessage) error
	FindByFolder(userID, folder string) ([]*maildomain.EmailMessage, error)
}

type emailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

func (r *emailRepository) Create(msg *maildomain.EmailMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()
	return r.db.Create(msg).Error
}

func (r *emailRepository) FindByFolder(userID, folder string) ([]*maildomain.EmailMessage, error) {
	var messages []*maildomain.EmailMessage
	err := r.db.Where("user_id = ? AND folder = ?", userID, folder).
		Order("sent_at DESC").Find(&messages).Error
	return messages, err
}
