package repository

import (
	"errors"
	"time"

	authdomain "startupmail-backend/internal/auth/domain"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *authdomain.Session) error
	FindByToken(token string) (*authdomain.Session, error)
	DeleteByToken(token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session. Sessions are never deduplicated, so a
// user may hold one per device. Expired rows for the same user are swept
// in the same transaction to keep the store from growing without bound.
func (r *sessionRepository) Create(session *authdomain.Session) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND expires_at < ?", session.UserID, time.Now()).
			Delete(&authdomain.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (r *sessionRepository) FindByToken(token string) (*authdomain.Session, error) {
	var session authdomain.Session
	err := r.db.Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.Session{}).Error
}
