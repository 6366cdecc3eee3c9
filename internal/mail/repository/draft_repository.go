package repository

import (
	"errors"
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(draft *maildomain.Draft) error
	FindByID(userID, id string) (*maildomain.Draft, error)
	FindByUserID(userID string) ([]*maildomain.Draft, error)
	Update(draft *maildomain.Draft) error
	Delete(userID, id string) (bool, error)
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(draft *maildomain.Draft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()
	return r.db.Create(draft).Error
}

func (r *draftRepository) FindByID(userID, id string) (*maildomain.Draft, error) {
	var draft maildomain.Draft
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) FindByUserID(userID string) ([]*maildomain.Draft, error) {
	var drafts []*maildomain.Draft
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&drafts).Error
	return drafts, err
}

func (r *draftRepository) Update(draft *maildomain.Draft) error {
	draft.UpdatedAt = time.Now()
	return r.db.Save(draft).Error
}

// Delete removes the draft and reports whether a row was actually
// deleted, so callers can distinguish "gone" from "not yours".
func (r *draftRepository) Delete(userID, id string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&maildomain.Draft{})
	return result.RowsAffected > 0, result.Error
}
