package repository

import (
	"errors"
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *maildomain.Template) error
	FindByID(userID, id string) (*maildomain.Template, error)
	FindByUserID(userID string) ([]*maildomain.Template, error)
	Update(template *maildomain.Template) error
	Delete(userID, id string) (bool, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *maildomain.Template) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	return r.db.Create(template).Error
}

func (r *templateRepository) FindByID(userID, id string) (*maildomain.Template, error) {
	var template maildomain.Template
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindByUserID(userID string) ([]*maildomain.Template, error) {
	var templates []*maildomain.Template
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Update(template *maildomain.Template) error {
	template.UpdatedAt = time.Now()
	return r.db.Save(template).Error
}

func (r *templateRepository) Delete(userID, id string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&maildomain.Template{})
	return result.RowsAffected > 0, result.Error
}
