package repository

import (
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(campaign *maildomain.Campaign) error
	FindByUserID(userID string) ([]*maildomain.Campaign, error)
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(campaign *maildomain.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	campaign.CreatedAt = time.Now()
	return r.db.Create(campaign).Error
}

func (r *campaignRepository) FindByUserID(userID string) ([]*maildomain.Campaign, error) {
	var campaigns []*maildomain.Campaign
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}
