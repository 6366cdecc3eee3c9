package repository

import (
	"errors"
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	// Create persists the account, marking it primary iff it is the
	// user's first. The count and insert run in one transaction so two
	// concurrent connects cannot both become primary.
	Create(account *maildomain.EmailAccount) error
	FindByID(userID, id string) (*maildomain.EmailAccount, error)
	FindByUserID(userID string) ([]*maildomain.EmailAccount, error)
	FindPrimary(userID string) (*maildomain.EmailAccount, error)
	FindByProviderEmail(userID, provider, email string) (*maildomain.EmailAccount, error)
	UpdateTokens(id, accessToken, refreshToken string, expiry time.Time) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *maildomain.EmailAccount) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&maildomain.EmailAccount{}).
			Where("user_id = ?", account.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		account.IsPrimary = count == 0
		return tx.Create(account).Error
	})
}

func (r *accountRepository) FindByID(userID, id string) (*maildomain.EmailAccount, error) {
	var account maildomain.EmailAccount
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUserID(userID string) ([]*maildomain.EmailAccount, error) {
	var accounts []*maildomain.EmailAccount
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) FindPrimary(userID string) (*maildomain.EmailAccount, error) {
	var account maildomain.EmailAccount
	err := r.db.Where("user_id = ? AND is_primary = ?", userID, true).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByProviderEmail(userID, provider, email string) (*maildomain.EmailAccount, error) {
	var account maildomain.EmailAccount
	err := r.db.Where("user_id = ? AND provider = ? AND email = ?", userID, provider, email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UpdateTokens(id, accessToken, refreshToken string, expiry time.Time) error {
	return r.db.Model(&maildomain.EmailAccount{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"token_expiry":  expiry,
		}).Error
}
