package repositories

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func orderedCards(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(account).Error; err != nil {
		return translateError("failed to create account", err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Cards", orderedCards).
		First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Cards", orderedCards).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *accountRepository) List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error) {
	var (
		accounts []*models.Account
		total    int64
	)
	db := r.db.WithContext(ctx).Model(&models.Account{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	if err := db.Order("id").Offset(offset).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, total, nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(account)
	if result.Error != nil {
		return translateError("failed to update account", result.Error)
	}
	return nil
}

// Delete removes the account's cards explicitly so the cascade does not
// depend on the driver enforcing foreign keys.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("failed to delete account cards: %w", err)
		}
		result := tx.Delete(&models.Account{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete account: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}

func translateError(msg string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
