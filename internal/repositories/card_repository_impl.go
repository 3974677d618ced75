package repositories

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(card).Error; err != nil {
		return translateError("failed to create card", err)
	}
	return nil
}

// GetByID loads the card with its owning account, which authorization needs.
func (r *cardRepository) GetByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).Preload("Account").First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) GetByNumber(ctx context.Context, number string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Account").Where("number = ?", number).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card by number: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Card{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check card number: %w", err)
	}
	return count > 0, nil
}

func (r *cardRepository) List(ctx context.Context, offset, limit int) ([]*models.Card, int64, error) {
	var (
		cards []*models.Card
		total int64
	)
	db := r.db.WithContext(ctx).Model(&models.Card{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}
	if err := db.Order("id").Offset(offset).Limit(limit).Find(&cards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error; err != nil {
		return translateError("failed to update card", err)
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Card{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) UpdateHolderByAccount(ctx context.Context, accountID uint, holder string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("account_id = ?", accountID).
		Update("holder", holder).Error
	if err != nil {
		return fmt.Errorf("failed to update card holders: %w", err)
	}
	return nil
}
