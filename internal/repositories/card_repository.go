package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"
)

var (
	ErrCardNotFound = errors.New("card not found")
)

type CardRepository interface {
	// Core operations
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id uint) (*models.Card, error)
	GetByNumber(ctx context.Context, number string) (*models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Card, int64, error)

	// UpdateHolderByAccount rewrites the holder of every card owned by accountID
	UpdateHolderByAccount(ctx context.Context, accountID uint, holder string) error
}
