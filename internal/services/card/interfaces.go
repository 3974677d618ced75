package card

import (
	"context"

	"marketplace/internal/models"
)

type Service interface {
	Create(ctx context.Context, principal models.Principal, input models.CreateCardInput) (*models.CardDTO, error)
	GetByID(ctx context.Context, principal models.Principal, id uint) (*models.CardDTO, error)
	GetByNumber(ctx context.Context, principal models.Principal, number string) (*models.CardDTO, error)
	List(ctx context.Context, page, size int) (models.Page[models.CardDTO], error)
	Update(ctx context.Context, principal models.Principal, id uint, input models.UpdateCardInput) (*models.CardDTO, error)
	Delete(ctx context.Context, principal models.Principal, id uint) error
}
