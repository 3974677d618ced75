package account

import (
	"context"

	"marketplace/internal/models"
)

type Service interface {
	Create(ctx context.Context, input models.CreateAccountInput) (*models.AccountDTO, error)
	GetByID(ctx context.Context, principal models.Principal, id uint) (*models.AccountDTO, error)
	GetByEmail(ctx context.Context, principal models.Principal, email string) (*models.AccountDTO, error)
	List(ctx context.Context, page, size int) (models.Page[models.AccountDTO], error)
	Update(ctx context.Context, principal models.Principal, id uint, input models.UpdateAccountInput) (*models.AccountDTO, error)
	Delete(ctx context.Context, id uint) error
}
