package repositories

import (
	"context"
	"errors"

	"marketplace/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateKey reports a unique constraint violation (email or card number).
	ErrDuplicateKey = errors.New("duplicate key")
)

// AccountRepository defines the persistence operations on accounts
type AccountRepository interface {
	// Create inserts a new account and fills in its ID
	Create(ctx context.Context, account *models.Account) error

	// GetByID retrieves an account with its cards
	GetByID(ctx context.Context, id uint) (*models.Account, error)

	// GetByEmail retrieves an account with its cards by email address
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// ExistsByEmail reports whether any account uses email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves accounts ordered by ID, cards not loaded
	List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error)

	Update(ctx context.Context, account *models.Account) error

	// Delete removes an account together with its cards
	Delete(ctx context.Context, id uint) error
}
