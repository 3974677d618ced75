package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store groups the repositories over one database handle. Inside
// Transaction every repository of tx shares the same database transaction.
type Store interface {
	Accounts() AccountRepository
	Cards() CardRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db       *gorm.DB
	accounts AccountRepository
	cards    CardRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		accounts: NewAccountRepository(db),
		cards:    NewCardRepository(db),
	}
}

func (s *gormStore) Accounts() AccountRepository { return s.accounts }

func (s *gormStore) Cards() CardRepository { return s.cards }

// Transaction runs fn in a transaction, committed when fn returns nil.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
