// Package account manages accounts and serves their cached read views.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
	"marketplace/internal/services/access"
	"marketplace/internal/services/readthrough"
	keys "marketplace/internal/utils/cache"
	"marketplace/internal/utils/pagination"

	"go.uber.org/zap"
)

type service struct {
	store repositories.Store
	cache *readthrough.Cache
	log   *zap.Logger
}

// NewService creates a new account service
func NewService(store repositories.Store, cache *readthrough.Cache, log *zap.Logger) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{store: store, cache: cache, log: log.Named("account_service")}
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Create(ctx context.Context, input models.CreateAccountInput) (*models.AccountDTO, error) {
	account := &models.Account{
		Name:      input.Name,
		Surname:   input.Surname,
		BirthDate: input.BirthDate,
		Email:     NormalizeEmail(input.Email),
	}

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		exists, err := tx.Accounts().ExistsByEmail(ctx, account.Email)
		if err != nil {
			return err
		}
		if exists {
			return emailTaken(account.Email)
		}
		return mapError(tx.Accounts().Create(ctx, account), 0)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("account created", zap.Uint("account_id", account.ID))
	return models.ToAccountDTO(account), nil
}

func (s *service) GetByID(ctx context.Context, principal models.Principal, id uint) (*models.AccountDTO, error) {
	dto, _, err := readthrough.Read(ctx, s.cache, keys.ScopeAccounts, id, principal,
		func(ctx context.Context) (*models.AccountDTO, string, error) {
			account, err := s.store.Accounts().GetByID(ctx, id)
			if err != nil {
				return nil, "", mapError(err, id)
			}
			return models.ToAccountDTO(account), account.Email, nil
		})
	return dto, err
}

func (s *service) GetByEmail(ctx context.Context, principal models.Principal, email string) (*models.AccountDTO, error) {
	email = NormalizeEmail(email)
	dto, _, err := readthrough.Read(ctx, s.cache, keys.ScopeAccounts, email, principal,
		func(ctx context.Context) (*models.AccountDTO, string, error) {
			account, err := s.store.Accounts().GetByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repositories.ErrAccountNotFound) {
					return nil, "", fmt.Errorf("%w: account with email %q", services.ErrNotFound, email)
				}
				return nil, "", err
			}
			return models.ToAccountDTO(account), account.Email, nil
		})
	return dto, err
}

// List is uncached; cards are not embedded in listed accounts.
func (s *service) List(ctx context.Context, page, size int) (models.Page[models.AccountDTO], error) {
	pg := pagination.Normalize(page, size)
	accounts, total, err := s.store.Accounts().List(ctx, pg.Offset, pg.Size)
	if err != nil {
		return models.Page[models.AccountDTO]{}, err
	}
	content := make([]models.AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		content = append(content, *models.ToAccountDTO(a))
	}
	return models.NewPage(content, pg.Page, pg.Size, total), nil
}

func (s *service) Update(ctx context.Context, principal models.Principal, id uint, input models.UpdateAccountInput) (*models.AccountDTO, error) {
	var (
		account  *models.Account
		mutation keys.Mutation
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		account, err = tx.Accounts().GetByID(ctx, id)
		if err != nil {
			return mapError(err, id)
		}
		if err := access.Authorize(s.cache.Gate(), principal, account.Email); err != nil {
			return err
		}

		oldEmail := account.Email
		oldHolder := account.HolderName()
		if err := applyUpdate(ctx, tx, account, input); err != nil {
			return err
		}
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return mapError(err, id)
		}

		if holder := account.HolderName(); holder != oldHolder {
			if err := tx.Cards().UpdateHolderByAccount(ctx, account.ID, holder); err != nil {
				return err
			}
			for i := range account.Cards {
				account.Cards[i].Holder = holder
			}
		}

		mutation = accountMutation(account, oldEmail)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := models.ToAccountDTO(account)
	gen := s.cache.Invalidate(ctx, mutation)
	s.cache.Populate(ctx, gen, keys.ScopeAccounts, account.ID, principal, account.Email, dto)
	return dto, nil
}

func applyUpdate(ctx context.Context, tx repositories.Store, account *models.Account, input models.UpdateAccountInput) error {
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Surname != nil {
		account.Surname = *input.Surname
	}
	if input.BirthDate != nil {
		account.BirthDate = *input.BirthDate
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != account.Email {
			exists, err := tx.Accounts().ExistsByEmail(ctx, email)
			if err != nil {
				return err
			}
			if exists {
				return emailTaken(email)
			}
			account.Email = email
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	var mutation keys.Mutation
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().GetByID(ctx, id)
		if err != nil {
			return mapError(err, id)
		}
		if err := tx.Accounts().Delete(ctx, id); err != nil {
			return mapError(err, id)
		}
		mutation = accountMutation(account, account.Email)
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, mutation)
	s.log.Info("account deleted", zap.Uint("account_id", id), zap.Int("cards", len(mutation.CardIDs)))
	return nil
}

// accountMutation covers both account key families, the previous email, and
// every owned card since card reads authorize against the owner.
func accountMutation(account *models.Account, oldEmail string) keys.Mutation {
	return keys.Mutation{
		Kind:          keys.KindAccount,
		AccountID:     account.ID,
		AccountEmails: []string{oldEmail, account.Email},
		CardIDs:       account.CardIDs(),
		CardNumbers:   account.CardNumbers(),
	}
}

func emailTaken(email string) error {
	return fmt.Errorf("%w: account with email %q", services.ErrAlreadyExists, email)
}

func mapError(err error, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrAccountNotFound):
		return fmt.Errorf("%w: account %d", services.ErrNotFound, id)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %v", services.ErrAlreadyExists, err)
	default:
		return err
	}
}
