// Package card manages payment cards. Every card operation is authorized
// against the owning account, and every card mutation also invalidates the
// owner's cached account views, which embed the card.
package card

import (
	"context"
	"errors"
	"fmt"

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
	return &service{store: store, cache: cache, log: log.Named("card_service")}
}

func (s *service) Create(ctx context.Context, principal models.Principal, input models.CreateCardInput) (*models.CardDTO, error) {
	var (
		card     *models.Card
		mutation keys.Mutation
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		owner, err := tx.Accounts().GetByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return fmt.Errorf("%w: account %d", services.ErrNotFound, input.AccountID)
			}
			return err
		}
		if err := access.Authorize(s.cache.Gate(), principal, owner.Email); err != nil {
			return err
		}
		if err := ensureNumberFree(ctx, tx, input.Number); err != nil {
			return err
		}

		card = &models.Card{
			Number:         input.Number,
			Holder:         owner.HolderName(),
			ExpirationDate: input.ExpirationDate,
			AccountID:      owner.ID,
		}
		if err := tx.Cards().Create(ctx, card); err != nil {
			return mapError(err, 0)
		}
		mutation = cardMutation(card, owner.Email, card.Number)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, mutation)
	s.log.Info("card created", zap.Uint("card_id", card.ID), zap.Uint("account_id", card.AccountID))
	return models.ToCardDTO(card), nil
}

func (s *service) GetByID(ctx context.Context, principal models.Principal, id uint) (*models.CardDTO, error) {
	dto, _, err := readthrough.Read(ctx, s.cache, keys.ScopeCards, id, principal,
		func(ctx context.Context) (*models.CardDTO, string, error) {
			card, err := s.store.Cards().GetByID(ctx, id)
			if err != nil {
				return nil, "", mapError(err, id)
			}
			owner, err := ownerEmail(ctx, s.store, card)
			if err != nil {
				return nil, "", err
			}
			return models.ToCardDTO(card), owner, nil
		})
	return dto, err
}

func (s *service) GetByNumber(ctx context.Context, principal models.Principal, number string) (*models.CardDTO, error) {
	dto, _, err := readthrough.Read(ctx, s.cache, keys.ScopeCards, number, principal,
		func(ctx context.Context) (*models.CardDTO, string, error) {
			card, err := s.store.Cards().GetByNumber(ctx, number)
			if err != nil {
				if errors.Is(err, repositories.ErrCardNotFound) {
					return nil, "", fmt.Errorf("%w: card with number %q", services.ErrNotFound, number)
				}
				return nil, "", err
			}
			owner, err := ownerEmail(ctx, s.store, card)
			if err != nil {
				return nil, "", err
			}
			return models.ToCardDTO(card), owner, nil
		})
	return dto, err
}

func (s *service) List(ctx context.Context, page, size int) (models.Page[models.CardDTO], error) {
	pg := pagination.Normalize(page, size)
	cards, total, err := s.store.Cards().List(ctx, pg.Offset, pg.Size)
	if err != nil {
		return models.Page[models.CardDTO]{}, err
	}
	content := make([]models.CardDTO, 0, len(cards))
	for _, c := range cards {
		content = append(content, *models.ToCardDTO(c))
	}
	return models.NewPage(content, pg.Page, pg.Size, total), nil
}

func (s *service) Update(ctx context.Context, principal models.Principal, id uint, input models.UpdateCardInput) (*models.CardDTO, error) {
	var (
		card     *models.Card
		owner    string
		mutation keys.Mutation
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		if card, err = tx.Cards().GetByID(ctx, id); err != nil {
			return mapError(err, id)
		}
		if owner, err = ownerEmail(ctx, tx, card); err != nil {
			return err
		}
		if err := access.Authorize(s.cache.Gate(), principal, owner); err != nil {
			return err
		}

		oldNumber := card.Number
		if input.Number != nil && *input.Number != card.Number {
			if err := ensureNumberFree(ctx, tx, *input.Number); err != nil {
				return err
			}
			card.Number = *input.Number
		}
		if input.ExpirationDate != nil {
			card.ExpirationDate = *input.ExpirationDate
		}
		if err := tx.Cards().Update(ctx, card); err != nil {
			return mapError(err, id)
		}
		mutation = cardMutation(card, owner, oldNumber)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := models.ToCardDTO(card)
	gen := s.cache.Invalidate(ctx, mutation)
	s.cache.Populate(ctx, gen, keys.ScopeCards, card.ID, principal, owner, dto)
	return dto, nil
}

func (s *service) Delete(ctx context.Context, principal models.Principal, id uint) error {
	var mutation keys.Mutation
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		card, err := tx.Cards().GetByID(ctx, id)
		if err != nil {
			return mapError(err, id)
		}
		owner, err := ownerEmail(ctx, tx, card)
		if err != nil {
			return err
		}
		if err := access.Authorize(s.cache.Gate(), principal, owner); err != nil {
			return err
		}
		if err := tx.Cards().Delete(ctx, id); err != nil {
			return mapError(err, id)
		}
		mutation = cardMutation(card, owner, card.Number)
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, mutation)
	s.log.Info("card deleted", zap.Uint("card_id", id))
	return nil
}

// ownerEmail returns the email of the card's account, loading the account
// when it was not preloaded with the card.
func ownerEmail(ctx context.Context, store repositories.Store, card *models.Card) (string, error) {
	if card.Account != nil {
		return card.Account.Email, nil
	}
	account, err := store.Accounts().GetByID(ctx, card.AccountID)
	if err != nil {
		return "", fmt.Errorf("failed to load owner of card %d: %w", card.ID, err)
	}
	return account.Email, nil
}

func ensureNumberFree(ctx context.Context, tx repositories.Store, number string) error {
	exists, err := tx.Cards().ExistsByNumber(ctx, number)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: card with number %q", services.ErrAlreadyExists, number)
	}
	return nil
}

func cardMutation(card *models.Card, ownerEmail, oldNumber string) keys.Mutation {
	return keys.Mutation{
		Kind:          keys.KindCard,
		AccountID:     card.AccountID,
		AccountEmails: []string{ownerEmail},
		CardIDs:       []uint{card.ID},
		CardNumbers:   []string{oldNumber, card.Number},
	}
}

func mapError(err error, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrCardNotFound):
		return fmt.Errorf("%w: card %d", services.ErrNotFound, id)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %v", services.ErrAlreadyExists, err)
	default:
		return err
	}
}
