package card_test

import (
	"context"
	"math"
	"testing"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/repositories/cache"
	"marketplace/internal/services"
	"marketplace/internal/services/access"
	"marketplace/internal/services/account"
	"marketplace/internal/services/card"
	"marketplace/internal/services/readthrough"
	"marketplace/internal/testutil"
	"marketplace/internal/utils/pagination"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = models.Principal{ID: "root@x.com", Capability: models.CapabilityElevated}
	owner    = models.Principal{ID: "a@x.com"}
	stranger = models.Principal{ID: "b@x.com"}
)

type harness struct {
	mr       *miniredis.Miniredis
	accounts account.Service
	cards    card.Service
	account  *models.AccountDTO
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t))
	redisStore, mr := testutil.NewRedis(t)
	rt := readthrough.New(cache.New(redisStore, nil, nil), access.OwnershipGate{})
	h := &harness{
		mr:       mr,
		accounts: account.NewService(store, rt, nil),
		cards:    card.NewService(store, rt, nil),
	}

	var err error
	h.account, err = h.accounts.Create(context.Background(), models.CreateAccountInput{
		Name:      "Jane",
		Surname:   "Doe",
		BirthDate: models.NewDate(1990, 5, 17),
		Email:     "a@x.com",
	})
	require.NoError(t, err)
	return h
}

func (h *harness) create(t *testing.T, number string) *models.CardDTO {
	t.Helper()
	dto, err := h.cards.Create(context.Background(), owner, cardInput(h.account.ID, number))
	require.NoError(t, err)
	return dto
}

func cardInput(accountID uint, number string) models.CreateCardInput {
	return models.CreateCardInput{
		Number:         number,
		ExpirationDate: models.NewDate(2099, 12, 31),
		AccountID:      accountID,
	}
}

func ptr[T any](v T) *T { return &v }

func TestCardService_Create(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	tests := []struct {
		name      string
		principal models.Principal
		input     models.CreateCardInput
		wantErr   error
	}{
		{"owner creates card", owner, cardInput(h.account.ID, "4111111111111111"), nil},
		{"admin creates card", admin, cardInput(h.account.ID, "5500000000000004"), nil},
		{"unknown account", admin, cardInput(999, "4000000000000002"), services.ErrNotFound},
		{"stranger forbidden", stranger, cardInput(h.account.ID, "4000000000000002"), services.ErrForbidden},
		{"duplicate number", owner, cardInput(h.account.ID, "4111111111111111"), services.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto, err := h.cards.Create(ctx, tt.principal, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dto)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe", dto.Holder)
			assert.Equal(t, h.account.ID, dto.AccountID)
		})
	}
}

func TestCardService_CreateEvictsOwnerViews(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	byID, err := h.accounts.GetByID(ctx, owner, h.account.ID)
	require.NoError(t, err)
	require.Empty(t, byID.Cards)
	byEmail, err := h.accounts.GetByEmail(ctx, admin, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, byEmail.Cards)

	created := h.create(t, "4111111111111111")

	byID, err = h.accounts.GetByID(ctx, owner, h.account.ID)
	require.NoError(t, err)
	require.Len(t, byID.Cards, 1)
	assert.Equal(t, created.ID, byID.Cards[0].ID)

	byEmail, err = h.accounts.GetByEmail(ctx, admin, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, byEmail.Cards, 1)
}

func TestCardService_ReadAuthorization(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	created := h.create(t, "4111111111111111")

	got, err := h.cards.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", got.Number)

	_, err = h.cards.GetByID(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = h.cards.GetByNumber(ctx, stranger, "4111111111111111")
	assert.ErrorIs(t, err, services.ErrForbidden)

	got, err = h.cards.GetByNumber(ctx, admin, "4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = h.cards.GetByID(ctx, admin, 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = h.cards.GetByNumber(ctx, admin, "0000000000000")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCardService_UpdateNumber(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	created := h.create(t, "4111111111111111")
	h.create(t, "5500000000000004")

	_, err := h.cards.GetByNumber(ctx, owner, "4111111111111111")
	require.NoError(t, err)
	_, err = h.accounts.GetByID(ctx, owner, h.account.ID)
	require.NoError(t, err)

	_, err = h.cards.Update(ctx, owner, created.ID, models.UpdateCardInput{Number: ptr("5500000000000004")})
	assert.ErrorIs(t, err, services.ErrAlreadyExists)
	_, err = h.cards.Update(ctx, stranger, created.ID, models.UpdateCardInput{Number: ptr("4000000000000002")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := h.cards.Update(ctx, owner, created.ID, models.UpdateCardInput{
		Number:         ptr("4000000000000002"),
		ExpirationDate: ptr(models.NewDate(2098, 6, 30)),
	})
	require.NoError(t, err)
	assert.Equal(t, "4000000000000002", updated.Number)
	assert.Equal(t, "2098-06-30", updated.ExpirationDate.String())

	_, err = h.cards.GetByNumber(ctx, owner, "4111111111111111")
	assert.ErrorIs(t, err, services.ErrNotFound)

	view, err := h.accounts.GetByID(ctx, owner, h.account.ID)
	require.NoError(t, err)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "4000000000000002", view.Cards[0].Number)

	got, err := h.cards.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "4000000000000002", got.Number)
}

func TestCardService_Delete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	created := h.create(t, "4111111111111111")

	_, err := h.cards.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	view, err := h.accounts.GetByEmail(ctx, owner, "a@x.com")
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)

	assert.ErrorIs(t, h.cards.Delete(ctx, stranger, created.ID), services.ErrForbidden)
	require.NoError(t, h.cards.Delete(ctx, owner, created.ID))

	_, err = h.cards.GetByID(ctx, owner, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	view, err = h.accounts.GetByEmail(ctx, owner, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, view.Cards)

	assert.ErrorIs(t, h.cards.Delete(ctx, owner, created.ID), services.ErrNotFound)
}

func TestCardService_List(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.create(t, "4111111111111111")
	h.create(t, "5500000000000004")
	h.create(t, "4000000000000002")

	page, err := h.cards.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 2)

	page, err = h.cards.List(ctx, math.MaxInt, 2)
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxPage, page.Page)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestCardService_FailOpenWhenCacheDown(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	created := h.create(t, "4111111111111111")
	h.mr.Close()

	got, err := h.cards.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)

	_, err = h.cards.Update(ctx, owner, created.ID, models.UpdateCardInput{Number: ptr("4000000000000002")})
	require.NoError(t, err)
	require.NoError(t, h.cards.Delete(ctx, owner, created.ID))
}
