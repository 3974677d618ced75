// Command seed creates a demo account with one card. Running it again is a no-op.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"marketplace/internal/config"
	applog "marketplace/internal/logger"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/repositories/cache"
	"marketplace/internal/services"
	"marketplace/internal/services/access"
	"marketplace/internal/services/account"
	"marketplace/internal/services/card"
	"marketplace/internal/services/readthrough"
	"marketplace/internal/utils/validation"

	"go.uber.org/zap"
)

var seeder = models.Principal{ID: "seed", Capability: models.CapabilityElevated}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := applog.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := seed(cfg, zl); err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
}

func seed(cfg config.Config, zl *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repositories.Connect(cfg.Database, zl)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repositories.Migrate(db); err != nil {
		return err
	}

	cacheStore, err := cache.Open(cfg.Cache, cfg.Redis)
	if err != nil {
		return err
	}
	defer cacheStore.Close()

	rt := readthrough.New(cache.New(cacheStore, nil, zl.Named("cache")), access.OwnershipGate{})
	store := repositories.NewStore(db)
	accounts := account.NewService(store, rt, zl)
	cards := card.NewService(store, rt, zl)

	accountInput := models.CreateAccountInput{
		Name:      config.GetEnv("SEED_NAME", "Jane"),
		Surname:   config.GetEnv("SEED_SURNAME", "Doe"),
		BirthDate: models.NewDate(1990, time.May, 17),
		Email:     config.GetEnv("SEED_EMAIL", "jane.doe@example.com"),
	}
	if err := validation.Struct(accountInput); err != nil {
		return err
	}

	acc, err := accounts.GetByEmail(ctx, seeder, accountInput.Email)
	switch {
	case errors.Is(err, services.ErrNotFound):
		if acc, err = accounts.Create(ctx, accountInput); err != nil {
			return err
		}
		zl.Info("demo account created", zap.Uint("account_id", acc.ID), zap.String("email", acc.Email))
	case err != nil:
		return err
	default:
		zl.Info("demo account already exists", zap.Uint("account_id", acc.ID))
	}

	number := config.GetEnv("SEED_CARD_NUMBER", "4111111111111111")
	if _, err := cards.GetByNumber(ctx, seeder, number); err == nil {
		zl.Info("demo card already exists")
		return nil
	} else if !errors.Is(err, services.ErrNotFound) {
		return err
	}

	cardInput := models.CreateCardInput{
		Number:         number,
		ExpirationDate: models.Date{Time: models.Today().AddDate(3, 0, 0)},
		AccountID:      acc.ID,
	}
	if err := validation.Struct(cardInput); err != nil {
		return err
	}
	created, err := cards.Create(ctx, seeder, cardInput)
	if err != nil {
		return err
	}
	zl.Info("demo card created", zap.Uint("card_id", created.ID), zap.String("holder", created.Holder))
	return nil
}
