package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/denmor86/ya-bankist/internal/directory"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed seed/accounts.json
var defaultSeed []byte

// SeedAccount - запись начального справочника
type SeedAccount struct {
	Owner        string            `json:"owner"`
	Movements    []models.Movement `json:"movements"`
	InterestRate decimal.Decimal   `json:"interestRate"`
	Pin          int64             `json:"pin"`
	Currency     string            `json:"currency,omitempty"`
	Locale       string            `json:"locale,omitempty"`
}

// LoadSeed - чтение начального справочника из файла, пустой путь - встроенный набор
func LoadSeed(path string) ([]SeedAccount, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var seeds []SeedAccount
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return seeds, nil
}

// BuildAccounts - счета из записей: идентификаторы, хэши пин-кодов и коды входа
func BuildAccounts(identity IdentityService, seeds []SeedAccount) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := identity.HashPin(seed.Pin)
		if err != nil {
			return nil, fmt.Errorf("hash pin of '%s': %w", seed.Owner, err)
		}
		accounts = append(accounts, models.Account{
			ID:           uuid.NewString(),
			Owner:        seed.Owner,
			Movements:    seed.Movements,
			InterestRate: seed.InterestRate,
			PinHash:      hash,
			Currency:     seed.Currency,
			Locale:       seed.Locale,
		})
	}
	if err := directory.BuildUsernames(accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Seed - заполнение пустого справочника, непустой не трогается
func (b *Bank) Seed(ctx context.Context, seeds []SeedAccount) error {
	existing, err := b.Storage.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Directory already populated", "accounts", len(existing))
		return nil
	}

	accounts, err := BuildAccounts(b.Identity, seeds)
	if err != nil {
		return err
	}
	if err := b.Storage.AddAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("add accounts: %w", err)
	}

	for _, acc := range accounts {
		logger.Info("Account seeded", "username", acc.Username, "owner", acc.Owner)
	}
	return nil
}
