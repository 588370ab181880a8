package storage

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

import (
	"context"
	"errors"

	"github.com/denmor86/ya-bankist/internal/models"
)

// IStorage - справочник счетов с движениями. Порядок счетов - порядок добавления.
type IStorage interface {
	// ListAccounts - все счета справочника в порядке добавления
	ListAccounts(ctx context.Context) ([]models.Account, error)
	// GetAccount - счёт по коду, ErrAccountNotFound если нет
	GetAccount(ctx context.Context, username string) (*models.Account, error)
	// AddAccounts - добавление счетов вместе с движениями, коды должны быть уже назначены
	AddAccounts(ctx context.Context, accounts []models.Account) error
	// AppendMovements - добавление движений к нескольким счетам атомарно: либо все, либо ни одного
	AppendMovements(ctx context.Context, postings ...models.Posting) error
	// RemoveAccount - удаление счёта из справочника
	RemoveAccount(ctx context.Context, username string) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAlreadyExists   = errors.New("already exists")
)
