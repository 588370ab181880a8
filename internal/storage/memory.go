package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/denmor86/ya-bankist/internal/directory"
	"github.com/denmor86/ya-bankist/internal/models"
)

// MemoryStorage - хранилище в памяти процесса. Наружу отдаются только копии.
type MemoryStorage struct {
	mu       sync.RWMutex
	accounts []models.Account
}

// Создание хранилища
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for i := range s.accounts {
		out = append(out, *s.accounts[i].Clone())
	}
	return out, nil
}

func (s *MemoryStorage) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := directory.FindByUsername(s.accounts, username)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Clone(), nil
}

func (s *MemoryStorage) AddAccounts(ctx context.Context, accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// сначала проверяем все, чтобы не добавить часть
	for i := range accounts {
		if directory.FindIndexByUsername(s.accounts, accounts[i].Username) >= 0 ||
			directory.FindIndexByUsername(accounts[:i], accounts[i].Username) >= 0 {
			return fmt.Errorf("account %q: %w", accounts[i].Username, ErrAlreadyExists)
		}
	}
	for i := range accounts {
		s.accounts = append(s.accounts, *accounts[i].Clone())
	}
	return nil
}

func (s *MemoryStorage) AppendMovements(ctx context.Context, postings ...models.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	indexes := make([]int, len(postings))
	for i, p := range postings {
		idx := directory.FindIndexByUsername(s.accounts, p.Username)
		if idx < 0 {
			return fmt.Errorf("account %q: %w", p.Username, ErrAccountNotFound)
		}
		indexes[i] = idx
	}
	for i, p := range postings {
		acc := &s.accounts[indexes[i]]
		acc.Movements = append(acc.Movements, p.Movement)
	}
	return nil
}

func (s *MemoryStorage) RemoveAccount(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := directory.FindIndexByUsername(s.accounts, username)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", username, ErrAccountNotFound)
	}
	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)
	return nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
