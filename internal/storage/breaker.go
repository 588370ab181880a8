package storage

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/sony/gobreaker"
)

// NewCircuitBreaker - предохранитель для обращений к БД.
// Бизнес-ошибки (нет счёта, уже существует) отказом БД не считаются.
func NewCircuitBreaker(name string, failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: timeout, // через timeout пробуем обратиться снова
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrAccountNotFound) ||
				errors.Is(err, ErrAlreadyExists) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// BreakerStorage - обёртка над хранилищем, пропускающая вызовы через предохранитель
type BreakerStorage struct {
	Storage IStorage
	Breaker *gobreaker.CircuitBreaker
}

// Создание обёртки
func NewBreakerStorage(storage IStorage, breaker *gobreaker.CircuitBreaker) IStorage {
	return &BreakerStorage{Storage: storage, Breaker: breaker}
}

func (s *BreakerStorage) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return execute(s.Breaker, func() ([]models.Account, error) {
		return s.Storage.ListAccounts(ctx)
	})
}

func (s *BreakerStorage) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	return execute(s.Breaker, func() (*models.Account, error) {
		return s.Storage.GetAccount(ctx, username)
	})
}

func (s *BreakerStorage) AddAccounts(ctx context.Context, accounts []models.Account) error {
	_, err := execute(s.Breaker, func() (struct{}, error) {
		return struct{}{}, s.Storage.AddAccounts(ctx, accounts)
	})
	return err
}

func (s *BreakerStorage) AppendMovements(ctx context.Context, postings ...models.Posting) error {
	_, err := execute(s.Breaker, func() (struct{}, error) {
		return struct{}{}, s.Storage.AppendMovements(ctx, postings...)
	})
	return err
}

func (s *BreakerStorage) RemoveAccount(ctx context.Context, username string) error {
	_, err := execute(s.Breaker, func() (struct{}, error) {
		return struct{}{}, s.Storage.RemoveAccount(ctx, username)
	})
	return err
}

func (s *BreakerStorage) Ping(ctx context.Context) error {
	_, err := execute(s.Breaker, func() (struct{}, error) {
		return struct{}{}, s.Storage.Ping(ctx)
	})
	return err
}

func (s *BreakerStorage) Close() error {
	return s.Storage.Close()
}

func execute[T any](breaker *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
