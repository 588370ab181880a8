package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/denmor86/ya-bankist/internal/storage"
	"github.com/denmor86/ya-bankist/internal/storage/mocks"
	"github.com/sony/gobreaker"
	"go.uber.org/mock/gomock"
)

func TestBreakerStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens after consecutive failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStorage := mocks.NewMockIStorage(ctrl)
		s := storage.NewBreakerStorage(mockStorage, storage.NewCircuitBreaker("test", 2, time.Minute))

		mockStorage.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")).Times(2)

		for i := 0; i < 2; i++ {
			if err := s.Ping(ctx); err == nil || err.Error() != "connection refused" {
				t.Errorf("Expected 'connection refused', got: '%v'", err)
			}
		}
		// третий вызов до хранилища не доходит
		if err := s.Ping(ctx); !errors.Is(err, gobreaker.ErrOpenState) {
			t.Errorf("Expected ErrOpenState, got: '%v'", err)
		}
	})

	t.Run("Business errors do not trip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStorage := mocks.NewMockIStorage(ctrl)
		s := storage.NewBreakerStorage(mockStorage, storage.NewCircuitBreaker("test", 2, time.Minute))

		mockStorage.EXPECT().GetAccount(gomock.Any(), "zz").Return(nil, storage.ErrAccountNotFound).Times(3)

		for i := 0; i < 3; i++ {
			acc, err := s.GetAccount(ctx, "zz")
			if !errors.Is(err, storage.ErrAccountNotFound) || acc != nil {
				t.Errorf("Expected ErrAccountNotFound, got: %v '%v'", acc, err)
			}
		}
	})

	t.Run("Passes results through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStorage := mocks.NewMockIStorage(ctrl)
		s := storage.NewBreakerStorage(mockStorage, storage.NewCircuitBreaker("test", 2, time.Minute))

		mockStorage.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil)
		list, err := s.ListAccounts(ctx)
		if err != nil || list != nil {
			t.Errorf("Expected empty result, got: %v '%v'", list, err)
		}
	})
}
