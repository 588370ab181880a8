package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
)

// Pinger - проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler - проверка доступности хранилища
func PingHandler(p Pinger) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			logger.Error("Storage unavailable", "error", err)
			http.Error(w, "Storage unavailable", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
