package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/denmor86/ya-bankist/internal/helpers"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/services"
)

// SessionStore - источник сессий по идентификатору из токена
type SessionStore interface {
	Get(id string) (models.Session, bool)
}

// SessionHandle - находит живую открытую сессию по claim "sid" и кладёт её в контекст.
// Неизвестная, истёкшая или закрытая сессия - 401 с представлением для входа.
func SessionHandle(sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, err := helpers.GetSessionID(r.Context())
			if err != nil {
				unauthorized(w, services.ErrNotLoggedIn)
				return
			}

			session, ok := sessions.Get(sid)
			if !ok {
				logger.Warn("Session not found or expired", "sid", sid)
				unauthorized(w, services.ErrSessionExpired)
				return
			}
			switch session.State {
			case models.SessionLoggedIn:
			case models.SessionClosed:
				unauthorized(w, services.ErrSessionClosed)
				return
			default:
				unauthorized(w, services.ErrNotLoggedIn)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithSession(r.Context(), session)))
		})
	}
}

func unauthorized(w http.ResponseWriter, reason error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: reason.Error(), View: services.LoggedOutView()})
	if err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}
