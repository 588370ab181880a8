package handlers

import (
	"net/http"

	"github.com/denmor86/ya-bankist/internal/helpers"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/services"
)

// LoginHandler - вход по коду и пин-коду, токен сессии в заголовке Authorization
func LoginHandler(b services.BankService, i services.IdentityService, s SessionStore) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decode(w, r, &req) {
			return
		}

		session, err := b.Login(r.Context(), req.Username, string(req.Pin))
		if err != nil {
			if StatusOf(err) == http.StatusUnauthorized {
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: err.Error(), View: services.LoggedOutView()})
				return
			}
			logger.Error("Error login", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		token, err := i.GenerateJWT(session)
		if err != nil {
			logger.Error("Failed to generate token", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.Save(session)

		w.Header().Set("Authorization", "Bearer "+token)
		writeView(w, r, b, session)
	})
}

// AccountHandler - представление счёта текущей сессии
func AccountHandler(b services.BankService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := helpers.GetSession(r.Context())
		if err != nil {
			logger.Warn("Failed to get session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeView(w, r, b, session)
	})
}

// SortHandler - переключение порядка движений
func SortHandler(b services.BankService, s SessionStore) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := helpers.GetSession(r.Context())
		if err != nil {
			logger.Warn("Failed to get session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		session, err = b.ToggleSort(r.Context(), session)
		if err == nil {
			err = s.Update(session)
		}
		if err != nil {
			writeRejection(w, r, b, session, err)
			return
		}
		writeView(w, r, b, session)
	})
}

// CloseHandler - закрытие собственного счёта, сессия становится закрытой
func CloseHandler(b services.BankService, s SessionStore) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := helpers.GetSession(r.Context())
		if err != nil {
			logger.Warn("Failed to get session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.CloseRequest
		if !decode(w, r, &req) {
			return
		}

		session, err = b.Close(r.Context(), session, req.Username, string(req.Pin))
		if err == nil {
			err = s.Update(session)
		}
		if err != nil {
			writeRejection(w, r, b, session, err)
			return
		}
		writeView(w, r, b, session)
	})
}
