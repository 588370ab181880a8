package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/services"
)

// SessionStore - реестр сессий для обработчиков
type SessionStore interface {
	Save(session models.Session)
	Update(session models.Session) error
}

// StatusOf - HTTP статус для ошибки операции сессии
func StatusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownRecipient):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSelfTransfer),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrNoQualifyingDeposit):
		return http.StatusConflict
	case errors.Is(err, services.ErrCredentialsMismatch):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAuthenticationFailed),
		errors.Is(err, services.ErrNotLoggedIn),
		errors.Is(err, services.ErrSessionClosed),
		errors.Is(err, services.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeRejection - отказ в операции: причина и текущее представление счёта
func writeRejection(w http.ResponseWriter, r *http.Request, b services.BankService, session models.Session, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("Operation failed", "username", session.Username, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Warn("Operation rejected", "username", session.Username, "reason", err.Error())
	view, viewErr := b.View(r.Context(), session)
	if viewErr != nil {
		logger.Error("Failed to build view", "error", viewErr)
		view = nil
	}
	writeJSON(w, status, models.ErrorResponse{Error: err.Error(), View: view})
}

// writeView - представление счёта для сессии
func writeView(w http.ResponseWriter, r *http.Request, b services.BankService, session models.Session) {
	view, err := b.View(r.Context(), session)
	if err != nil {
		logger.Error("Failed to build view", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("Invalid request format", "error", err)
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	return true
}
