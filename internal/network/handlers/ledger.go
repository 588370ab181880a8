package handlers

import (
	"net/http"

	"github.com/denmor86/ya-bankist/internal/helpers"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/services"
)

// TransferHandler - перевод на другой счёт
func TransferHandler(b services.BankService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := helpers.GetSession(r.Context())
		if err != nil {
			logger.Warn("Failed to get session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.TransferRequest
		if !decode(w, r, &req) {
			return
		}

		session, err = b.Transfer(r.Context(), session, req.To, string(req.Amount))
		if err != nil {
			writeRejection(w, r, b, session, err)
			return
		}
		writeView(w, r, b, session)
	})
}

// LoanHandler - запрос кредита
func LoanHandler(b services.BankService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := helpers.GetSession(r.Context())
		if err != nil {
			logger.Warn("Failed to get session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		var req models.LoanRequest
		if !decode(w, r, &req) {
			return
		}

		session, err = b.RequestLoan(r.Context(), session, string(req.Amount))
		if err != nil {
			writeRejection(w, r, b, session, err)
			return
		}
		writeView(w, r, b, session)
	})
}
