package router

import (
	"math"

	"github.com/denmor86/ya-bankist/internal/config"
	"github.com/denmor86/ya-bankist/internal/network/handlers"
	"github.com/denmor86/ya-bankist/internal/network/middleware"
	"github.com/denmor86/ya-bankist/internal/services"
	"github.com/denmor86/ya-bankist/internal/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config   config.Config
	Identity services.IdentityService
	Bank     services.BankService
	Sessions *services.SessionRegistry
	Limiter  *middleware.RateLimiter
	Storage  storage.IStorage
}

func NewRouter(config config.Config, storage storage.IStorage, bank services.BankService, identity services.IdentityService, sessions *services.SessionRegistry) *Router {
	burst := int(math.Ceil(config.Server.LoginRate))
	return &Router{
		Config:   config,
		Identity: identity,
		Bank:     bank,
		Sessions: sessions,
		Limiter:  middleware.NewRateLimiter(config.Server.LoginRate, burst),
		Storage:  storage,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Get("/ping", handlers.PingHandler(router.Storage))
		r.With(middleware.RateLimitHandle(router.Limiter)).
			Post("/login", handlers.LoginHandler(router.Bank, router.Identity, router.Sessions))
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Use(middleware.SessionHandle(router.Sessions))
			r.Get("/account", handlers.AccountHandler(router.Bank))
			r.Post("/transfer", handlers.TransferHandler(router.Bank))
			r.Post("/loan", handlers.LoanHandler(router.Bank))
			r.Post("/close", handlers.CloseHandler(router.Bank, router.Sessions))
			r.Post("/sort", handlers.SortHandler(router.Bank, router.Sessions))
		})
	})
	return r
}
