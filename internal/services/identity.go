package services

import (
	"strconv"
	"time"

	"github.com/denmor86/ya-bankist/internal/config"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/denmor86/ya-bankist/internal/validators"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type IdentityService interface {
	HashPin(pin int64) (string, error)
	CheckPin(hash string, input string) bool
	GenerateJWT(session models.Session) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth *jwtauth.JWTAuth
	PinCost int
}

const (
	TokenSecterAlgo = "HS256"
	// TokenExpirationTime - срок жизни токена, если у сессии нет своего срока
	TokenExpirationTime = 24 * time.Hour

	ClaimSessionID = "sid"
	ClaimUsername  = "username"
)

// Создание сервиса
func NewIdentity(cfg config.Config) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, PinCost: cfg.Bank.PinCost}
}

// HashPin - хэш пин-кода в каноническом десятичном виде
func (i *Identity) HashPin(pin int64) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(strconv.FormatInt(pin, 10)), i.PinCost)
	if err != nil {
		logger.Error("Error generating pin hash", "error", err)
		return "", err
	}
	return string(hashed), nil
}

// CheckPin - введённое значение приводится к числу и сравнивается с хэшем.
// " 1111 ", "1111.0" и 1111 совпадают с пин-кодом 1111.
func (i *Identity) CheckPin(hash string, input string) bool {
	pin, ok := validators.CanonicalPin(input)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// Создание строки JWT токена для сессии
func (i *Identity) GenerateJWT(session models.Session) (string, error) {
	expirationTime := session.ExpiresAt
	if expirationTime.IsZero() {
		expirationTime = time.Now().Add(TokenExpirationTime)
	}

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		ClaimSessionID: session.ID,
		ClaimUsername:  session.Username,
		"exp":          expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
