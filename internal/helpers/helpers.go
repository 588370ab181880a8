package helpers

import (
	"context"
	"errors"

	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrUndefinedSessionID = errors.New("undefined session id")
	ErrUndefinedSession   = errors.New("undefined session")
)

type sessionKey struct{}

// GetSessionID - извлекает идентификатор сессии из контекста JWT токена
func GetSessionID(ctx context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(ctx)
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		logger.Warn("Undefined session id from token")
		return "", ErrUndefinedSessionID
	}
	return sid, nil
}

// WithSession - контекст с сессией текущего запроса
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession - сессия текущего запроса, положенная middleware
func GetSession(ctx context.Context) (models.Session, error) {
	session, ok := ctx.Value(sessionKey{}).(models.Session)
	if !ok {
		return models.Session{}, ErrUndefinedSession
	}
	return session, nil
}
