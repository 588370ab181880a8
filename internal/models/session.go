package models

import "time"

// SessionState - состояние сессии
type SessionState int

const (
	SessionLoggedOut SessionState = iota
	SessionLoggedIn
	// SessionClosed - терминальное состояние после закрытия собственного счёта
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionLoggedIn:
		return "logged_in"
	case SessionClosed:
		return "closed"
	default:
		return "logged_out"
	}
}

// Session - значение сессии, передаётся в каждую операцию и возвращается из неё
type Session struct {
	ID         string
	Username   string
	State      SessionState
	Sorted     bool
	LoggedInAt time.Time
	ExpiresAt  time.Time
}

// Expired - истёк ли срок жизни сессии (нулевой ExpiresAt - бессрочная)
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
