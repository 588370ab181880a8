package services

import (
	"sync"
	"time"

	"github.com/denmor86/ya-bankist/internal/models"
)

// SessionRegistry - серверное хранилище сессий по идентификатору из токена
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewSessionRegistry(now func() time.Time) *SessionRegistry {
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{sessions: make(map[string]models.Session), now: now}
}

// Save - сохранение или замена сессии
func (r *SessionRegistry) Save(session models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

// Update - замена существующей сессии новым значением. Закрытая сессия не заменяется,
// пропавшая (истёкшая или удалённая) не восстанавливается.
func (r *SessionRegistry) Update(session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[session.ID]
	if !ok || current.Expired(r.now()) {
		return ErrSessionExpired
	}
	if current.State == models.SessionClosed {
		return ErrSessionClosed
	}
	r.sessions[session.ID] = session
	return nil
}

// Get - живая сессия по идентификатору; истёкшая удаляется
func (r *SessionRegistry) Get(id string) (models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	if session.Expired(r.now()) {
		delete(r.sessions, id)
		return models.Session{}, false
	}
	return session, true
}

func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Purge - удаление истёкших и не активных сессий, возвращает число удалённых
func (r *SessionRegistry) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, session := range r.sessions {
		if session.Expired(now) || session.State != models.SessionLoggedIn {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
