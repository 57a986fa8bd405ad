package auth

import (
	"sync"
	"time"

	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// SessionUser lo que la verificación de sesión necesita saber de un usuario.
type SessionUser struct {
	ID       string
	Role     entity.Role
	IsActive bool
}

type sessionEntry struct {
	value     SessionUser
	fetchedAt time.Time
}

// SessionCache caché de SessionUser por id con TTL fijo.
// Se invalida explícitamente en logout, cambio de rol, cambio de estado y borrado.
type SessionCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]sessionEntry
}

// NewSessionCache construye la caché. ttl <= 0 desactiva el cacheo.
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{ttl: ttl, now: time.Now, entries: make(map[string]sessionEntry)}
}

// Get devuelve la entrada si existe y no ha vencido.
func (c *SessionCache) Get(userID string) (SessionUser, bool) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return SessionUser{}, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		c.Invalidate(userID)
		return SessionUser{}, false
	}
	return e.value, true
}

// Put guarda el valor con la marca de tiempo actual.
func (c *SessionCache) Put(u SessionUser) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[u.ID] = sessionEntry{value: u, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate elimina la entrada de un usuario.
func (c *SessionCache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}
