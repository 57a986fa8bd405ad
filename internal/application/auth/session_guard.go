package auth

import (
	"context"
	"fmt"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// SessionGuard verifica en cada petición que el usuario del token siga existiendo
// y pueda entrar. Es el único punto que aplica la regla de cuentas desactivadas.
type SessionGuard struct {
	profiles repository.ProfileRepository
	cache    *SessionCache
}

// NewSessionGuard construye el guard.
func NewSessionGuard(profiles repository.ProfileRepository, cache *SessionCache) *SessionGuard {
	return &SessionGuard{profiles: profiles, cache: cache}
}

// Check devuelve el usuario actual.
//   - domain.ErrUnauthorized si el perfil ya no existe.
//   - domain.ErrInactiveAccount si la cuenta no-admin está desactivada.
func (g *SessionGuard) Check(ctx context.Context, userID string) (SessionUser, error) {
	u, ok := g.cache.Get(userID)
	if !ok {
		p, err := g.profiles.GetByID(ctx, userID)
		if err != nil {
			return SessionUser{}, fmt.Errorf("session: obtener perfil: %w", err)
		}
		if p == nil {
			return SessionUser{}, domain.ErrUnauthorized
		}
		u = SessionUser{ID: p.ID, Role: p.Role, IsActive: p.IsActive}
		g.cache.Put(u)
	}
	if !u.IsActive && u.Role != entity.RoleAdmin {
		return SessionUser{}, domain.ErrInactiveAccount
	}
	return u, nil
}

// Forget invalida la sesión cacheada de un usuario (logout, cambio de rol/estado, borrado).
func (g *SessionGuard) Forget(userID string) {
	g.cache.Invalidate(userID)
}
