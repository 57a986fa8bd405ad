package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
	"github.com/dailishaw/dailishaw-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	profiles repository.ProfileRepository
	guard    *SessionGuard
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profiles repository.ProfileRepository, guard *SessionGuard, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profiles: profiles, guard: guard, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + perfil.
// Las cuentas no-admin desactivadas reciben ErrInactiveAccount.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.profiles.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !p.CanSignIn() {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, string(p.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.guard.cache.Put(SessionUser{ID: p.ID, Role: p.Role, IsActive: p.IsActive})
	return &dto.LoginResponse{Token: token, User: *ToProfileResponse(p)}, nil
}

// Logout olvida la sesión cacheada. El JWT sigue siendo válido hasta expirar,
// pero cualquier cambio de estado se verá en la siguiente petición.
func (uc *AuthUseCase) Logout(userID string) {
	uc.guard.Forget(userID)
}

// Me devuelve la sesión actual verificada.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	u, err := uc.guard.Check(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{ID: u.ID, Role: string(u.Role), IsActive: u.IsActive}, nil
}

// ToProfileResponse mapea un perfil a su DTO público.
func ToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Role:      string(p.Role),
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
