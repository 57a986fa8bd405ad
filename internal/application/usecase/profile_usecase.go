package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailishaw/dailishaw-api/internal/application/auth"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// sessionForgetter invalida la sesión cacheada de un usuario (lo implementa *auth.SessionGuard).
type sessionForgetter interface {
	Forget(userID string)
}

// ProfileUseCase administración de usuarios (solo admin).
type ProfileUseCase struct {
	repo     repository.ProfileRepository
	sessions sessionForgetter
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(repo repository.ProfileRepository, sessions sessionForgetter) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, sessions: sessions}
}

// Create crea un usuario con contraseña hasheada (bcrypt). Rol por defecto: user.
func (uc *ProfileUseCase) Create(ctx context.Context, in dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := naming.Clean(in.FullName)
	if email == "" || !strings.Contains(email, "@") || fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	role := entity.RoleUser
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		role = r
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(p), nil
}

// List lista perfiles filtrando por rol y/o estado.
func (uc *ProfileUseCase) List(ctx context.Context, role string, active *bool) ([]dto.ProfileResponse, error) {
	f := repository.ProfileFilter{IsActive: active}
	if role != "" {
		r, err := entity.ParseRole(role)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.Role = &r
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *auth.ToProfileResponse(p))
	}
	return out, nil
}

// GetByID obtiene un perfil; ErrUserNotFound si no existe.
func (uc *ProfileUseCase) GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(p), nil
}

// Update cambia nombre, teléfono y/o rol. Un cambio de rol invalida la sesión cacheada.
func (uc *ProfileUseCase) Update(ctx context.Context, id string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := naming.Clean(*in.FullName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.FullName = name
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	roleChanged := false
	if in.Role != nil {
		r, err := entity.ParseRole(*in.Role)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		roleChanged = r != p.Role
		p.Role = r
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if roleChanged {
		uc.sessions.Forget(p.ID)
	}
	return auth.ToProfileResponse(p), nil
}

// ResetPassword restablece la contraseña de cualquier usuario (operación privilegiada).
func (uc *ProfileUseCase) ResetPassword(ctx context.Context, id, password string) error {
	if len(password) < MinPasswordLength {
		return domain.ErrWeakPassword
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, string(hash))
}

// SetActive activa o desactiva una cuenta. Un admin no puede desactivarse a sí mismo.
func (uc *ProfileUseCase) SetActive(ctx context.Context, actor entity.Actor, id string, active bool) (*dto.ProfileResponse, error) {
	if !active && actor.ID == id {
		return nil, domain.ErrForbidden
	}
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	uc.sessions.Forget(id)
	p.IsActive = active
	return auth.ToProfileResponse(p), nil
}

// Delete borra de forma irreversible el registro de identidad del usuario.
// Sus registros de campo se borran en cascada. Un admin no puede borrarse a sí mismo.
func (uc *ProfileUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if actor.ID == id {
		return domain.ErrForbidden
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.sessions.Forget(id)
	return nil
}

func (uc *ProfileUseCase) get(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}
