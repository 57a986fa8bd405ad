package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailishaw/dailishaw-api/internal/application/auth"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/testutil/memstore"
)

type profileFixture struct {
	store *memstore.Store
	cache *auth.SessionCache
	guard *auth.SessionGuard
	uc    *usecase.ProfileUseCase
}

func newProfileFixture() *profileFixture {
	s := memstore.New()
	cache := auth.NewSessionCache(time.Minute)
	guard := auth.NewSessionGuard(s.Profiles(), cache)
	return &profileFixture{store: s, cache: cache, guard: guard, uc: usecase.NewProfileUseCase(s.Profiles(), guard)}
}

var admin = entity.Actor{ID: "admin-1", Role: entity.RoleAdmin}

func TestProfileCreate_PorDefectoRolUserYActivo(t *testing.T) {
	f := newProfileFixture()
	out, err := f.uc.Create(context.Background(), dto.CreateProfileRequest{
		Email: "  Ravi@Dailishaw.IN ", Password: "secreto", FullName: "Ravi  Kumar",
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi@dailishaw.in", out.Email)
	assert.Equal(t, "Ravi Kumar", out.FullName)
	assert.Equal(t, "user", out.Role)
	assert.True(t, out.IsActive)

	p, err := f.store.Profiles().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto", p.PasswordHash, "nunca se guarda en plano")
}

func TestProfileCreate_Validaciones(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "a@b.c", Password: "12345", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = f.uc.Create(ctx, dto.CreateProfileRequest{Email: "sin-arroba", Password: "123456", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateProfileRequest{Email: "a@b.c", Password: "123456", FullName: "A", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, dto.CreateProfileRequest{Email: "a@b.c", Password: "123456", FullName: "A"})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, dto.CreateProfileRequest{Email: "A@B.C", Password: "123456", FullName: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestProfileSetActive_InvalidaSesionCacheada(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "u@d.in", Password: "123456", FullName: "U"})
	require.NoError(t, err)

	_, err = f.guard.Check(ctx, out.ID)
	require.NoError(t, err)
	_, cached := f.cache.Get(out.ID)
	require.True(t, cached)

	_, err = f.uc.SetActive(ctx, admin, out.ID, false)
	require.NoError(t, err)
	_, cached = f.cache.Get(out.ID)
	assert.False(t, cached)

	_, err = f.guard.Check(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrInactiveAccount, "la siguiente petición ve el cambio")
}

func TestProfileSetActive_AdminNoPuedeDesactivarse(t *testing.T) {
	f := newProfileFixture()
	_, err := f.uc.SetActive(context.Background(), admin, admin.ID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProfileUpdate_CambioDeRol(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "u@d.in", Password: "123456", FullName: "U"})
	require.NoError(t, err)
	_, err = f.guard.Check(ctx, out.ID)
	require.NoError(t, err)

	role := "admin"
	updated, err := f.uc.Update(ctx, out.ID, dto.UpdateProfileRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)
	_, cached := f.cache.Get(out.ID)
	assert.False(t, cached)

	bad := "superuser"
	_, err = f.uc.Update(ctx, out.ID, dto.UpdateProfileRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfileDelete(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "u@d.in", Password: "123456", FullName: "U"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.Delete(ctx, admin, admin.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.Delete(ctx, admin, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.Delete(ctx, admin, "no-existe"), domain.ErrUserNotFound)

	require.NoError(t, f.uc.Delete(ctx, admin, out.ID))
	_, err = f.uc.GetByID(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.guard.Check(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfileResetPassword(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	out, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "u@d.in", Password: "123456", FullName: "U"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.ResetPassword(ctx, out.ID, "123"), domain.ErrWeakPassword)
	require.NoError(t, f.uc.ResetPassword(ctx, out.ID, "nueva-clave"))

	authUC := auth.NewAuthUseCase(f.store.Profiles(), f.guard, auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "t"})
	_, err = authUC.Login(ctx, dto.LoginRequest{Email: "u@d.in", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	res, err := authUC.Login(ctx, dto.LoginRequest{Email: "u@d.in", Password: "nueva-clave"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestProfileList_Filtros(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "a@d.in", Password: "123456", FullName: "Ana", Role: "admin"})
	require.NoError(t, err)
	u, err := f.uc.Create(ctx, dto.CreateProfileRequest{Email: "b@d.in", Password: "123456", FullName: "Bob"})
	require.NoError(t, err)
	_, err = f.uc.SetActive(ctx, admin, u.ID, false)
	require.NoError(t, err)

	users, err := f.uc.List(ctx, "user", nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].FullName)

	active := true
	act, err := f.uc.List(ctx, "", &active)
	require.NoError(t, err)
	require.Len(t, act, 1)
	assert.Equal(t, "Ana", act[0].FullName)

	_, err = f.uc.List(ctx, "guest", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
