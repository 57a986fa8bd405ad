package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// DoctorUseCase médicos de cada usuario de campo. El nombre es único por usuario (sin distinguir mayúsculas).
type DoctorUseCase struct {
	repo repository.DoctorRepository
}

// NewDoctorUseCase construye el caso de uso.
func NewDoctorUseCase(repo repository.DoctorRepository) *DoctorUseCase {
	return &DoctorUseCase{repo: repo}
}

// Create registra un médico para el actor.
func (uc *DoctorUseCase) Create(ctx context.Context, actor entity.Actor, in dto.DoctorRequest) (*dto.DoctorResponse, error) {
	name := naming.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureUniqueName(ctx, actor.ID, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Doctor{
		ID:             uuid.New().String(),
		UserID:         actor.ID,
		Name:           name,
		Specialization: strings.TrimSpace(in.Specialization),
		Clinic:         strings.TrimSpace(in.Clinic),
		Phone:          strings.TrimSpace(in.Phone),
		City:           strings.TrimSpace(in.City),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDoctorResponse(d), nil
}

// List médicos de userID ordenados por nombre.
func (uc *DoctorUseCase) List(ctx context.Context, userID string) ([]dto.DoctorResponse, error) {
	list, err := uc.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDoctorResponse(d))
	}
	return out, nil
}

// Update edita un médico propio.
func (uc *DoctorUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.DoctorRequest) (*dto.DoctorResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(d.UserID) {
		return nil, domain.ErrForbidden
	}
	name := naming.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureUniqueName(ctx, d.UserID, name, d.ID); err != nil {
		return nil, err
	}
	d.Name = name
	d.Specialization = strings.TrimSpace(in.Specialization)
	d.Clinic = strings.TrimSpace(in.Clinic)
	d.Phone = strings.TrimSpace(in.Phone)
	d.City = strings.TrimSpace(in.City)
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDoctorResponse(d), nil
}

// Delete borra un médico; las entregas/inversiones que lo referencian quedan sin médico.
func (uc *DoctorUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	d, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(d.UserID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// EnsureOwned verifica que doctorID exista y pertenezca a userID.
func (uc *DoctorUseCase) EnsureOwned(ctx context.Context, userID, doctorID string) error {
	d, err := uc.repo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if d == nil || d.UserID != userID {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *DoctorUseCase) ensureUniqueName(ctx context.Context, userID, name, selfID string) error {
	existing, err := uc.repo.GetByUserAndNameKey(ctx, userID, naming.Key(name))
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func (uc *DoctorUseCase) get(ctx context.Context, id string) (*entity.Doctor, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func toDoctorResponse(d *entity.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:             d.ID,
		UserID:         d.UserID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Clinic:         d.Clinic,
		Phone:          d.Phone,
		City:           d.City,
		CreatedAt:      d.CreatedAt,
	}
}
