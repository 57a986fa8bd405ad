package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// InputUseCase entregas de muestras/material a médicos.
type InputUseCase struct {
	repo     repository.InputRepository
	doctors  *DoctorUseCase
	products repository.ProductRepository
}

// NewInputUseCase construye el caso de uso.
func NewInputUseCase(repo repository.InputRepository, doctors *DoctorUseCase, products repository.ProductRepository) *InputUseCase {
	return &InputUseCase{repo: repo, doctors: doctors, products: products}
}

// Create registra una entrega del actor.
func (uc *InputUseCase) Create(ctx context.Context, actor entity.Actor, in dto.InputRequest) (*dto.InputResponse, error) {
	i := &entity.Input{ID: uuid.New().String(), UserID: actor.ID, CreatedAt: time.Now()}
	if err := uc.apply(ctx, i, in); err != nil {
		return nil, err
	}
	i.UpdatedAt = i.CreatedAt
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return toInputResponse(i), nil
}

// List entregas según el filtro, más recientes primero.
func (uc *InputUseCase) List(ctx context.Context, f repository.LogFilter) ([]dto.InputResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InputResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *toInputResponse(i))
	}
	return out, nil
}

// Update edita una entrega propia.
func (uc *InputUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.InputRequest) (*dto.InputResponse, error) {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.Owns(i.UserID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.apply(ctx, i, in); err != nil {
		return nil, err
	}
	i.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return toInputResponse(i), nil
}

// Delete borra una entrega propia; un admin puede borrar cualquiera.
func (uc *InputUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	if !actor.Owns(i.UserID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *InputUseCase) apply(ctx context.Context, i *entity.Input, in dto.InputRequest) error {
	date, err := ParseDate(in.Date)
	if err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	doctorID := trimOptional(in.DoctorID)
	if doctorID != nil {
		if err := uc.doctors.EnsureOwned(ctx, i.UserID, *doctorID); err != nil {
			return err
		}
	}
	productID := trimOptional(in.ProductID)
	if productID != nil {
		p, err := uc.products.GetByID(ctx, *productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrInvalidInput
		}
	}
	i.Date = date
	i.DoctorID = doctorID
	i.ProductID = productID
	i.Quantity = in.Quantity
	i.Remarks = strings.TrimSpace(in.Remarks)
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toInputResponse(i *entity.Input) *dto.InputResponse {
	return &dto.InputResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		Date:      formatDate(i.Date),
		DoctorID:  i.DoctorID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Remarks:   i.Remarks,
		CreatedAt: i.CreatedAt,
	}
}
