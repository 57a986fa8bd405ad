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

// InvestmentUseCase inversiones (patrocinios, eventos) asociadas opcionalmente a un médico.
type InvestmentUseCase struct {
	repo    repository.InvestmentRepository
	doctors *DoctorUseCase
}

// NewInvestmentUseCase construye el caso de uso.
func NewInvestmentUseCase(repo repository.InvestmentRepository, doctors *DoctorUseCase) *InvestmentUseCase {
	return &InvestmentUseCase{repo: repo, doctors: doctors}
}

// Create registra una inversión del actor.
func (uc *InvestmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.InvestmentRequest) (*dto.InvestmentResponse, error) {
	inv := &entity.Investment{ID: uuid.New().String(), UserID: actor.ID, CreatedAt: time.Now()}
	if err := uc.apply(ctx, inv, in); err != nil {
		return nil, err
	}
	inv.UpdatedAt = inv.CreatedAt
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvestmentResponse(inv), nil
}

// List inversiones según el filtro, más recientes primero.
func (uc *InvestmentUseCase) List(ctx context.Context, f repository.LogFilter) ([]dto.InvestmentResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvestmentResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvestmentResponse(inv))
	}
	return out, nil
}

// Update edita una inversión propia.
func (uc *InvestmentUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.InvestmentRequest) (*dto.InvestmentResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.Owns(inv.UserID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.apply(ctx, inv, in); err != nil {
		return nil, err
	}
	inv.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInvestmentResponse(inv), nil
}

// Delete borra una inversión propia; un admin puede borrar cualquiera.
func (uc *InvestmentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if !actor.Owns(inv.UserID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *InvestmentUseCase) apply(ctx context.Context, inv *entity.Investment, in dto.InvestmentRequest) error {
	date, err := ParseDate(in.Date)
	if err != nil {
		return err
	}
	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" || !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	doctorID := trimOptional(in.DoctorID)
	if doctorID != nil {
		if err := uc.doctors.EnsureOwned(ctx, inv.UserID, *doctorID); err != nil {
			return err
		}
	}
	inv.Date = date
	inv.DoctorID = doctorID
	inv.Amount = in.Amount.Round(2)
	inv.Purpose = purpose
	inv.Remarks = strings.TrimSpace(in.Remarks)
	return nil
}

func toInvestmentResponse(inv *entity.Investment) *dto.InvestmentResponse {
	return &dto.InvestmentResponse{
		ID:        inv.ID,
		UserID:    inv.UserID,
		Date:      formatDate(inv.Date),
		DoctorID:  inv.DoctorID,
		Amount:    inv.Amount,
		Purpose:   inv.Purpose,
		Remarks:   inv.Remarks,
		CreatedAt: inv.CreatedAt,
	}
}
