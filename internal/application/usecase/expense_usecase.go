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

// ExpenseUseCase gastos de campo.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto del actor.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor entity.Actor, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e := &entity.Expense{ID: uuid.New().String(), UserID: actor.ID, CreatedAt: time.Now()}
	if err := applyExpense(e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = e.CreatedAt
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List gastos según el filtro, más recientes primero.
func (uc *ExpenseUseCase) List(ctx context.Context, f repository.LogFilter) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

// Update edita un gasto propio.
func (uc *ExpenseUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.Owns(e.UserID) {
		return nil, domain.ErrForbidden
	}
	if err := applyExpense(e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Delete borra un gasto propio; un admin puede borrar cualquiera.
func (uc *ExpenseUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if !actor.Owns(e.UserID) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func applyExpense(e *entity.Expense, in dto.ExpenseRequest) error {
	date, err := ParseDate(in.Date)
	if err != nil {
		return err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" || !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	e.Date = date
	e.Category = category
	e.Amount = in.Amount.Round(2)
	e.Description = strings.TrimSpace(in.Description)
	return nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Date:        formatDate(e.Date),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
