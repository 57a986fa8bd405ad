package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// LogFilter filtros comunes de los registros de campo. Campos vacíos/nil = sin filtro.
// From y To son inclusivos (fechas de calendario).
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

// DoctorRepository define el puerto de persistencia para Doctor.
type DoctorRepository interface {
	Create(ctx context.Context, d *entity.Doctor) error
	GetByID(ctx context.Context, id string) (*entity.Doctor, error)
	GetByUserAndNameKey(ctx context.Context, userID, nameKey string) (*entity.Doctor, error)
	Update(ctx context.Context, d *entity.Doctor) error
	List(ctx context.Context, userID string) ([]*entity.Doctor, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	List(ctx context.Context, f LogFilter) ([]*entity.Expense, error)
	Delete(ctx context.Context, id string) error
	Sum(ctx context.Context, f LogFilter) (decimal.Decimal, error)
}

// InputRepository define el puerto de persistencia para Input.
type InputRepository interface {
	Create(ctx context.Context, in *entity.Input) error
	GetByID(ctx context.Context, id string) (*entity.Input, error)
	Update(ctx context.Context, in *entity.Input) error
	List(ctx context.Context, f LogFilter) ([]*entity.Input, error)
	Delete(ctx context.Context, id string) error
}

// InvestmentRepository define el puerto de persistencia para Investment.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *entity.Investment) error
	GetByID(ctx context.Context, id string) (*entity.Investment, error)
	Update(ctx context.Context, inv *entity.Investment) error
	List(ctx context.Context, f LogFilter) ([]*entity.Investment, error)
	Delete(ctx context.Context, id string) error
	Sum(ctx context.Context, f LogFilter) (decimal.Decimal, error)
}
