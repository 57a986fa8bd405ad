// Package analytics contiene el resumen del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel: usuarios activos, tamaño del
// catálogo y gastos/inversiones del mes en curso.
type DashboardUseCase struct {
	profiles    repository.ProfileRepository
	categories  repository.CategoryRepository
	products    repository.ProductRepository
	expenses    repository.ExpenseRepository
	investments repository.InvestmentRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	profiles repository.ProfileRepository,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	expenses repository.ExpenseRepository,
	investments repository.InvestmentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		profiles:    profiles,
		categories:  categories,
		products:    products,
		expenses:    expenses,
		investments: investments,
		now:         time.Now,
	}
}

// GetSummary lanza las cinco consultas en paralelo; la primera que falle cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	month := repository.LogFilter{From: &monthStart, To: &today}

	out := &dto.DashboardSummaryDTO{DateLabel: monthLabel(now)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ActiveUsers, err = uc.profiles.CountActive(gctx)
		return wrap("usuarios activos", err)
	})
	g.Go(func() (err error) {
		out.Categories, err = uc.categories.Count(gctx)
		return wrap("categorías", err)
	})
	g.Go(func() (err error) {
		out.Products, err = uc.products.Count(gctx)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		out.MonthExpenses, err = uc.expenses.Sum(gctx, month)
		return wrap("gastos del mes", err)
	})
	g.Go(func() (err error) {
		out.MonthInvestments, err = uc.investments.Sum(gctx, month)
		return wrap("inversiones del mes", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.MonthExpenses = out.MonthExpenses.Round(2)
	out.MonthInvestments = out.MonthInvestments.Round(2)
	return out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}

// monthLabel etiqueta legible del mes, ej: "October 2026".
func monthLabel(t time.Time) string {
	return t.Format("January 2006")
}
