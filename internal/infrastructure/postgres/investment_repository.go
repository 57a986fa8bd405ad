package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.InvestmentRepository = (*InvestmentRepo)(nil)

const investmentColumns = `id, user_id, doctor_id, investment_date, amount, purpose, remarks, created_at, updated_at`

// InvestmentRepo implementación del puerto InvestmentRepository sobre PostgreSQL.
type InvestmentRepo struct {
	q Querier
}

func NewInvestmentRepository(q Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

func (r *InvestmentRepo) Create(ctx context.Context, inv *entity.Investment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO investments (`+investmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.UserID, inv.DoctorID, inv.Date, inv.Amount, inv.Purpose, inv.Remarks, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

func (r *InvestmentRepo) GetByID(ctx context.Context, id string) (*entity.Investment, error) {
	inv, err := scanInvestment(r.q.QueryRow(ctx, `SELECT `+investmentColumns+` FROM investments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get investment: %w", err)
	}
	return inv, nil
}

func (r *InvestmentRepo) Update(ctx context.Context, inv *entity.Investment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE investments SET doctor_id = $2, investment_date = $3, amount = $4, purpose = $5, remarks = $6, updated_at = $7
		WHERE id = $1`,
		inv.ID, inv.DoctorID, inv.Date, inv.Amount, inv.Purpose, inv.Remarks, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvestmentRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.Investment, error) {
	where, args := logWhere("investment_date", f)
	rows, err := r.q.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments`+where+` ORDER BY investment_date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvestmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvestmentRepo) Sum(ctx context.Context, f repository.LogFilter) (decimal.Decimal, error) {
	where, args := logWhere("investment_date", f)
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM investments`+where, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum investments: %w", err)
	}
	return total, nil
}

func scanInvestment(row pgx.Row) (*entity.Investment, error) {
	var inv entity.Investment
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.DoctorID, &inv.Date, &inv.Amount, &inv.Purpose, &inv.Remarks, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
