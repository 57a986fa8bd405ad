package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.InputRepository = (*InputRepo)(nil)

const inputColumns = `id, user_id, doctor_id, product_id, input_date, quantity, remarks, created_at, updated_at`

// InputRepo implementación del puerto InputRepository sobre PostgreSQL.
type InputRepo struct {
	q Querier
}

func NewInputRepository(q Querier) *InputRepo {
	return &InputRepo{q: q}
}

func (r *InputRepo) Create(ctx context.Context, in *entity.Input) error {
	_, err := r.q.Exec(ctx, `INSERT INTO inputs (`+inputColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		in.ID, in.UserID, in.DoctorID, in.ProductID, in.Date, in.Quantity, in.Remarks, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert input: %w", err)
	}
	return nil
}

func (r *InputRepo) GetByID(ctx context.Context, id string) (*entity.Input, error) {
	in, err := scanInput(r.q.QueryRow(ctx, `SELECT `+inputColumns+` FROM inputs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input: %w", err)
	}
	return in, nil
}

func (r *InputRepo) Update(ctx context.Context, in *entity.Input) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inputs SET doctor_id = $2, product_id = $3, input_date = $4, quantity = $5, remarks = $6, updated_at = $7
		WHERE id = $1`,
		in.ID, in.DoctorID, in.ProductID, in.Date, in.Quantity, in.Remarks, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update input: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InputRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.Input, error) {
	where, args := logWhere("input_date", f)
	rows, err := r.q.Query(ctx,
		`SELECT `+inputColumns+` FROM inputs`+where+` ORDER BY input_date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Input
	for rows.Next() {
		in, err := scanInput(rows)
		if err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

func (r *InputRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inputs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete input: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInput(row pgx.Row) (*entity.Input, error) {
	var in entity.Input
	if err := row.Scan(&in.ID, &in.UserID, &in.DoctorID, &in.ProductID, &in.Date, &in.Quantity, &in.Remarks, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return nil, err
	}
	return &in, nil
}
