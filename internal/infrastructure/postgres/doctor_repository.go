package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.DoctorRepository = (*DoctorRepo)(nil)

const doctorColumns = `id, user_id, name, specialization, clinic, phone, city, created_at, updated_at`

// DoctorRepo implementación del puerto DoctorRepository sobre PostgreSQL.
type DoctorRepo struct {
	q Querier
}

func NewDoctorRepository(q Querier) *DoctorRepo {
	return &DoctorRepo{q: q}
}

func (r *DoctorRepo) Create(ctx context.Context, d *entity.Doctor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO doctors (id, user_id, name, name_key, specialization, clinic, phone, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.UserID, d.Name, naming.Key(d.Name), d.Specialization, d.Clinic, d.Phone, d.City, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id string) (*entity.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
}

func (r *DoctorRepo) GetByUserAndNameKey(ctx context.Context, userID, nameKey string) (*entity.Doctor, error) {
	return r.getOne(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE user_id = $1 AND name_key = $2`, userID, nameKey)
}

func (r *DoctorRepo) Update(ctx context.Context, d *entity.Doctor) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE doctors SET name = $2, name_key = $3, specialization = $4, clinic = $5, phone = $6, city = $7, updated_at = $8
		WHERE id = $1`,
		d.ID, d.Name, naming.Key(d.Name), d.Specialization, d.Clinic, d.Phone, d.City, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update doctor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List doctores de un usuario por nombre; userID vacío lista todos.
func (r *DoctorRepo) List(ctx context.Context, userID string) ([]*entity.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY name_key ASC, created_at ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete borra el doctor; inputs e inversiones quedan con doctor_id NULL.
func (r *DoctorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DoctorRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Doctor, error) {
	d, err := scanDoctor(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func scanDoctor(row pgx.Row) (*entity.Doctor, error) {
	var d entity.Doctor
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialization, &d.Clinic, &d.Phone, &d.City, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
