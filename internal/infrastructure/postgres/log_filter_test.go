package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

func TestLogWhere_SinFiltros(t *testing.T) {
	where, args := logWhere("expense_date", repository.LogFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestLogWhere_UsuarioYRango(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	where, args := logWhere("input_date", repository.LogFilter{UserID: "u1", From: &from, To: &to})
	assert.Equal(t, " WHERE user_id = $1 AND input_date >= $2 AND input_date <= $3", where)
	assert.Equal(t, []any{"u1", from, to}, args)
}

func TestLogWhere_SoloHasta(t *testing.T) {
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	where, args := logWhere("investment_date", repository.LogFilter{To: &to})
	assert.Equal(t, " WHERE investment_date <= $1", where)
	assert.Len(t, args, 1)
}
