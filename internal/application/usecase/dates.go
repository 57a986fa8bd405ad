package usecase

import (
	"strings"
	"time"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// ParseDate interpreta YYYY-MM-DD como fecha de calendario (UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// ParseLogFilter valida user_id / from / to de un LogQuery. from > to es inválido.
func ParseLogFilter(q dto.LogQuery) (repository.LogFilter, error) {
	f := repository.LogFilter{UserID: strings.TrimSpace(q.UserID)}
	if q.From != "" {
		t, err := ParseDate(q.From)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if q.To != "" {
		t, err := ParseDate(q.To)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

func formatDate(t time.Time) string { return t.Format(dto.DateLayout) }
