package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de calendario en la API.
const DateLayout = "2006-01-02"

// DoctorRequest alta/edición de médico.
type DoctorRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Specialization string `json:"specialization"`
	Clinic         string `json:"clinic"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
}

// DoctorResponse salida de un médico.
type DoctorResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Clinic         string    `json:"clinic"`
	Phone          string    `json:"phone"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExpenseRequest alta/edición de gasto. Date en formato YYYY-MM-DD.
type ExpenseRequest struct {
	Date        string          `json:"date" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InputRequest alta/edición de entrega a médico.
type InputRequest struct {
	Date      string  `json:"date" validate:"required"`
	DoctorID  *string `json:"doctor_id"`
	ProductID *string `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Remarks   string  `json:"remarks"`
}

// Refs ids de otras filas referenciadas por la entrega.
func (r InputRequest) Refs() []string { return []string{deref(r.DoctorID), deref(r.ProductID)} }

// InputResponse salida de una entrega.
type InputResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	DoctorID  *string   `json:"doctor_id"`
	ProductID *string   `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}

// InvestmentRequest alta/edición de inversión.
type InvestmentRequest struct {
	Date     string          `json:"date" validate:"required"`
	DoctorID *string         `json:"doctor_id"`
	Amount   decimal.Decimal `json:"amount"`
	Purpose  string          `json:"purpose" validate:"required"`
	Remarks  string          `json:"remarks"`
}

// Refs ids de otras filas referenciadas por la inversión.
func (r InvestmentRequest) Refs() []string { return []string{deref(r.DoctorID)} }

// InvestmentResponse salida de una inversión.
type InvestmentResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Date      string          `json:"date"`
	DoctorID  *string         `json:"doctor_id"`
	Amount    decimal.Decimal `json:"amount"`
	Purpose   string          `json:"purpose"`
	Remarks   string          `json:"remarks"`
	CreatedAt time.Time       `json:"created_at"`
}

// LogQuery filtros de query string para listados y exportes.
type LogQuery struct {
	UserID string `query:"user_id"`
	From   string `query:"from"`
	To     string `query:"to"`
	Format string `query:"format"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
