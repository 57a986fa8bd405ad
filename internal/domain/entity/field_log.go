package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto registrado por un usuario de campo.
type Expense struct {
	ID          string
	UserID      string
	Date        time.Time
	Category    string // viaje, comida, alojamiento...
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input muestra o material entregado a un médico.
type Input struct {
	ID        string
	UserID    string
	DoctorID  *string
	ProductID *string
	Date      time.Time
	Quantity  int
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Investment inversión (patrocinio, evento) asociada opcionalmente a un médico.
type Investment struct {
	ID        string
	UserID    string
	DoctorID  *string
	Date      time.Time
	Amount    decimal.Decimal
	Purpose   string
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
