package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard/summary.
type DashboardSummaryDTO struct {
	ActiveUsers      int             `json:"active_users"`
	Categories       int             `json:"categories"`
	Products         int             `json:"products"`
	MonthExpenses    decimal.Decimal `json:"month_expenses"`    // gastos del mes en curso
	MonthInvestments decimal.Decimal `json:"month_investments"` // inversiones del mes en curso
	DateLabel        string          `json:"date_label"`        // ej: "October 2026"
}
