// Package export genera los reportes descargables de los registros de campo
// (gastos, entregas, inversiones) en CSV, XLSX o PDF.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dailishaw/dailishaw-api/internal/domain"
)

// Kind registro exportable. El valor es también el prefijo del nombre de archivo.
type Kind string

const (
	Expenses    Kind = "Expenses"
	Inputs      Kind = "Inputs"
	Investments Kind = "Investments"
)

// Format formato de salida.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// Placeholder valor emitido para campos opcionales vacíos.
const Placeholder = "-"

// ParseFormat valida el formato; vacío = csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return CSV, nil
	case CSV, XLSX, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, s)
}

// ContentType tipo MIME del formato.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Table datos tabulares ya formateados como texto.
type Table struct {
	Kind    Kind
	Subject string // nombre del usuario filtrado o "All Users"
	Headers []string
	Rows    [][]string
	Total   *decimal.Decimal // suma de importes; nil para entregas
}

// Document archivo listo para descargar.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// PDFRenderer dibuja una tabla como documento PDF.
type PDFRenderer interface {
	RenderTable(ctx context.Context, t *Table) ([]byte, error)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
