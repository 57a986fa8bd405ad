package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
	"github.com/dailishaw/dailishaw-api/internal/testutil/memstore"
	"github.com/dailishaw/dailishaw-api/pkg/logger"
)

func day(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }

func seeded(t *testing.T) (*memstore.Store, *Service) {
	t.Helper()
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, s.Profiles().Create(ctx, &entity.Profile{ID: "u1", Email: "ravi@d.in", FullName: "Ravi Kumar", Role: entity.RoleUser, IsActive: true}))
	require.NoError(t, s.Profiles().Create(ctx, &entity.Profile{ID: "u2", Email: "priya@d.in", FullName: "Priya  S", Role: entity.RoleUser, IsActive: true}))
	require.NoError(t, s.Expenses().Create(ctx, &entity.Expense{
		ID: "e1", UserID: "u1", Date: day(1, 20), Category: `Hotel "Taj"`, Amount: decimal.RequireFromString("4500.5"),
	}))
	require.NoError(t, s.Expenses().Create(ctx, &entity.Expense{
		ID: "e2", UserID: "u1", Date: day(1, 5), Category: "Travel", Amount: decimal.RequireFromString("120"), Description: "Pune, Mumbai",
	}))
	require.NoError(t, s.Expenses().Create(ctx, &entity.Expense{
		ID: "e3", UserID: "u2", Date: day(1, 7), Category: "Food", Amount: decimal.RequireFromString("80"),
	}))

	svc := NewService(s.Profiles(), s.Doctors(), s.Products(), s.Expenses(), s.Inputs(), s.Investments(), nil, logger.Nop())
	svc.now = func() time.Time { return time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC) }
	return s, svc
}

func TestExport_CSVGastosDeUnUsuario(t *testing.T) {
	_, svc := seeded(t)

	doc, err := svc.Export(context.Background(), Expenses, repository.LogFilter{UserID: "u1"}, CSV)
	require.NoError(t, err)
	assert.Equal(t, "Expenses_Ravi_Kumar_2025-02-01.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "expenses_csv", doc.Body)
}

func TestExport_SinFiltroEsAllUsers(t *testing.T) {
	_, svc := seeded(t)

	doc, err := svc.Export(context.Background(), Expenses, repository.LogFilter{}, CSV)
	require.NoError(t, err)
	assert.Equal(t, "Expenses_All_Users_2025-02-01.csv", doc.Filename)
	assert.Equal(t, 4, bytes.Count(doc.Body, []byte("\n")), "cabecera + 3 filas")
}

func TestExport_UsuarioInexistente(t *testing.T) {
	_, svc := seeded(t)
	_, err := svc.Export(context.Background(), Expenses, repository.LogFilter{UserID: "nope"}, CSV)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestExport_EntregasConPlaceholders(t *testing.T) {
	s, svc := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.Doctors().Create(ctx, &entity.Doctor{ID: "d1", UserID: "u1", Name: "Dr. Mehta"}))
	doctorID := "d1"
	require.NoError(t, s.Inputs().Create(ctx, &entity.Input{ID: "i1", UserID: "u1", DoctorID: &doctorID, Date: day(1, 9), Quantity: 4}))

	tbl, err := svc.Build(ctx, Inputs, repository.LogFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"2025-01-09", "Ravi Kumar", "Dr. Mehta", Placeholder, "4", Placeholder}, tbl.Rows[0])
	assert.Nil(t, tbl.Total)
}

func TestExport_XLSXCabeceraYTotal(t *testing.T) {
	_, svc := seeded(t)

	doc, err := svc.Export(context.Background(), Expenses, repository.LogFilter{UserID: "u1"}, XLSX)
	require.NoError(t, err)
	assert.Equal(t, "Expenses_Ravi_Kumar_2025-02-01.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "User", "Category", "Amount", "Description"}, rows[0])
	assert.Equal(t, []string{"Total", "4620.50"}, rows[3])
}

func TestExport_PDFSinRenderer(t *testing.T) {
	_, svc := seeded(t)
	_, err := svc.Export(context.Background(), Expenses, repository.LogFilter{}, PDF)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, XLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
