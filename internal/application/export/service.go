package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

const (
	allUsersLabel = "All Users"
	dateLayout    = "2006-01-02"
)

// Service arma las tablas de exportación uniendo los nombres de usuario, médico y producto.
type Service struct {
	profiles    repository.ProfileRepository
	doctors     repository.DoctorRepository
	products    repository.ProductRepository
	expenses    repository.ExpenseRepository
	inputs      repository.InputRepository
	investments repository.InvestmentRepository
	pdf         PDFRenderer
	log         zerolog.Logger
	now         func() time.Time
}

// NewService construye el servicio. pdf puede ser nil (format=pdf devolverá error).
func NewService(
	profiles repository.ProfileRepository,
	doctors repository.DoctorRepository,
	products repository.ProductRepository,
	expenses repository.ExpenseRepository,
	inputs repository.InputRepository,
	investments repository.InvestmentRepository,
	pdf PDFRenderer,
	log zerolog.Logger,
) *Service {
	return &Service{
		profiles:    profiles,
		doctors:     doctors,
		products:    products,
		expenses:    expenses,
		inputs:      inputs,
		investments: investments,
		pdf:         pdf,
		log:         log,
		now:         time.Now,
	}
}

// Export construye la tabla de kind con el filtro y la renderiza en format.
func (s *Service) Export(ctx context.Context, kind Kind, f repository.LogFilter, format Format) (*Document, error) {
	t, err := s.Build(ctx, kind, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case CSV:
		err = WriteCSV(&buf, t)
	case XLSX:
		err = WriteXLSX(&buf, t)
	case PDF:
		if s.pdf == nil {
			return nil, fmt.Errorf("%w: pdf no disponible", domain.ErrInvalidInput)
		}
		var body []byte
		body, err = s.pdf.RenderTable(ctx, t)
		buf.Write(body)
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", kind, err)
	}

	s.log.Info().
		Str("kind", string(kind)).
		Str("format", string(format)).
		Str("user_id", f.UserID).
		Int("rows", len(t.Rows)).
		Msg("exportación generada")

	return &Document{
		Filename:    Filename(kind, t.Subject, s.now(), format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Filename <Kind>_<Usuario-o-All_Users>_<YYYY-MM-DD>.<ext>
func Filename(kind Kind, subject string, at time.Time, format Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", kind, naming.FileToken(subject), at.Format(dateLayout), format)
}

// Build arma la tabla de kind según el filtro.
func (s *Service) Build(ctx context.Context, kind Kind, f repository.LogFilter) (*Table, error) {
	subject := allUsersLabel
	if f.UserID != "" {
		p, err := s.profiles.GetByID(ctx, f.UserID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrUserNotFound
		}
		subject = p.FullName
	}

	names := newLookup(s)
	switch kind {
	case Expenses:
		return s.expenseTable(ctx, f, subject, names)
	case Inputs:
		return s.inputTable(ctx, f, subject, names)
	case Investments:
		return s.investmentTable(ctx, f, subject, names)
	}
	return nil, fmt.Errorf("%w: registro %q", domain.ErrInvalidInput, kind)
}

func (s *Service) expenseTable(ctx context.Context, f repository.LogFilter, subject string, names *lookup) (*Table, error) {
	list, err := s.expenses.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	t := &Table{
		Kind:    Expenses,
		Subject: subject,
		Headers: []string{"Date", "User", "Category", "Amount", "Description"},
		Rows:    make([][]string, 0, len(list)),
	}
	for _, e := range list {
		user, err := names.user(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		total = total.Add(e.Amount)
		t.Rows = append(t.Rows, []string{
			e.Date.Format(dateLayout),
			orPlaceholder(user),
			orPlaceholder(e.Category),
			e.Amount.StringFixed(2),
			orPlaceholder(e.Description),
		})
	}
	t.Total = &total
	return t, nil
}

func (s *Service) inputTable(ctx context.Context, f repository.LogFilter, subject string, names *lookup) (*Table, error) {
	list, err := s.inputs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Kind:    Inputs,
		Subject: subject,
		Headers: []string{"Date", "User", "Doctor", "Product", "Quantity", "Remarks"},
		Rows:    make([][]string, 0, len(list)),
	}
	for _, in := range list {
		user, err := names.user(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		doctor, err := names.doctor(ctx, in.DoctorID)
		if err != nil {
			return nil, err
		}
		product, err := names.product(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, []string{
			in.Date.Format(dateLayout),
			orPlaceholder(user),
			orPlaceholder(doctor),
			orPlaceholder(product),
			strconv.Itoa(in.Quantity),
			orPlaceholder(in.Remarks),
		})
	}
	return t, nil
}

func (s *Service) investmentTable(ctx context.Context, f repository.LogFilter, subject string, names *lookup) (*Table, error) {
	list, err := s.investments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	t := &Table{
		Kind:    Investments,
		Subject: subject,
		Headers: []string{"Date", "User", "Doctor", "Amount", "Purpose", "Remarks"},
		Rows:    make([][]string, 0, len(list)),
	}
	for _, inv := range list {
		user, err := names.user(ctx, inv.UserID)
		if err != nil {
			return nil, err
		}
		doctor, err := names.doctor(ctx, inv.DoctorID)
		if err != nil {
			return nil, err
		}
		total = total.Add(inv.Amount)
		t.Rows = append(t.Rows, []string{
			inv.Date.Format(dateLayout),
			orPlaceholder(user),
			orPlaceholder(doctor),
			inv.Amount.StringFixed(2),
			orPlaceholder(inv.Purpose),
			orPlaceholder(inv.Remarks),
		})
	}
	t.Total = &total
	return t, nil
}

// lookup memoriza nombres durante una exportación.
type lookup struct {
	s        *Service
	users    map[string]string
	doctors  map[string]string
	products map[string]string
}

func newLookup(s *Service) *lookup {
	return &lookup{s: s, users: map[string]string{}, doctors: map[string]string{}, products: map[string]string{}}
}

func (l *lookup) user(ctx context.Context, id string) (string, error) {
	if name, ok := l.users[id]; ok {
		return name, nil
	}
	p, err := l.s.profiles.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	name := ""
	if p != nil {
		name = p.FullName
	}
	l.users[id] = name
	return name, nil
}

func (l *lookup) doctor(ctx context.Context, id *string) (string, error) {
	if id == nil {
		return "", nil
	}
	if name, ok := l.doctors[*id]; ok {
		return name, nil
	}
	d, err := l.s.doctors.GetByID(ctx, *id)
	if err != nil {
		return "", err
	}
	name := ""
	if d != nil {
		name = d.Name
	}
	l.doctors[*id] = name
	return name, nil
}

func (l *lookup) product(ctx context.Context, id *string) (string, error) {
	if id == nil {
		return "", nil
	}
	if name, ok := l.products[*id]; ok {
		return name, nil
	}
	p, err := l.s.products.GetByID(ctx, *id)
	if err != nil {
		return "", err
	}
	name := ""
	if p != nil {
		name = p.Name
	}
	l.products[*id] = name
	return name, nil
}
