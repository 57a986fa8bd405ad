// Package memstore implementa en memoria los puertos de persistencia y
// almacenamiento para tests de casos de uso y handlers.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// Store base de datos en memoria. Reproduce los borrados en cascada de las FK.
type Store struct {
	mu          sync.Mutex
	profiles    map[string]entity.Profile
	categories  map[string]entity.Category
	products    map[string]entity.Product
	images      map[string]entity.ProductImage
	doctors     map[string]entity.Doctor
	expenses    map[string]entity.Expense
	inputs      map[string]entity.Input
	investments map[string]entity.Investment
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		profiles:    map[string]entity.Profile{},
		categories:  map[string]entity.Category{},
		products:    map[string]entity.Product{},
		images:      map[string]entity.ProductImage{},
		doctors:     map[string]entity.Doctor{},
		expenses:    map[string]entity.Expense{},
		inputs:      map[string]entity.Input{},
		investments: map[string]entity.Investment{},
	}
}

func (s *Store) Profiles() repository.ProfileRepository { return profileRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }
func (s *Store) Images() repository.ProductImageRepository { return imageRepo{s} }
func (s *Store) Doctors() repository.DoctorRepository { return doctorRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository { return expenseRepo{s} }
func (s *Store) Inputs() repository.InputRepository { return inputRepo{s} }
func (s *Store) Investments() repository.InvestmentRepository { return investmentRepo{s} }

// ─────────────────────────────────────────────────────────────────────────────
// Profiles
// ─────────────────────────────────────────────────────────────────────────────

type profileRepo struct{ s *Store }

func (r profileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.profiles {
		if strings.EqualFold(other.Email, p.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.profiles[p.ID] = *p
	return nil
}

func (r profileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r profileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if strings.EqualFold(p.Email, email) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r profileRepo) Update(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.profiles[p.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.PasswordHash = cur.PasswordHash
	r.s.profiles[p.ID] = *p
	return nil
}

func (r profileRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.PasswordHash = hash
	r.s.profiles[id] = p
	return nil
}

func (r profileRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.IsActive = active
	r.s.profiles[id] = p
	return nil
}

func (r profileRepo) List(_ context.Context, f repository.ProfileFilter) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Profile{}
	for _, p := range r.s.profiles {
		if f.Role != nil && p.Role != *f.Role {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r profileRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.profiles, id)
	for k, d := range r.s.doctors {
		if d.UserID == id {
			r.s.deleteDoctorLocked(k)
		}
	}
	for k, e := range r.s.expenses {
		if e.UserID == id {
			delete(r.s.expenses, k)
		}
	}
	for k, in := range r.s.inputs {
		if in.UserID == id {
			delete(r.s.inputs, k)
		}
	}
	for k, inv := range r.s.investments {
		if inv.UserID == id {
			delete(r.s.investments, k)
		}
	}
	return nil
}

func (r profileRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.profiles {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogo
// ─────────────────────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.categories {
		if naming.Key(other.Name) == naming.Key(c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) GetByNameKey(_ context.Context, key string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if naming.Key(c.Name) == key {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.SortOrder = cur.SortOrder
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]ordering.Item, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		items = append(items, ordering.Item{ID: c.ID, SortOrder: c.SortOrder, CreatedAt: c.CreatedAt})
	}
	ordering.Sort(items)
	out := make([]*entity.Category, 0, len(items))
	for _, it := range items {
		c := r.s.categories[it.ID]
		out = append(out, &c)
	}
	return out, nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for k, p := range r.s.products {
		if p.CategoryID == id {
			r.s.deleteProductLocked(k)
		}
	}
	return nil
}

func (r categoryRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.categories), nil
}

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[p.CategoryID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, other := range r.s.products {
		if other.CategoryID == p.CategoryID && naming.Key(other.Name) == naming.Key(p.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetByCategoryAndNameKey(_ context.Context, categoryID, key string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == categoryID && naming.Key(p.Name) == key {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.SortOrder = cur.SortOrder
	if cur.CategoryID != p.CategoryID {
		p.SortOrder = nil
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedProductsLocked(func(p entity.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r productRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedProductsLocked(func(entity.Product) bool { return true }), nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteProductLocked(id)
	return nil
}

func (r productRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.products), nil
}

func (s *Store) sortedProductsLocked(keep func(entity.Product) bool) []*entity.Product {
	items := []ordering.Item{}
	for _, p := range s.products {
		if keep(p) {
			items = append(items, ordering.Item{ID: p.ID, SortOrder: p.SortOrder, CreatedAt: p.CreatedAt})
		}
	}
	ordering.Sort(items)
	out := make([]*entity.Product, 0, len(items))
	for _, it := range items {
		p := s.products[it.ID]
		out = append(out, &p)
	}
	return out
}

func (s *Store) deleteProductLocked(id string) {
	delete(s.products, id)
	for k, img := range s.images {
		if img.ProductID == id {
			delete(s.images, k)
		}
	}
	for k, in := range s.inputs {
		if in.ProductID != nil && *in.ProductID == id {
			in.ProductID = nil
			s.inputs[k] = in
		}
	}
}

type imageRepo struct{ s *Store }

func (r imageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[img.ProductID]; !ok {
		return domain.ErrInvalidInput
	}
	r.s.images[img.ID] = *img
	return nil
}

func (r imageRepo) GetByID(_ context.Context, id string) (*entity.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img, ok := r.s.images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r imageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.imagesLocked(func(img entity.ProductImage) bool { return img.ProductID == productID }), nil
}

func (r imageRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.imagesLocked(func(img entity.ProductImage) bool {
		return r.s.products[img.ProductID].CategoryID == categoryID
	}), nil
}

func (r imageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.images, id)
	return nil
}

func (s *Store) imagesLocked(keep func(entity.ProductImage) bool) []*entity.ProductImage {
	out := []*entity.ProductImage{}
	for _, img := range s.images {
		if keep(img) {
			img := img
			out = append(out, &img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Registros de campo
// ─────────────────────────────────────────────────────────────────────────────

type doctorRepo struct{ s *Store }

func (r doctorRepo) Create(_ context.Context, d *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.doctors {
		if other.UserID == d.UserID && naming.Key(other.Name) == naming.Key(d.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) GetByID(_ context.Context, id string) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r doctorRepo) GetByUserAndNameKey(_ context.Context, userID, key string) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.doctors {
		if d.UserID == userID && naming.Key(d.Name) == key {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (r doctorRepo) Update(_ context.Context, d *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) List(_ context.Context, userID string) ([]*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Doctor{}
	for _, d := range r.s.doctors {
		if userID == "" || d.UserID == userID {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return naming.Key(out[i].Name) < naming.Key(out[j].Name) })
	return out, nil
}

func (r doctorRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteDoctorLocked(id)
	return nil
}

func (s *Store) deleteDoctorLocked(id string) {
	delete(s.doctors, id)
	for k, in := range s.inputs {
		if in.DoctorID != nil && *in.DoctorID == id {
			in.DoctorID = nil
			s.inputs[k] = in
		}
	}
	for k, inv := range s.investments {
		if inv.DoctorID != nil && *inv.DoctorID == id {
			inv.DoctorID = nil
			s.investments[k] = inv
		}
	}
}

// matches aplica LogFilter (rango de fechas inclusivo).
func matches(f repository.LogFilter, userID string, date time.Time) bool {
	if f.UserID != "" && f.UserID != userID {
		return false
	}
	if f.From != nil && date.Before(*f.From) {
		return false
	}
	if f.To != nil && date.After(*f.To) {
		return false
	}
	return true
}

type expenseRepo struct{ s *Store }

func (r expenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r expenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r expenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.expenses[e.ID] = *e
	return nil
}

func (r expenseRepo) List(_ context.Context, f repository.LogFilter) ([]*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Expense{}
	for _, e := range r.s.expenses {
		if matches(f, e.UserID, e.Date) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r expenseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

func (r expenseRepo) Sum(ctx context.Context, f repository.LogFilter) (decimal.Decimal, error) {
	list, _ := r.List(ctx, f)
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	return total, nil
}

type inputRepo struct{ s *Store }

func (r inputRepo) Create(_ context.Context, in *entity.Input) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.inputs[in.ID] = *in
	return nil
}

func (r inputRepo) GetByID(_ context.Context, id string) (*entity.Input, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.inputs[id]
	if !ok {
		return nil, nil
	}
	return &in, nil
}

func (r inputRepo) Update(_ context.Context, in *entity.Input) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inputs[in.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.inputs[in.ID] = *in
	return nil
}

func (r inputRepo) List(_ context.Context, f repository.LogFilter) ([]*entity.Input, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Input{}
	for _, in := range r.s.inputs {
		if matches(f, in.UserID, in.Date) {
			in := in
			out = append(out, &in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r inputRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inputs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.inputs, id)
	return nil
}

type investmentRepo struct{ s *Store }

func (r investmentRepo) Create(_ context.Context, inv *entity.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.investments[inv.ID] = *inv
	return nil
}

func (r investmentRepo) GetByID(_ context.Context, id string) (*entity.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.investments[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r investmentRepo) Update(_ context.Context, inv *entity.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.investments[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.investments[inv.ID] = *inv
	return nil
}

func (r investmentRepo) List(_ context.Context, f repository.LogFilter) ([]*entity.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Investment{}
	for _, inv := range r.s.investments {
		if matches(f, inv.UserID, inv.Date) {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r investmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.investments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.investments, id)
	return nil
}

func (r investmentRepo) Sum(ctx context.Context, f repository.LogFilter) (decimal.Decimal, error) {
	list, _ := r.List(ctx, f)
	total := decimal.Zero
	for _, inv := range list {
		total = total.Add(inv.Amount)
	}
	return total, nil
}
