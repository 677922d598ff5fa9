package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/money"
)

// SettingsService reads and writes the restaurant settings document.
type SettingsService struct {
	repo     ports.SettingsRepository
	defaults domain.Settings
}

// NewSettingsService returns defaults until settings are first saved.
func NewSettingsService(repo ports.SettingsRepository, defaults domain.Settings) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		d := s.defaults
		return &d, nil
	}
	return st, nil
}

func (s *SettingsService) Update(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if !money.Valid(in.Currency) {
		return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, in.Currency)
	}
	if in.TaxRate < 0 || in.TaxRate > 1 {
		return nil, fmt.Errorf("%w: tax rate must be between 0 and 1", domain.ErrInvalidInput)
	}
	in.RestaurantName = strings.TrimSpace(in.RestaurantName)
	in.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Currency returns the configured currency code, falling back to the default
// when settings cannot be read.
func (s *SettingsService) Currency(ctx context.Context) string {
	st, err := s.Get(ctx)
	if err != nil || st.Currency == "" {
		return s.defaults.Currency
	}
	return st.Currency
}

type ExpenseService struct {
	repo ports.ExpenseRepository
}

func NewExpenseService(repo ports.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

func (s *ExpenseService) List(ctx context.Context, from, to time.Time) ([]*domain.Expense, error) {
	return s.repo.List(ctx, from, to)
}

func (s *ExpenseService) Create(ctx context.Context, in ports.ExpenseInput) (*domain.Expense, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	spent := in.SpentAt
	if spent.IsZero() {
		spent = time.Now()
	}
	e := &domain.Expense{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Amount:      money.Round(in.Amount),
		Category:    strings.TrimSpace(in.Category),
		SpentAt:     spent.UTC(),
		CreatedBy:   in.CreatedBy,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

const topProductsLimit = 5

// ReportService aggregates completed orders and expenses.
type ReportService struct {
	orders   ports.OrderRepository
	expenses ports.ExpenseRepository
}

func NewReportService(orders ports.OrderRepository, expenses ports.ExpenseRepository) *ReportService {
	return &ReportService{orders: orders, expenses: expenses}
}

// Sales summarises [from, to). Only completed orders count as revenue.
func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", domain.ErrInvalidInput)
	}

	orders, err := s.orders.List(ctx, ports.ListOrdersFilter{Status: domain.OrderCompleted, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("sales report: orders: %w", err)
	}
	expenses, err := s.expenses.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales report: expenses: %w", err)
	}

	r := &domain.SalesReport{From: from, To: to, Orders: len(orders)}
	daily := map[string]*domain.DailySales{}
	products := map[string]*domain.ProductSales{}

	for _, o := range orders {
		r.Revenue += o.Total

		day := o.CreatedAt.UTC().Format("2006-01-02")
		d, ok := daily[day]
		if !ok {
			d = &domain.DailySales{Date: day}
			daily[day] = d
		}
		d.Orders++
		d.Revenue += o.Total

		for _, it := range o.Items {
			p, ok := products[it.ProductID]
			if !ok {
				p = &domain.ProductSales{ProductID: it.ProductID, Name: it.Name}
				products[it.ProductID] = p
			}
			p.Quantity += it.Quantity
			p.Revenue += it.UnitPrice * float64(it.Quantity)
		}
	}
	for _, e := range expenses {
		r.Expenses += e.Amount
	}

	r.Revenue = money.Round(r.Revenue)
	r.Expenses = money.Round(r.Expenses)
	r.Net = money.Round(r.Revenue - r.Expenses)

	r.Daily = make([]domain.DailySales, 0, len(daily))
	for _, d := range daily {
		d.Revenue = money.Round(d.Revenue)
		r.Daily = append(r.Daily, *d)
	}
	sort.Slice(r.Daily, func(i, j int) bool { return r.Daily[i].Date < r.Daily[j].Date })

	r.TopProducts = make([]domain.ProductSales, 0, len(products))
	for _, p := range products {
		p.Revenue = money.Round(p.Revenue)
		r.TopProducts = append(r.TopProducts, *p)
	}
	sort.Slice(r.TopProducts, func(i, j int) bool {
		a, b := r.TopProducts[i], r.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(r.TopProducts) > topProductsLimit {
		r.TopProducts = r.TopProducts[:topProductsLimit]
	}
	return r, nil
}
