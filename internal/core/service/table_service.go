package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/qr"
)

// TableService manages tables, their QR codes and the public menu.
type TableService struct {
	tables     ports.TableRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	orders     ports.OrderRepository
	qr         *qr.Generator
	log        zerolog.Logger
}

func NewTableService(
	tables ports.TableRepository,
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	orders ports.OrderRepository,
	gen *qr.Generator,
	log zerolog.Logger,
) *TableService {
	return &TableService{
		tables:     tables,
		categories: categories,
		products:   products,
		orders:     orders,
		qr:         gen,
		log:        log,
	}
}

func (s *TableService) List(ctx context.Context) ([]*domain.Table, error) {
	return s.tables.List(ctx)
}

func (s *TableService) Create(ctx context.Context, number, capacity int) (*domain.Table, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", domain.ErrInvalidInput)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", domain.ErrInvalidInput)
	}
	t := &domain.Table{
		ID:        uuid.NewString(),
		Number:    number,
		Capacity:  capacity,
		QRCode:    s.qr.CanonicalURL(number),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tables.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Int("table", number).Str("qr", t.QRCode).Msg("table created")
	return t, nil
}

func (s *TableService) Delete(ctx context.Context, id string) error {
	return s.tables.Delete(ctx, id)
}

// RegenerateQR is idempotent: the URL depends only on the table number and
// the configured origin.
func (s *TableService) RegenerateQR(ctx context.Context, id string) (*domain.Table, error) {
	t, err := s.tables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url := s.qr.CanonicalURL(t.Number)
	if url != t.QRCode {
		if err := s.tables.SetQRCode(ctx, id, url); err != nil {
			return nil, err
		}
		s.log.Info().Int("table", t.Number).Str("from", t.QRCode).Str("to", url).Msg("table qr updated")
		t.QRCode = url
	}
	return t, nil
}

func (s *TableService) QRImage(ctx context.Context, id string, size int) ([]byte, error) {
	t, err := s.tables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qr.PNG(t.Number, size)
}

// Menu is what a diner sees after scanning the table's code: the catalog
// with unavailable products hidden, plus the table's open orders.
func (s *TableService) Menu(ctx context.Context, tableNumber int) (*domain.Menu, error) {
	t, err := s.tables.FindByNumber(ctx, tableNumber)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	prods, err := s.products.List(ctx, true)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, ports.ListOrdersFilter{ActiveOnly: true, TableNumber: tableNumber})
	if err != nil {
		return nil, err
	}

	m := &domain.Menu{
		Table:      *t,
		Categories: make([]domain.Category, 0, len(cats)),
		Products:   make([]domain.Product, 0, len(prods)),
		Orders:     make([]domain.Order, 0, len(orders)),
	}
	for _, c := range cats {
		m.Categories = append(m.Categories, *c)
	}
	for _, p := range prods {
		m.Products = append(m.Products, *p)
	}
	for _, o := range orders {
		m.Orders = append(m.Orders, *o)
	}
	return m, nil
}
