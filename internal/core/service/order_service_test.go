package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.byID {
		if f.ActiveOnly && !o.Status.Active() {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.TableNumber != 0 && o.TableNumber != f.TableNumber {
			continue
		}
		if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !o.CreatedAt.Before(f.To) {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, at time.Time) error {
	o, ok := r.byID[id]
	if !ok || o.Status != from {
		return domain.ErrOrderNotFound
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProductRepo struct {
	byID map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, availableOnly bool) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if availableOnly && !p.Available {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubTableRepo struct {
	byID map[string]*domain.Table
}

func newStubTableRepo(tables ...*domain.Table) *stubTableRepo {
	r := &stubTableRepo{byID: make(map[string]*domain.Table)}
	for _, t := range tables {
		r.byID[t.ID] = t
	}
	return r
}

func (r *stubTableRepo) Create(_ context.Context, t *domain.Table) error {
	for _, existing := range r.byID {
		if existing.Number == t.Number {
			return domain.ErrTableExists
		}
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTableRepo) FindByID(_ context.Context, id string) (*domain.Table, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTableNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTableRepo) FindByNumber(_ context.Context, number int) (*domain.Table, error) {
	for _, t := range r.byID {
		if t.Number == number {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTableNotFound
}

func (r *stubTableRepo) List(_ context.Context) ([]*domain.Table, error) {
	var out []*domain.Table
	for _, t := range r.byID {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *stubTableRepo) SetQRCode(_ context.Context, id, url string) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTableNotFound
	}
	t.QRCode = url
	return nil
}

func (r *stubTableRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTableNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubDeduper struct {
	keys     map[string]string
	claimErr error
	released []string
}

func newStubDeduper() *stubDeduper {
	return &stubDeduper{keys: make(map[string]string)}
}

func (d *stubDeduper) Claim(_ context.Context, key, orderID string) (string, bool, error) {
	if d.claimErr != nil {
		return "", false, d.claimErr
	}
	if existing, ok := d.keys[key]; ok {
		return existing, false, nil
	}
	d.keys[key] = orderID
	return "", true, nil
}

func (d *stubDeduper) Release(_ context.Context, key string) error {
	delete(d.keys, key)
	d.released = append(d.released, key)
	return nil
}

type recordingPublisher struct {
	events []domain.OrderEvent
}

func (p *recordingPublisher) Enqueue(ev domain.OrderEvent) {
	p.events = append(p.events, ev)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type orderFixture struct {
	svc    *OrderService
	orders *stubOrderRepo
	dedup  *stubDeduper
	events *recordingPublisher
}

func newOrderFixture() orderFixture {
	orders := newStubOrderRepo()
	products := newStubProductRepo(
		&domain.Product{ID: "tea", Name: "Green tea", Price: 2.35, Available: true},
		&domain.Product{ID: "cake", Name: "Cheesecake", Price: 4.10, Available: true},
		&domain.Product{ID: "soup", Name: "Soup of the day", Price: 5, Available: false},
	)
	tables := newStubTableRepo(&domain.Table{ID: "t4", Number: 4})
	dedup := newStubDeduper()
	events := &recordingPublisher{}
	return orderFixture{
		svc:    NewOrderService(orders, products, tables, dedup, events, zerolog.Nop()),
		orders: orders,
		dedup:  dedup,
		events: events,
	}
}

func teaAndCake() []ports.OrderItemInput {
	return []ports.OrderItemInput{{ProductID: "tea", Quantity: 3}, {ProductID: "cake", Quantity: 1}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestOrderService_Create_PricesFromCatalog(t *testing.T) {
	f := newOrderFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateOrderInput{
		TableNumber:  4,
		CustomerName: "  Ana ",
		Items:        teaAndCake(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	o := res.Order
	if o.Total != 11.15 {
		t.Fatalf("total = %v, want 11.15", o.Total)
	}
	if o.Status != domain.OrderPending || o.CustomerName != "Ana" || o.ID == "" {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.Items[0].Name != "Green tea" || o.Items[0].UnitPrice != 2.35 {
		t.Fatalf("item not snapshotted: %+v", o.Items[0])
	}
	if len(f.events.events) != 1 || f.events.events[0].Kind != domain.OrderCreated {
		t.Fatalf("expected one created event, got %+v", f.events.events)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.CreateOrderInput
		want  error
	}{
		{"no items", ports.CreateOrderInput{TableNumber: 4}, domain.ErrEmptyOrder},
		{"bad table", ports.CreateOrderInput{TableNumber: 0, Items: teaAndCake()}, domain.ErrInvalidInput},
		{"unknown table", ports.CreateOrderInput{TableNumber: 99, Items: teaAndCake()}, domain.ErrTableNotFound},
		{"zero quantity", ports.CreateOrderInput{TableNumber: 4, Items: []ports.OrderItemInput{{ProductID: "tea"}}}, domain.ErrInvalidInput},
		{"unknown product", ports.CreateOrderInput{TableNumber: 4, Items: []ports.OrderItemInput{{ProductID: "x", Quantity: 1}}}, domain.ErrProductNotFound},
		{"unavailable", ports.CreateOrderInput{TableNumber: 4, Items: []ports.OrderItemInput{{ProductID: "soup", Quantity: 1}}}, domain.ErrProductUnavailable},
	}
	for _, tc := range cases {
		if _, err := f.svc.Create(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(f.orders.byID) != 0 || len(f.events.events) != 0 {
		t.Fatal("rejected orders must not be stored or announced")
	}
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	in := ports.CreateOrderInput{TableNumber: 4, Items: teaAndCake(), IdempotencyKey: "tap-1"}

	first, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if !second.Replayed || second.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, second)
	}
	if len(f.orders.byID) != 1 || len(f.events.events) != 1 {
		t.Fatal("replay must not create or announce a second order")
	}
}

func TestOrderService_Create_ReleasesKeyOnFailure(t *testing.T) {
	f := newOrderFixture()
	f.orders.createErr = errors.New("mongo down")

	_, err := f.svc.Create(context.Background(), ports.CreateOrderInput{TableNumber: 4, Items: teaAndCake(), IdempotencyKey: "tap-2"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.dedup.released) != 1 || f.dedup.released[0] != "tap-2" {
		t.Fatalf("key not released: %v", f.dedup.released)
	}
}

func TestOrderService_Create_DedupFailureFailsOpen(t *testing.T) {
	f := newOrderFixture()
	f.dedup.claimErr = errors.New("redis down")

	res, err := f.svc.Create(context.Background(), ports.CreateOrderInput{TableNumber: 4, Items: teaAndCake(), IdempotencyKey: "tap-3"})
	if err != nil || res.Replayed {
		t.Fatalf("expected a fresh order, got %+v %v", res, err)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	res, _ := f.svc.Create(ctx, ports.CreateOrderInput{TableNumber: 4, Items: teaAndCake()})
	id := res.Order.ID

	if _, err := f.svc.UpdateStatus(ctx, id, domain.OrderReady); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending -> ready should fail, got %v", err)
	}

	o, err := f.svc.UpdateStatus(ctx, id, domain.OrderPreparing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if o.Status != domain.OrderPreparing {
		t.Fatalf("status = %s", o.Status)
	}

	last := f.events.events[len(f.events.events)-1]
	if last.Kind != domain.OrderStatusChanged || last.Status != domain.OrderPreparing || last.TableNumber != 4 {
		t.Fatalf("unexpected event %+v", last)
	}

	if _, err := f.svc.UpdateStatus(ctx, "missing", domain.OrderPreparing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
