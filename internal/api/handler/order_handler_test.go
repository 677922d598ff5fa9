package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

type stubOrderService struct {
	createIn   ports.CreateOrderInput
	createRes  *ports.CreateOrderResult
	listFilter ports.ListOrdersFilter
	statusIn   domain.OrderStatus
	statusErr  error
}

func (s *stubOrderService) Create(_ context.Context, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	s.createIn = in
	return s.createRes, nil
}

func (s *stubOrderService) Get(_ context.Context, id string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (s *stubOrderService) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	s.listFilter = f
	return nil, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, id string, st domain.OrderStatus) (*domain.Order, error) {
	s.statusIn = st
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &domain.Order{ID: id, Status: st}, nil
}

func (s *stubOrderService) Delete(context.Context, string) error { return nil }

func TestOrderHandler_Create(t *testing.T) {
	stub := &stubOrderService{createRes: &ports.CreateOrderResult{
		Order: &domain.Order{ID: "o1", TableNumber: 4, Total: 9.4, Status: domain.OrderPending},
	}}
	h := NewOrderHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/orders",
		strings.NewReader(`{"table_number":4,"customer_name":"Ana","items":[{"product_id":"tea","quantity":4}]}`))
	c.Request().Header.Set(HeaderIdempotencyKey, "k-123")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.createIn.IdempotencyKey != "k-123" || stub.createIn.TableNumber != 4 {
		t.Fatalf("unexpected input %+v", stub.createIn)
	}
	if len(stub.createIn.Items) != 1 || stub.createIn.Items[0].Quantity != 4 {
		t.Fatalf("unexpected items %+v", stub.createIn.Items)
	}

	var got domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != "o1" || got.Status != domain.OrderPending {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestOrderHandler_CreateReplayReturns200(t *testing.T) {
	stub := &stubOrderService{createRes: &ports.CreateOrderResult{
		Order:    &domain.Order{ID: "o1"},
		Replayed: true,
	}}
	h := NewOrderHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/orders",
		strings.NewReader(`{"table_number":4,"items":[{"product_id":"tea","quantity":1}]}`))

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	cases := map[string]string{
		"no items":      `{"table_number":4,"items":[]}`,
		"zero quantity": `{"table_number":4,"items":[{"product_id":"tea","quantity":0}]}`,
		"no table":      `{"items":[{"product_id":"tea","quantity":1}]}`,
		"malformed":     `{"table_number":`,
	}
	for name, body := range cases {
		h := NewOrderHandler(&stubOrderService{})
		c, _ := newTestContext(http.MethodPost, "/api/orders", strings.NewReader(body))
		if code := httpStatus(t, h.Create(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, code)
		}
	}
}

func TestOrderHandler_ListFilters(t *testing.T) {
	stub := &stubOrderService{}
	h := NewOrderHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/orders?active=true&status=ready&table=3", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	f := stub.listFilter
	if !f.ActiveOnly || f.Status != domain.OrderReady || f.TableNumber != 3 {
		t.Fatalf("unexpected filter %+v", f)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %s", body)
	}

	c, _ = newTestContext(http.MethodGet, "/api/orders?status=cooking", nil)
	if err := h.List(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	stub := &stubOrderService{}
	h := NewOrderHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/api/orders/o1/status", strings.NewReader(`{"status":"preparing"}`))
	c.SetParamNames("id")
	c.SetParamValues("o1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.statusIn != domain.OrderPreparing || rec.Code != http.StatusOK {
		t.Fatalf("status %q, code %d", stub.statusIn, rec.Code)
	}

	stub.statusErr = domain.ErrInvalidTransition
	c, _ = newTestContext(http.MethodPatch, "/api/orders/o1/status", strings.NewReader(`{"status":"completed"}`))
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderHandler_GetNotFound(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})
	c, _ := newTestContext(http.MethodGet, "/api/orders/missing", nil)
	if err := h.Get(c); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
