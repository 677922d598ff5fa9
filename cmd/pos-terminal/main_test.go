package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/pkg/client"
	"github.com/mesapos/restaurant-pos/pkg/render"
)

func TestRenderBoard(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	snap := client.OrderSnapshot{
		Orders: []client.Order{
			{
				TableNumber:  4,
				CustomerName: "Ana",
				Status:       client.StatusPending,
				Total:        11.15,
				Items:        []client.OrderItem{{Quantity: 2}, {Quantity: 1}},
				CreatedAt:    now.Add(-5 * time.Minute),
			},
			{TableNumber: 7, Status: client.StatusReady, Total: 3, CreatedAt: now},
		},
		Pending: 1,
		Badge:   1,
	}

	var buf bytes.Buffer
	if err := renderBoard(&buf, snap, "USD", now); err != nil {
		t.Fatalf("renderBoard: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"2 active, 1 pending", "[1 new]", "TABLE", "Ana", "5m0s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, column row and 2 orders, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[3], "-") {
		t.Fatalf("missing customer should render as a dash: %q", lines[3])
	}
}

func TestReadCommands(t *testing.T) {
	quit := false
	readCommands(strings.NewReader("x\nq\n"), nil, func() { quit = true })
	if !quit {
		t.Fatal("q should quit")
	}
}

func TestBoardPrinter_SerialisesRedraws(t *testing.T) {
	var buf bytes.Buffer
	p := newBoardPrinter(&buf, render.NewBoundary("order-board", render.DefaultFallback, zerolog.Nop()), "USD")

	var inside, overlaps atomic.Int32
	p.draw = func(w io.Writer, snap client.OrderSnapshot) error {
		if inside.Add(1) > 1 {
			overlaps.Add(1)
		}
		defer inside.Add(-1)
		time.Sleep(5 * time.Millisecond)
		_, err := io.WriteString(w, "board\n")
		return err
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(badge int) {
			defer wg.Done()
			p.Print(context.Background(), client.OrderSnapshot{Badge: badge})
		}(i)
	}
	wg.Wait()

	if n := overlaps.Load(); n != 0 {
		t.Fatalf("%d redraws overlapped", n)
	}
	if got := strings.Count(buf.String(), "board\n"); got != 8 {
		t.Fatalf("expected 8 boards, got %d", got)
	}
}
