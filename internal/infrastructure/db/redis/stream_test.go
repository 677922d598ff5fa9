package redis

import (
	"bytes"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/api/metrics"
)

func corruptCount(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.NotificationsCorruptTotal.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestDecodeEntries_SkipsAndReportsCorruptPayloads(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	before := corruptCount(t)

	msgs := []redis.XMessage{
		{ID: "1-0", Values: map[string]any{payloadField: `{"id":"n1","type":"new_order","message":"New order at table 2"}`}},
		{ID: "2-0", Values: map[string]any{payloadField: `{not json`}},
		{ID: "3-0", Values: map[string]any{"other": "x"}},
		{ID: "4-0", Values: map[string]any{payloadField: `{"id":"n4","type":"order_ready","message":"Order for Luis is ready"}`}},
	}

	got := decodeEntries(msgs, log)

	if len(got) != 2 || got[0].ID != "n1" || got[1].ID != "n4" {
		t.Fatalf("unexpected notifications %+v", got)
	}
	if d := corruptCount(t) - before; d != 2 {
		t.Fatalf("corrupt counter moved by %v, want 2", d)
	}
	out := buf.String()
	if !strings.Contains(out, `"stream_id":"2-0"`) || !strings.Contains(out, `"stream_id":"3-0"`) {
		t.Fatalf("corrupt entries not logged: %s", out)
	}
	if strings.Count(out, `"level":"warn"`) != 2 {
		t.Fatalf("expected two warnings: %s", out)
	}
}
