package main

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubMongo struct {
	err  error
	mode readpref.Mode
}

func (s *stubMongo) Ping(_ context.Context, rp *readpref.ReadPref) error {
	s.mode = rp.Mode()
	return s.err
}

type stubRedis struct{ err error }

func (s stubRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", s.err)
}

func TestReadinessChecks(t *testing.T) {
	m := &stubMongo{err: errors.New("server selection timeout")}
	checks := readinessChecks(m, stubRedis{})

	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if err := checks["mongodb"](context.Background()); err == nil {
		t.Fatal("mongodb check should surface the ping error")
	}
	if m.mode != readpref.PrimaryMode {
		t.Fatalf("mongodb ping should target the primary, got %v", m.mode)
	}
	if err := checks["redis"](context.Background()); err != nil {
		t.Fatalf("redis check: %v", err)
	}
}

func TestReadinessChecks_RedisDown(t *testing.T) {
	checks := readinessChecks(&stubMongo{}, stubRedis{err: redis.ErrClosed})
	if err := checks["redis"](context.Background()); !errors.Is(err, redis.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
