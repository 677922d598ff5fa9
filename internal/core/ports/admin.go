package ports

import (
	"context"
	"time"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

type SettingsRepository interface {
	// Get returns nil, nil when settings were never saved.
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	// List returns expenses in [from, to), newest first. Zero bounds are open.
	List(ctx context.Context, from, to time.Time) ([]*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseInput struct {
	Description string
	Amount      float64
	Category    string
	SpentAt     time.Time
	CreatedBy   string
}

type ExpenseService interface {
	List(ctx context.Context, from, to time.Time) ([]*domain.Expense, error)
	Create(ctx context.Context, in ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

type ReportService interface {
	Sales(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
}
