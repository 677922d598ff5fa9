package ports

import (
	"context"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

type TableRepository interface {
	Create(ctx context.Context, t *domain.Table) error
	FindByID(ctx context.Context, id string) (*domain.Table, error)
	FindByNumber(ctx context.Context, number int) (*domain.Table, error)
	List(ctx context.Context) ([]*domain.Table, error)
	SetQRCode(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type TableService interface {
	List(ctx context.Context) ([]*domain.Table, error)
	Create(ctx context.Context, number, capacity int) (*domain.Table, error)
	Delete(ctx context.Context, id string) error
	// RegenerateQR recomputes the table's canonical menu URL.
	RegenerateQR(ctx context.Context, id string) (*domain.Table, error)
	QRImage(ctx context.Context, id string, size int) ([]byte, error)
	Menu(ctx context.Context, tableNumber int) (*domain.Menu, error)
}
