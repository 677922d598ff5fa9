package ports

import (
	"context"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

// AuthService issues tokens for staff accounts.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// UserService manages staff accounts from the admin screens.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, username, password, role string) (*domain.User, error)
	Delete(ctx context.Context, actorID, userID string) error
}
