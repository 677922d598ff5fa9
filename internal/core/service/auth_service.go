package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
	"github.com/mesapos/restaurant-pos/pkg/permission"
)

const defaultTokenTTL = 24 * time.Hour

// sessionClaims is the payload of a staff bearer token.
type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService signs staff in and mints their bearer tokens.
type AuthService struct {
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:  users,
		secret: []byte(jwtSecret),
		ttl:    tokenTTL,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the account and signs the caller in immediately.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (string, *domain.User, error) {
	user, err := createUser(ctx, s.users, username, password, role)
	if err != nil {
		return "", nil, err
	}
	return s.session(user)
}

// Login never distinguishes an unknown username from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "", nil, domain.ErrInvalidCredentials
	case err != nil:
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) session(user *domain.User) (string, *domain.User, error) {
	issued := s.now()
	claims := sessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session for %s: %w", user.Username, err)
	}
	return token, user, nil
}

// createUser checks the account fields and stores it with a bcrypt hash.
func createUser(ctx context.Context, users ports.UserRepository, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "" || password == "":
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	case !permission.IsRole(role):
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created := time.Now().UTC()
	return users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    created,
		UpdatedAt:    created,
	})
}

// UserService backs the staff management screens.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	return createUser(ctx, s.repo, username, password, role)
}

func (s *UserService) Delete(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return domain.ErrSelfDelete
	}
	return s.repo.Delete(ctx, userID)
}
