package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mesapos/restaurant-pos/internal/api/middleware"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

// newTestContext builds an echo context with the API validator installed.
func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, id, username, role string) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxUsername, username)
	c.Set(middleware.CtxRole, role)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	return he.Code
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, role string) (string, *domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (string, *domain.User, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, role string) (string, *domain.User, error) {
			if username != "alice" || role != "cashier" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return "jwt-1", &domain.User{ID: "u1", Username: username, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"alice","password":"secret1","role":"cashier"}`))

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt-1" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "cashier" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_RejectsUnknownRole(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			t.Fatal("service must not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"bob","password":"secret1","role":"owner"}`))

	err := handler.Register(c)
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(err.Error(), "role must be one of") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"bob","password":"secret1","role":"employee"}`))

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice"}`))

	if code := httpStatus(t, handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Me_ReturnsPermissions(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "maria", Role: "cashier"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/auth/me", nil)
	withCaller(c, "u7", "maria", "cashier")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		User        domain.User `json:"user"`
		Permissions []string    `json:"permissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u7" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	has := map[string]bool{}
	for _, p := range resp.Permissions {
		has[p] = true
	}
	if !has["process_payments"] || has["update_order_status"] {
		t.Fatalf("unexpected cashier permissions: %v", resp.Permissions)
	}
}

func TestAuthHandler_Me_DeletedAccount(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(context.Context, string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/api/auth/me", nil)
	withCaller(c, "gone", "ghost", "employee")

	if code := httpStatus(t, handler.Me(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_Me_WithoutClaims(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})
	c, _ := newTestContext(http.MethodGet, "/api/auth/me", nil)

	if code := httpStatus(t, handler.Me(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
