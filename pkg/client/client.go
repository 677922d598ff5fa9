// Package client is the staff-side API client: session handling, the auth
// guard, and the polling loops that keep order and notification views fresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client issues REST calls using the headers of its Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     zerolog.Logger

	mu        sync.RWMutex
	authHooks []func(*APIError)
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

// OnAuthFailure registers fn to receive every 401/403 returned to a request
// that carried a bearer token.
func (c *Client) OnAuthFailure(fn func(*APIError)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authHooks = append(c.authHooks, fn)
}

// Login exchanges credentials for a token and stores the session.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, username, password, role string) (*User, error) {
	return c.authenticate(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("client: %s returned no token", path)
	}
	if err := c.session.Set(resp.Token, resp.User); err != nil {
		return nil, err
	}
	c.log.Info().Str("username", resp.User.Username).Str("role", resp.User.Role).Msg("session started")
	return &resp.User, nil
}

// ActiveOrders returns every order that is not completed.
func (c *Client) ActiveOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders?active=true", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	var o Order
	path := "/api/orders/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"status": status}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// PollNotifications drains the notifications queued for the current user.
func (c *Client) PollNotifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/poll", nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (c *Client) Menu(ctx context.Context, tableNumber int) (*Menu, error) {
	var m Menu
	if err := c.do(ctx, http.MethodGet, "/api/menu/"+strconv.Itoa(tableNumber), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Tables(ctx context.Context) ([]Table, error) {
	var ts []Table
	if err := c.do(ctx, http.MethodGet, "/api/tables", nil, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (c *Client) CreateTable(ctx context.Context, number, capacity int) (*Table, error) {
	var t Table
	body := map[string]int{"number": number, "capacity": capacity}
	if err := c.do(ctx, http.MethodPost, "/api/tables", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTable(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tables/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var cs []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat Category) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var ps []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/api/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if requiresSession(method, path) && !c.session.Authenticated() {
		return fmt.Errorf("%w: %s %s", ErrNotAuthenticated, method, path)
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	req.Header = c.session.AuthHeaders()
	req.Header.Set("Accept", "application/json")
	bearer := req.Header.Get("Authorization") != ""

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: readMessage(resp.Body, resp.StatusCode),
			Method:  method,
			Path:    path,
		}
		if bearer && apiErr.IsAuthFailure() {
			c.dispatchAuthFailure(apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// requiresSession is false only for the routes a diner or a signed-out
// terminal may call: sign-in, the QR menu and placing an order.
func requiresSession(method, path string) bool {
	path, _, _ = strings.Cut(path, "?")
	switch {
	case path == "/api/auth/login", path == "/api/auth/register":
		return false
	case strings.HasPrefix(path, "/api/menu/"):
		return false
	case path == "/api/orders" && method == http.MethodPost:
		return false
	}
	return true
}

func (c *Client) dispatchAuthFailure(err *APIError) {
	c.mu.RLock()
	hooks := append([]func(*APIError){}, c.authHooks...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(err)
	}
}

// readMessage extracts the server's message from an error body, falling back
// to the status text.
func readMessage(body io.Reader, status int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	if json.Unmarshal(b, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return http.StatusText(status)
}
